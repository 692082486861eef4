package database

import (
	leadrepo "github.com/foxworks/reface/internal/repository/lead"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) {
	db.AutoMigrate(
		&leadrepo.LeadEntity{},
		&leadrepo.SessionEntity{},
		&leadrepo.ImagePairEntity{},
	)
}
