package lead

import (
	"time"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadEntity represents the database entity for Lead with GORM tags
type LeadEntity struct {
	ID          string         `gorm:"primaryKey;type:char(36);not null"`
	Name        string         `gorm:"type:varchar(255)"`
	Phone       string         `gorm:"type:varchar(32)"`
	Email       string         `gorm:"index;type:varchar(191);not null"`
	Style       string         `gorm:"type:varchar(64)"`
	Color       string         `gorm:"type:varchar(64)"`
	Hardware    string         `gorm:"type:varchar(64)"`
	Notes       string         `gorm:"type:text"`
	DesignCount int64          `gorm:"column:design_count;not null;default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt   gorm.DeletedAt `gorm:"index"` // For soft delete
}

func (LeadEntity) TableName() string {
	return "leads"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (l *LeadEntity) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

func (l *LeadEntity) ToDomain() *lead.Lead {
	return &lead.Lead{
		ID:          l.ID,
		Name:        l.Name,
		Phone:       l.Phone,
		Email:       l.Email,
		Style:       l.Style,
		Color:       l.Color,
		Hardware:    l.Hardware,
		Notes:       l.Notes,
		DesignCount: l.DesignCount,
		CreatedAt:   l.CreatedAt,
	}
}

func (l *LeadEntity) FromDomain(d *lead.Lead) {
	l.ID = d.ID
	l.Name = d.Name
	l.Phone = d.Phone
	l.Email = d.Email
	l.Style = d.Style
	l.Color = d.Color
	l.Hardware = d.Hardware
	l.Notes = d.Notes
	l.DesignCount = d.DesignCount
	l.CreatedAt = d.CreatedAt
}

// SessionEntity represents the database entity for a visualizer Session
type SessionEntity struct {
	ID        string     `gorm:"primaryKey;type:char(36);not null"`
	LeadID    string     `gorm:"column:lead_id;type:char(36);index;not null"`
	Lead      LeadEntity `gorm:"foreignKey:LeadID"`
	Status    string     `gorm:"type:varchar(16);default:active"`
	CreatedAt time.Time  `gorm:"autoCreateTime(3)"`
}

func (SessionEntity) TableName() string {
	return "visualizer_sessions"
}

func (s *SessionEntity) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (s *SessionEntity) ToDomain() *lead.Session {
	return &lead.Session{
		ID:        s.ID,
		LeadID:    s.LeadID,
		Status:    lead.SessionStatus(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

// ImagePairEntity represents one before/after render in a session
type ImagePairEntity struct {
	ID          string    `gorm:"primaryKey;type:char(36);not null"`
	SessionID   string    `gorm:"column:session_id;type:char(36);index;not null"`
	OriginalURL string    `gorm:"column:original_url;type:varchar(512);not null"`
	FinalURL    string    `gorm:"column:final_url;type:varchar(512);not null"`
	Instruction string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime(3)"`
}

func (ImagePairEntity) TableName() string {
	return "image_pairs"
}

func (p *ImagePairEntity) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (p *ImagePairEntity) ToDomain() *lead.ImagePair {
	return &lead.ImagePair{
		ID:          p.ID,
		SessionID:   p.SessionID,
		OriginalURL: p.OriginalURL,
		FinalURL:    p.FinalURL,
		Instruction: p.Instruction,
		CreatedAt:   p.CreatedAt,
	}
}

func (p *ImagePairEntity) FromDomain(d *lead.ImagePair) {
	p.ID = d.ID
	p.SessionID = d.SessionID
	p.OriginalURL = d.OriginalURL
	p.FinalURL = d.FinalURL
	p.Instruction = d.Instruction
	p.CreatedAt = d.CreatedAt
}
