package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

type GormLeadRepo struct {
	db         *gorm.DB
	rc         *redis.Client
	sessionTTL time.Duration
}

func sessionCacheKey(sessionID string) string {
	return fmt.Sprintf("vz:session:%s", sessionID)
}

// CreateLeadWithSession implements lead.Repository. Both rows are written in
// one transaction so a failed session insert never leaves an orphaned lead.
func (g *GormLeadRepo) CreateLeadWithSession(ctx context.Context, l *lead.Lead) (*lead.Session, error) {
	leadEntity := &LeadEntity{}
	leadEntity.FromDomain(l)
	sessionEntity := &SessionEntity{Status: string(lead.SessionActive)}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(leadEntity).Error; err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}
		sessionEntity.LeadID = leadEntity.ID
		if err := tx.Create(sessionEntity).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	*l = *leadEntity.ToDomain()
	session := sessionEntity.ToDomain()
	g.cacheSession(session)
	return session, nil
}

// CreateLead implements lead.Repository (quote form path, no session).
func (g *GormLeadRepo) CreateLead(ctx context.Context, l *lead.Lead) error {
	entity := &LeadEntity{}
	entity.FromDomain(l)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	*l = *entity.ToDomain()
	return nil
}

// GetLead implements lead.Repository
func (g *GormLeadRepo) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	var entity LeadEntity
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lead.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return entity.ToDomain(), nil
}

// ListLeads implements lead.Repository
func (g *GormLeadRepo) ListLeads(ctx context.Context, offset, limit int) ([]lead.Lead, int64, error) {
	var entities []LeadEntity
	var total int64

	if err := g.db.WithContext(ctx).Model(&LeadEntity{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}
	if err := g.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&entities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	leads := make([]lead.Lead, len(entities))
	for i, entity := range entities {
		leads[i] = *entity.ToDomain()
	}
	return leads, total, nil
}

// GetSession implements lead.Repository. Session rows are immutable after
// creation, so the redis copy never goes stale.
func (g *GormLeadRepo) GetSession(ctx context.Context, id string) (*lead.Session, error) {
	if cached := g.cachedSession(id); cached != nil {
		return cached, nil
	}

	var entity SessionEntity
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lead.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := entity.ToDomain()
	g.cacheSession(session)
	return session, nil
}

// AddImagePair implements lead.Repository
func (g *GormLeadRepo) AddImagePair(ctx context.Context, pair *lead.ImagePair) error {
	entity := &ImagePairEntity{}
	entity.FromDomain(pair)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to record image pair: %w", err)
	}
	*pair = *entity.ToDomain()
	return nil
}

// IncrementDesignCount implements lead.Repository with a row-level atomic
// update. There is no read-then-write fallback.
func (g *GormLeadRepo) IncrementDesignCount(ctx context.Context, leadID string) error {
	result := g.db.WithContext(ctx).
		Model(&LeadEntity{}).
		Where("id = ?", leadID).
		UpdateColumn("design_count", gorm.Expr("design_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment design count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

func (g *GormLeadRepo) cacheSession(s *lead.Session) {
	if g.rc == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	g.rc.Set(sessionCacheKey(s.ID), data, g.sessionTTL)
}

func (g *GormLeadRepo) cachedSession(id string) *lead.Session {
	if g.rc == nil {
		return nil
	}
	data, err := g.rc.Get(sessionCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var s lead.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// NewGormLeadRepo creates a GORM-based lead repository with a redis
// read-through cache for session lookups.
func NewGormLeadRepo(db *gorm.DB, rc *redis.Client, sessionTTL time.Duration) lead.Repository {
	return &GormLeadRepo{db: db, rc: rc, sessionTTL: sessionTTL}
}
