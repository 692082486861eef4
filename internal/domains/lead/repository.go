package lead

import (
	"context"
	"errors"
)

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrSessionNotFound = errors.New("invalid session")
)

// Repository is the persistence boundary for leads, sessions and image pairs.
type Repository interface {
	// CreateLeadWithSession creates both rows inside one transaction so a
	// failed session insert can never leave an orphaned lead.
	CreateLeadWithSession(ctx context.Context, l *Lead) (*Session, error)
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, id string) (*Lead, error)
	ListLeads(ctx context.Context, offset, limit int) ([]Lead, int64, error)

	GetSession(ctx context.Context, id string) (*Session, error)
	AddImagePair(ctx context.Context, pair *ImagePair) error

	// IncrementDesignCount is an atomic per-lead counter bump
	// (UPDATE ... SET design_count = design_count + 1).
	IncrementDesignCount(ctx context.Context, leadID string) error
}
