package lead

import (
	"context"
	"fmt"

	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/notify"
)

// Service handles quote-form submissions and lead lookups.
type Service interface {
	SubmitQuote(ctx context.Context, req CreateLeadRequest) (*Lead, error)
	GetLead(ctx context.Context, id string) (*Lead, error)
	ListLeads(ctx context.Context, offset, limit int) ([]Lead, int64, error)
}

type leadService struct {
	repository Repository
	dispatcher *notify.Dispatcher
	logger     *Logger.Logger
}

// SubmitQuote implements Service.
func (s *leadService) SubmitQuote(ctx context.Context, req CreateLeadRequest) (*Lead, error) {
	l := req.ToLead()
	if err := s.repository.CreateLead(ctx, &l); err != nil {
		return nil, fmt.Errorf("couldn't save lead: %w", err)
	}

	// Best-effort crew ping, decoupled from the request path.
	s.dispatcher.Enqueue(fmt.Sprintf(
		"New quote request\nName: %s\nPhone: %s\nEmail: %s\nStyle: %s / %s\nNotes: %s",
		l.Name, l.Phone, l.Email, l.Style, l.Color, l.Notes,
	))

	return &l, nil
}

// GetLead implements Service.
func (s *leadService) GetLead(ctx context.Context, id string) (*Lead, error) {
	return s.repository.GetLead(ctx, id)
}

// ListLeads implements Service.
func (s *leadService) ListLeads(ctx context.Context, offset, limit int) ([]Lead, int64, error) {
	return s.repository.ListLeads(ctx, offset, limit)
}

func NewService(repo Repository, dispatcher *notify.Dispatcher, logger *Logger.Logger) Service {
	return &leadService{
		repository: repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}
