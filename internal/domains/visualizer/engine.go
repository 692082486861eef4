package visualizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/ai/reface"
	"github.com/foxworks/reface/pkg/notify"
	"github.com/foxworks/reface/pkg/photo"
	"github.com/foxworks/reface/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrEmailRequired = errors.New("email is required")
)

// RunInput carries one visualizer submission.
type RunInput struct {
	Image    []byte
	Prompt   string
	Style    string
	Color    string
	Hardware string
	Email    string
	Phone    string
	Name     string
	// SessionID reuses an existing session for batch uploads.
	SessionID string
}

// RunResult is the stable response shape of one pipeline run.
type RunResult struct {
	OriginalURL string `json:"originalUrl"`
	FinalURL    string `json:"finalUrl"`
	SessionID   string `json:"sessionId"`
	LeadID      string `json:"leadId"`
}

// Engine sequences the visualizer pipeline: normalize, store the original,
// reface, store the result, persist the lead/session/image pair and bump the
// design counter. A crew notification is queued after success and can never
// fail the run.
type Engine struct {
	uploader   storage.Uploader
	renderer   reface.Renderer
	repository lead.Repository
	dispatcher *notify.Dispatcher
	bucket     string
	logger     *Logger.Logger
}

func NewEngine(
	uploader storage.Uploader,
	renderer reface.Renderer,
	repository lead.Repository,
	dispatcher *notify.Dispatcher,
	bucket string,
	logger *Logger.Logger,
) *Engine {
	return &Engine{
		uploader:   uploader,
		renderer:   renderer,
		repository: repository,
		dispatcher: dispatcher,
		bucket:     bucket,
		logger:     logger,
	}
}

// Run executes the pipeline. Phone and name are validated at the HTTP
// boundary; email is re-checked here because the lead row hangs off it.
func (e *Engine) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	if in.Email == "" {
		return nil, ErrEmailRequired
	}

	// Orientation fix must precede any AI call.
	normalized, err := photo.Normalize(in.Image)
	if err != nil {
		return nil, fmt.Errorf("image normalization failed: %w", err)
	}

	imageID := uuid.New().String()
	originalURL, err := e.uploader.Upload(ctx, e.bucket,
		fmt.Sprintf("%s/original.jpg", imageID), normalized, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("original upload failed: %w", err)
	}

	instruction := BuildInstruction(in.Style, in.Color, in.Hardware, in.Prompt)

	refaced, err := e.renderer.Reface(ctx, normalized, BuildStyleParams(in.Style, in.Color, in.Hardware, in.Prompt))
	if err != nil {
		return nil, fmt.Errorf("refacing failed: %w", err)
	}

	finalURL, err := e.uploader.Upload(ctx, e.bucket,
		fmt.Sprintf("%s/final.jpg", imageID), refaced, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("final upload failed: %w", err)
	}

	session, err := e.resolveSession(ctx, in)
	if err != nil {
		return nil, err
	}

	pair := &lead.ImagePair{
		SessionID:   session.ID,
		OriginalURL: originalURL,
		FinalURL:    finalURL,
		Instruction: instruction,
	}
	if err := e.repository.AddImagePair(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to record image pair: %w", err)
	}

	// Counter failures are log-only: the customer already has their render.
	if err := e.repository.IncrementDesignCount(ctx, session.LeadID); err != nil {
		e.logger.Errorf("design count increment failed for lead %s: %v", session.LeadID, err)
	}

	e.dispatcher.Enqueue(fmt.Sprintf(
		"New visualizer render\nEmail: %s\nStyle: %s / %s / %s\nBefore: %s\nAfter: %s",
		in.Email, in.Style, in.Color, in.Hardware, originalURL, finalURL,
	))

	return &RunResult{
		OriginalURL: originalURL,
		FinalURL:    finalURL,
		SessionID:   session.ID,
		LeadID:      session.LeadID,
	}, nil
}

// resolveSession reuses the supplied session or creates a fresh lead+session
// pair in one transaction.
func (e *Engine) resolveSession(ctx context.Context, in RunInput) (*lead.Session, error) {
	if in.SessionID != "" {
		session, err := e.repository.GetSession(ctx, in.SessionID)
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	l := lead.Lead{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Style:    in.Style,
		Color:    in.Color,
		Hardware: in.Hardware,
		Notes:    in.Prompt,
	}
	session, err := e.repository.CreateLeadWithSession(ctx, &l)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return session, nil
}
