package visualizer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/ai/reface"
	"github.com/foxworks/reface/pkg/notify"
	"github.com/google/uuid"
)

type fakeUploader struct {
	uploads []string
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	f.uploads = append(f.uploads, path)
	return f.PublicURL(bucket, path), nil
}

func (f *fakeUploader) PublicURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.test/%s/%s", bucket, path)
}

type fakeRenderer struct {
	calls  int
	params reface.StyleParams
}

func (f *fakeRenderer) Reface(ctx context.Context, img []byte, params reface.StyleParams) ([]byte, error) {
	f.calls++
	f.params = params
	return []byte("refaced-bytes"), nil
}

type memoryRepo struct {
	leads    map[string]*lead.Lead
	sessions map[string]*lead.Session
	pairs    []lead.ImagePair
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		leads:    make(map[string]*lead.Lead),
		sessions: make(map[string]*lead.Session),
	}
}

func (m *memoryRepo) CreateLeadWithSession(ctx context.Context, l *lead.Lead) (*lead.Session, error) {
	l.ID = uuid.New().String()
	m.leads[l.ID] = l
	s := &lead.Session{ID: uuid.New().String(), LeadID: l.ID, Status: "active"}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memoryRepo) CreateLead(ctx context.Context, l *lead.Lead) error {
	l.ID = uuid.New().String()
	m.leads[l.ID] = l
	return nil
}

func (m *memoryRepo) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	if l, ok := m.leads[id]; ok {
		return l, nil
	}
	return nil, lead.ErrLeadNotFound
}

func (m *memoryRepo) ListLeads(ctx context.Context, offset, limit int) ([]lead.Lead, int64, error) {
	out := make([]lead.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (m *memoryRepo) GetSession(ctx context.Context, id string) (*lead.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, lead.ErrSessionNotFound
}

func (m *memoryRepo) AddImagePair(ctx context.Context, pair *lead.ImagePair) error {
	pair.ID = uuid.New().String()
	m.pairs = append(m.pairs, *pair)
	return nil
}

func (m *memoryRepo) IncrementDesignCount(ctx context.Context, leadID string) error {
	l, ok := m.leads[leadID]
	if !ok {
		return lead.ErrLeadNotFound
	}
	l.DesignCount++
	return nil
}

type nullSender struct{}

func (nullSender) Send(ctx context.Context, text string) error { return nil }

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func newTestEngine(t *testing.T) (*Engine, *fakeUploader, *fakeRenderer, *memoryRepo) {
	t.Helper()
	logger := Logger.New(true)
	uploader := &fakeUploader{}
	renderer := &fakeRenderer{}
	repo := newMemoryRepo()
	dispatcher := notify.NewDispatcher(nullSender{}, logger)
	engine := NewEngine(uploader, renderer, repo, dispatcher, "renders", logger)
	return engine, uploader, renderer, repo
}

func TestRunRejectsMissingEmail(t *testing.T) {
	engine, uploader, _, _ := newTestEngine(t)
	_, err := engine.Run(context.Background(), RunInput{Image: testJPEG(t)})
	if err != ErrEmailRequired {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if len(uploader.uploads) != 0 {
		t.Errorf("nothing should be uploaded for a rejected run, got %v", uploader.uploads)
	}
}

func TestRunRejectsUndecodableImage(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	_, err := engine.Run(context.Background(), RunInput{
		Image: []byte("not an image"),
		Email: "a@b.co",
	})
	if err == nil {
		t.Fatal("expected normalization error")
	}
}

func TestRunCreatesLeadSessionAndPair(t *testing.T) {
	engine, uploader, renderer, repo := newTestEngine(t)

	result, err := engine.Run(context.Background(), RunInput{
		Image:    testJPEG(t),
		Style:    "shaker",
		Color:    "flour",
		Hardware: "bar-brushed-nickel",
		Email:    "jess@example.com",
		Phone:    "555-0101",
		Name:     "Jess",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.OriginalURL == "" || result.FinalURL == "" || result.SessionID == "" || result.LeadID == "" {
		t.Fatalf("incomplete result: %+v", result)
	}
	if renderer.calls != 1 {
		t.Errorf("expected one render call, got %d", renderer.calls)
	}
	if renderer.params.ColorHex != "#F4F1EA" {
		t.Errorf("renderer received wrong color: %+v", renderer.params)
	}
	if len(uploader.uploads) != 2 {
		t.Fatalf("expected original+final uploads, got %v", uploader.uploads)
	}
	if !strings.HasSuffix(uploader.uploads[0], "/original.jpg") || !strings.HasSuffix(uploader.uploads[1], "/final.jpg") {
		t.Errorf("unexpected upload paths: %v", uploader.uploads)
	}

	l, err := repo.GetLead(context.Background(), result.LeadID)
	if err != nil {
		t.Fatalf("lead not persisted: %v", err)
	}
	if l.Email != "jess@example.com" || l.DesignCount != 1 {
		t.Errorf("unexpected lead state: %+v", l)
	}
	if len(repo.pairs) != 1 {
		t.Fatalf("expected one image pair, got %d", len(repo.pairs))
	}
	if repo.pairs[0].SessionID != result.SessionID {
		t.Errorf("pair bound to wrong session: %+v", repo.pairs[0])
	}
}

func TestRunReusesSession(t *testing.T) {
	engine, _, _, repo := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Run(ctx, RunInput{
		Image: testJPEG(t),
		Email: "batch@example.com",
	})
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	second, err := engine.Run(ctx, RunInput{
		Image:     testJPEG(t),
		Email:     "batch@example.com",
		SessionID: first.SessionID,
	})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if second.SessionID != first.SessionID || second.LeadID != first.LeadID {
		t.Errorf("session reuse created new identities: %+v vs %+v", first, second)
	}
	if len(repo.leads) != 1 {
		t.Errorf("expected a single lead, got %d", len(repo.leads))
	}
	if len(repo.pairs) != 2 {
		t.Errorf("expected two image pairs, got %d", len(repo.pairs))
	}
	l, _ := repo.GetLead(ctx, first.LeadID)
	if l.DesignCount != 2 {
		t.Errorf("expected design count 2, got %d", l.DesignCount)
	}
}

func TestRunUnknownSessionFails(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	_, err := engine.Run(context.Background(), RunInput{
		Image:     testJPEG(t),
		Email:     "a@b.co",
		SessionID: "no-such-session",
	})
	if err != lead.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
