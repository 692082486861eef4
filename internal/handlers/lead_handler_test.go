package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/gin-gonic/gin"
)

type stubLeadService struct {
	lastOffset int
	lastLimit  int
}

func (s *stubLeadService) SubmitQuote(ctx context.Context, req lead.CreateLeadRequest) (*lead.Lead, error) {
	l := req.ToLead()
	l.ID = "lead-1"
	return &l, nil
}

func (s *stubLeadService) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	if id == "lead-1" {
		return &lead.Lead{ID: "lead-1", Name: "Dana"}, nil
	}
	return nil, lead.ErrLeadNotFound
}

func (s *stubLeadService) ListLeads(ctx context.Context, offset, limit int) ([]lead.Lead, int64, error) {
	s.lastOffset = offset
	s.lastLimit = limit
	return []lead.Lead{{ID: "lead-1"}}, 1, nil
}

func newLeadRouter(svc lead.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewLeadHandler(svc, Logger.New(true)).RegisterLeadRoutes(api)
	return r
}

func TestSubmitQuoteEndpoint(t *testing.T) {
	router := newLeadRouter(&stubLeadService{})

	body, _ := json.Marshal(lead.CreateLeadRequest{
		Name:  "Dana Wright",
		Phone: "+15553334444",
		Email: "dana@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Lead.ID != "lead-1" {
		t.Errorf("unexpected lead: %+v", resp.Lead)
	}
}

func TestSubmitQuoteValidation(t *testing.T) {
	router := newLeadRouter(&stubLeadService{})

	// missing phone, invalid email
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote",
		bytes.NewReader([]byte(`{"name":"Dana","email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetLeadNotFoundEndpoint(t *testing.T) {
	router := newLeadRouter(&stubLeadService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListLeadsClampsLimit(t *testing.T) {
	svc := &stubLeadService{}
	router := newLeadRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?offset=5&limit=5000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastOffset != 5 || svc.lastLimit != 20 {
		t.Errorf("expected offset 5 / clamped limit 20, got %d/%d", svc.lastOffset, svc.lastLimit)
	}
}
