package handlers

import (
	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/internal/domains/visualizer"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// VisualizeResponse represents a completed visualizer run
type VisualizeResponse struct {
	Result visualizer.RunResult `json:"result"`
}

// QuoteResponse represents the response for a quote-form submission
type QuoteResponse struct {
	Message string    `json:"message" example:"Quote request received"`
	Lead    lead.Lead `json:"lead"`
}

// LeadResponse represents the response for getting a single lead
type LeadResponse struct {
	Lead lead.Lead `json:"lead"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Total  int64 `json:"total" example:"150"`
	Offset int   `json:"offset" example:"0"`
	Limit  int   `json:"limit" example:"20"`
}

// ListLeadsResponse represents the response for listing leads
type ListLeadsResponse struct {
	Leads      []lead.Lead    `json:"leads"`
	Pagination PaginationInfo `json:"pagination"`
}

// VoiceTurnResponse represents one full voice-agent exchange
type VoiceTurnResponse struct {
	Transcript string    `json:"transcript"`
	Response   string    `json:"response"`
	Audio      string    `json:"audio"`      // base64 16-bit 24kHz mono PCM
	Amplitudes []float64 `json:"amplitudes"` // mouth animation envelope
}

// VoiceAudioResponse carries synthesized audio only (greeting)
type VoiceAudioResponse struct {
	Audio      string    `json:"audio"`
	Amplitudes []float64 `json:"amplitudes"`
}

// RTCTokenResponse carries a signed transport access token
type RTCTokenResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
