package lead

import (
	"time"
)

// Lead is a prospective customer record created from the quote form or the
// first image of a visualizer batch.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Style       string    `json:"style"`
	Color       string    `json:"color"`
	Hardware    string    `json:"hardware"`
	Notes       string    `json:"notes"`
	DesignCount int64     `json:"designCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionFinished SessionStatus = "finished"
)

// Session groups the image pairs produced during one visualizer visit.
// Its lead reference is immutable once created.
type Session struct {
	ID        string        `json:"id"`
	LeadID    string        `json:"leadId"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ImagePair is one before/after image attached to a session, together with
// the instruction text that produced the after image.
type ImagePair struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	OriginalURL string    `json:"originalUrl"`
	FinalURL    string    `json:"finalUrl"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateLeadRequest is the quote-form submission body.
// @Description Quote form submission
type CreateLeadRequest struct {
	Name     string `json:"name" binding:"required" example:"Dana Wright"`
	Phone    string `json:"phone" binding:"required" example:"+15553334444"`
	Email    string `json:"email" binding:"required,email" example:"dana@example.com"`
	Style    string `json:"style" example:"shaker"`
	Color    string `json:"color" example:"flour"`
	Hardware string `json:"hardware" example:"bar-brushed-nickel"`
	Notes    string `json:"notes" example:"Galley kitchen, ~20 doors"`
}

func (r *CreateLeadRequest) ToLead() Lead {
	return Lead{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Style:    r.Style,
		Color:    r.Color,
		Hardware: r.Hardware,
		Notes:    r.Notes,
	}
}
