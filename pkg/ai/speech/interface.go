package speech

import (
	"context"
	"time"
)

type Role string

const (
	SYSTEM    Role = "system"
	USER      Role = "user"
	ASSISTANT Role = "assistant"
)

// Message is one role-tagged entry of a conversation history.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transcriber converts caller audio into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Completer produces the next assistant reply for an ordered history.
type Completer interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// Synthesizer converts reply text into encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
