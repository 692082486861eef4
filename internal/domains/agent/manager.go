package agent

import (
	"context"
	"time"

	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/ai/speech"
)

// defaultHistoryBound caps non-system history when no bound is configured;
// the system prompt is always retained as the first entry.
const defaultHistoryBound = 20

const systemPrompt = "You are Felix, the fox mascot of a kitchen cabinet refacing company. " +
	"You chat with homeowners about door styles, colors, hardware and what a refacing " +
	"project involves. You are warm, a little playful, and you keep answers to two or " +
	"three spoken sentences. If asked about pricing, explain that it depends on the " +
	"kitchen and offer to set up a free in-home estimate. Never break character."

const greetingText = "Hey there! I'm Felix. Ask me anything about giving your kitchen a fresh face."

// apologyReply is returned instead of a provider error so the character
// experience survives transient outages.
const apologyReply = "Sorry, my ears glitched for a second there. Could you say that again?"

// TurnResult carries all three artifacts of one full voice-agent exchange.
type TurnResult struct {
	Transcript string
	Response   string
	Audio      []byte
}

// Manager encapsulates one caller's chat session: bounded history plus the
// three provider hops of a full turn. Overlapping turns for the same session
// are not serialized; the client never issues them.
type Manager struct {
	sessionID   string
	history     []speech.Message
	bound       int
	transcriber speech.Transcriber
	completer   speech.Completer
	synthesizer speech.Synthesizer
	logger      *Logger.Logger
}

func NewManager(
	sessionID string,
	historyBound int,
	transcriber speech.Transcriber,
	completer speech.Completer,
	synthesizer speech.Synthesizer,
	logger *Logger.Logger,
) *Manager {
	if historyBound <= 0 {
		historyBound = defaultHistoryBound
	}
	return &Manager{
		sessionID: sessionID,
		bound:     historyBound,
		history: []speech.Message{
			{Role: speech.SYSTEM, Content: systemPrompt, CreatedAt: time.Now()},
		},
		transcriber: transcriber,
		completer:   completer,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Transcribe converts caller audio to text. Provider errors propagate.
func (m *Manager) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return m.transcriber.Transcribe(ctx, audio, mimeType)
}

// GenerateResponse appends the user message, requests a completion and
// appends the reply, trimming history to the retention bound. On provider
// failure it returns the canned apology with a nil error: conversation
// continuity beats strict error surfacing here.
func (m *Manager) GenerateResponse(ctx context.Context, userText string) (string, error) {
	m.append(speech.Message{Role: speech.USER, Content: userText, CreatedAt: time.Now()})

	reply, err := m.completer.Complete(ctx, m.history)
	if err != nil {
		m.logger.Errorf("completion failed for session %s: %v", m.sessionID, err)
		reply = apologyReply
	}

	m.append(speech.Message{Role: speech.ASSISTANT, Content: reply, CreatedAt: time.Now()})
	return reply, nil
}

// Synthesize converts reply text to audio. Provider errors propagate.
func (m *Manager) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return m.synthesizer.Synthesize(ctx, text)
}

// ProcessTurn is the single full-turn contract exposed to the boundary:
// transcribe, generate, synthesize, in sequence.
func (m *Manager) ProcessTurn(ctx context.Context, audio []byte, mimeType string) (*TurnResult, error) {
	transcript, err := m.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}

	response, err := m.GenerateResponse(ctx, transcript)
	if err != nil {
		return nil, err
	}

	audioOut, err := m.Synthesize(ctx, response)
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Transcript: transcript,
		Response:   response,
		Audio:      audioOut,
	}, nil
}

// Greeting synthesizes the fixed opener. It never enters the chat log.
func (m *Manager) Greeting(ctx context.Context) ([]byte, error) {
	return m.synthesizer.Synthesize(ctx, greetingText)
}

// History returns a copy of the session's message log.
func (m *Manager) History() []speech.Message {
	out := make([]speech.Message, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Manager) append(msg speech.Message) {
	m.history = append(m.history, msg)
	// drop the oldest non-system messages once past the bound
	if excess := len(m.history) - 1 - m.bound; excess > 0 {
		trimmed := make([]speech.Message, 0, m.bound+1)
		trimmed = append(trimmed, m.history[0])
		trimmed = append(trimmed, m.history[1+excess:]...)
		m.history = trimmed
	}
}
