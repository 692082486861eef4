package agent

import (
	"context"

	"github.com/looplab/fsm"
)

// Caller-visible conversation states, emitted over the voice transport so
// the front end can drive the character animation.
const (
	StateIdle      = "idle"
	StateListening = "listening"
	StateThinking  = "thinking"
	StateTalking   = "talking"
)

// Transition events.
const (
	EventWake        = "wake"         // interaction begins
	EventSpeechEnd   = "speech_end"   // utterance captured, turn processing starts
	EventReplyReady  = "reply_ready"  // synthesized audio starts playing
	EventPlaybackEnd = "playback_end" // audio finished, back to listening
	EventTurnFailed  = "turn_failed"  // turn processing failed, skip playback
	EventSleep       = "sleep"        // interaction ends
)

// TurnState tracks the idle → listening → thinking → talking loop for one
// voice connection. Transitions are reported through the notify callback.
type TurnState struct {
	machine *fsm.FSM
}

func NewTurnState(notify func(state string)) *TurnState {
	callbacks := fsm.Callbacks{}
	if notify != nil {
		callbacks["enter_state"] = func(_ context.Context, e *fsm.Event) {
			notify(e.Dst)
		}
	}
	return &TurnState{
		machine: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: EventWake, Src: []string{StateIdle}, Dst: StateListening},
				{Name: EventSpeechEnd, Src: []string{StateListening}, Dst: StateThinking},
				{Name: EventReplyReady, Src: []string{StateThinking}, Dst: StateTalking},
				{Name: EventPlaybackEnd, Src: []string{StateTalking}, Dst: StateListening},
				{Name: EventTurnFailed, Src: []string{StateThinking}, Dst: StateListening},
				// voice activity resuming mid-playback counts as listening again
				{Name: EventWake, Src: []string{StateTalking}, Dst: StateListening},
				{Name: EventSleep, Src: []string{StateListening, StateThinking, StateTalking}, Dst: StateIdle},
			},
			callbacks,
		),
	}
}

// Fire applies a transition event; invalid transitions are ignored so a
// racing client event cannot wedge the loop.
func (t *TurnState) Fire(ctx context.Context, event string) {
	_ = t.machine.Event(ctx, event)
}

// Current returns the present state label.
func (t *TurnState) Current() string {
	return t.machine.Current()
}
