package vad

import (
	"encoding/binary"
	"math"
	"time"
)

type EventType string

const (
	SpeechStart EventType = "speech_start"
	SpeechEnd   EventType = "speech_end"
)

// Event marks a speech boundary found in the incoming audio.
type Event struct {
	Type      EventType
	Timestamp time.Time
}

// Frame is one chunk of 16-bit mono PCM with its capture time.
type Frame struct {
	Data      []byte
	Timestamp time.Time
}

// Config holds the energy-gate tuning.
type Config struct {
	// Threshold is the RMS loudness gate on a normalized 0-1 scale.
	Threshold float64
	// SilenceDuration is how long loudness must stay below threshold
	// before the utterance is considered finished.
	SilenceDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Threshold:       0.02,
		SilenceDuration: 1500 * time.Millisecond,
	}
}

// Detector finds speech start/end boundaries from frame loudness. Recording
// is gated strictly by the two events: exactly one start and one end per
// utterance.
type Detector struct {
	config    Config
	recording bool
	lastLoud  time.Time
}

func NewDetector(config Config) *Detector {
	if config.Threshold <= 0 {
		config.Threshold = DefaultConfig().Threshold
	}
	if config.SilenceDuration <= 0 {
		config.SilenceDuration = DefaultConfig().SilenceDuration
	}
	return &Detector{config: config}
}

// Process analyzes one frame and returns any boundary events it produced.
// Frame timestamps drive the silence timing, so playback-rate feeds and
// synthetic test feeds behave identically.
func (d *Detector) Process(frame Frame) []Event {
	loudness := RMS(frame.Data)

	var events []Event
	if loudness > d.config.Threshold {
		if !d.recording {
			d.recording = true
			events = append(events, Event{Type: SpeechStart, Timestamp: frame.Timestamp})
		}
		d.lastLoud = frame.Timestamp
		return events
	}

	if d.recording && frame.Timestamp.Sub(d.lastLoud) >= d.config.SilenceDuration {
		d.recording = false
		events = append(events, Event{Type: SpeechEnd, Timestamp: frame.Timestamp})
	}
	return events
}

// Recording reports whether the detector is inside an utterance.
func (d *Detector) Recording() bool {
	return d.recording
}

// Reset clears utterance state (e.g. after a connection drop).
func (d *Detector) Reset() {
	d.recording = false
	d.lastLoud = time.Time{}
}

// RMS computes root-mean-square loudness of 16-bit little-endian PCM,
// normalized to 0-1.
func RMS(pcm []byte) float64 {
	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < sampleCount; i++ {
		s := float64(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		sum += s * s
	}
	return math.Sqrt(sum/float64(sampleCount)) / 32768.0
}
