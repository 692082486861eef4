package playback

import (
	"encoding/binary"
	"testing"
)

func samples(amplitude int16, n int) []byte {
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(amplitude))
	}
	return out
}

func TestEnvelopeEmpty(t *testing.T) {
	if got := Envelope(nil); got != nil {
		t.Errorf("expected nil for empty pcm, got %v", got)
	}
	if got := Envelope([]byte{0x01}); got != nil {
		t.Errorf("sub-sample input should produce nothing, got %v", got)
	}
}

func TestEnvelopeWindowCount(t *testing.T) {
	// 2.5 windows of samples yields 3 frames
	pcm := samples(1000, defaultWindow*2+defaultWindow/2)
	frames := Envelope(pcm)
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
}

func TestEnvelopeSilenceIsZero(t *testing.T) {
	for _, v := range Envelope(samples(0, defaultWindow*2)) {
		if v != 0 {
			t.Errorf("silence produced amplitude %f", v)
		}
	}
}

func TestEnvelopeMonotonicWithLoudness(t *testing.T) {
	quiet := EnvelopeWindowed(samples(500, 256), 256)
	loud := EnvelopeWindowed(samples(8000, 256), 256)
	if len(quiet) != 1 || len(loud) != 1 {
		t.Fatalf("expected single frames, got %d/%d", len(quiet), len(loud))
	}
	if loud[0] <= quiet[0] {
		t.Errorf("louder audio must yield larger amplitude: %f vs %f", loud[0], quiet[0])
	}
	if loud[0] > 1 || quiet[0] < 0 {
		t.Errorf("amplitudes out of range: %f, %f", loud[0], quiet[0])
	}
}

func TestEnvelopeWindowedZeroWindowDefaults(t *testing.T) {
	pcm := samples(1000, defaultWindow)
	if got := EnvelopeWindowed(pcm, 0); len(got) != 1 {
		t.Errorf("expected default window, got %d frames", len(got))
	}
}
