package vad

import (
	"encoding/binary"
	"testing"
	"time"
)

func pcmFrame(amplitude int16, samples int) []byte {
	data := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(amplitude))
	}
	return data
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("empty frame RMS = %f", got)
	}
	if got := RMS(pcmFrame(0, 160)); got != 0 {
		t.Errorf("silence RMS = %f", got)
	}
	// constant amplitude A has RMS exactly A/32768
	got := RMS(pcmFrame(3277, 160))
	want := 3277.0 / 32768.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("RMS = %f, want %f", got, want)
	}
}

func TestDetectorOneStartOneEnd(t *testing.T) {
	d := NewDetector(DefaultConfig())
	base := time.Now()

	loud := pcmFrame(3000, 320)  // ~0.09 RMS, well over the 0.02 gate
	quiet := pcmFrame(100, 320)  // ~0.003 RMS

	var events []Event
	// 500ms of speech in 20ms frames
	for i := 0; i < 25; i++ {
		frame := Frame{Data: loud, Timestamp: base.Add(time.Duration(i) * 20 * time.Millisecond)}
		events = append(events, d.Process(frame)...)
	}
	// then silence well past the 1500ms hangover
	for i := 25; i < 125; i++ {
		frame := Frame{Data: quiet, Timestamp: base.Add(time.Duration(i) * 20 * time.Millisecond)}
		events = append(events, d.Process(frame)...)
	}

	if len(events) != 2 {
		t.Fatalf("expected exactly start+end, got %d events: %+v", len(events), events)
	}
	if events[0].Type != SpeechStart || events[1].Type != SpeechEnd {
		t.Errorf("wrong event order: %+v", events)
	}
	gap := events[1].Timestamp.Sub(events[0].Timestamp)
	if gap < DefaultConfig().SilenceDuration {
		t.Errorf("end fired before the silence window elapsed: %v", gap)
	}
	if d.Recording() {
		t.Error("detector still recording after end event")
	}
}

func TestDetectorShortPauseDoesNotEnd(t *testing.T) {
	d := NewDetector(DefaultConfig())
	base := time.Now()
	loud := pcmFrame(3000, 320)
	quiet := pcmFrame(0, 320)

	d.Process(Frame{Data: loud, Timestamp: base})
	// a 1s pause is under the 1.5s window
	for i := 1; i <= 50; i++ {
		events := d.Process(Frame{Data: quiet, Timestamp: base.Add(time.Duration(i) * 20 * time.Millisecond)})
		if len(events) != 0 {
			t.Fatalf("end fired during a short pause at frame %d: %+v", i, events)
		}
	}
	if !d.Recording() {
		t.Error("short pause should keep the utterance open")
	}
}

func TestDetectorReset(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Process(Frame{Data: pcmFrame(3000, 320), Timestamp: time.Now()})
	if !d.Recording() {
		t.Fatal("expected recording after loud frame")
	}
	d.Reset()
	if d.Recording() {
		t.Error("reset should clear utterance state")
	}
}

func TestDetectorZeroConfigUsesDefaults(t *testing.T) {
	d := NewDetector(Config{})
	if d.config.Threshold != 0.02 || d.config.SilenceDuration != 1500*time.Millisecond {
		t.Errorf("zero config not defaulted: %+v", d.config)
	}
}

func TestRecorderMinCaptureGuard(t *testing.T) {
	r := NewRecorder(4096)
	r.Write(make([]byte, MinCaptureBytes-1))
	if _, ok := r.Flush(); ok {
		t.Error("capture below the minimum should be discarded")
	}
	// flush resets even when discarding
	if r.Len() != 0 {
		t.Errorf("expected empty recorder after flush, got %d bytes", r.Len())
	}

	r.Write(make([]byte, MinCaptureBytes))
	data, ok := r.Flush()
	if !ok || len(data) != MinCaptureBytes {
		t.Errorf("expected %d-byte capture, got %d ok=%v", MinCaptureBytes, len(data), ok)
	}
}

func TestRecorderEvictsOldestOnOverflow(t *testing.T) {
	r := NewRecorder(2048)
	old := make([]byte, 2048)
	for i := range old {
		old[i] = 0xAA
	}
	fresh := make([]byte, 1024)
	for i := range fresh {
		fresh[i] = 0xBB
	}

	r.Write(old)
	r.Write(fresh)

	data, ok := r.Flush()
	if !ok {
		t.Fatal("expected a valid capture")
	}
	if len(data) != 2048 {
		t.Fatalf("expected capacity-sized capture, got %d", len(data))
	}
	// the newest audio must be at the tail
	for i := 1024; i < 2048; i++ {
		if data[i] != 0xBB {
			t.Fatalf("byte %d = %x, newest audio was evicted", i, data[i])
		}
	}
}

func TestRecorderOversizedWriteKeepsTail(t *testing.T) {
	r := NewRecorder(1024)
	big := make([]byte, 4096)
	big[4095] = 0x77
	r.Write(big)
	data, ok := r.Flush()
	if !ok || len(data) != 1024 {
		t.Fatalf("expected 1024 bytes, got %d ok=%v", len(data), ok)
	}
	if data[1023] != 0x77 {
		t.Error("tail of oversized write was lost")
	}
}
