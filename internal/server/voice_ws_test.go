package server

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/foxworks/reface/internal/domains/agent"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/io/vad"
)

func loudFrame(bytes int) []byte {
	frame := make([]byte, bytes)
	for i := 0; i < bytes; i += 2 {
		binary.LittleEndian.PutUint16(frame[i:], 3000) // ~0.09 RMS
	}
	return frame
}

func newTestVoiceConn() *voiceConn {
	vc := &voiceConn{
		sessionID: "test-session",
		detector:  vad.NewDetector(vad.DefaultConfig()),
		recorder:  vad.NewRecorder(recorderCapacity),
	}
	vc.state = agent.NewTurnState(nil)
	return vc
}

func TestSpeechStartFrameRecordedOnce(t *testing.T) {
	vm := &VoiceManager{deps: Dependencies{Logger: Logger.New(true)}}
	vc := newTestVoiceConn()

	frame := loudFrame(640)
	vm.handleAudioFrame(context.Background(), vc, frame)

	if got := vc.recorder.Len(); got != len(frame) {
		t.Fatalf("recorder holds %d bytes after one %d-byte speech-start frame", got, len(frame))
	}
}

func TestUtteranceBytesMatchInput(t *testing.T) {
	vm := &VoiceManager{deps: Dependencies{Logger: Logger.New(true)}}
	vc := newTestVoiceConn()

	// five loud frames; manual timestamps are not needed because the
	// recorder is inspected before the end event
	total := 0
	for i := 0; i < 5; i++ {
		frame := loudFrame(640)
		vm.handleAudioFrame(context.Background(), vc, frame)
		total += len(frame)
	}

	if got := vc.recorder.Len(); got != total {
		t.Fatalf("recorder holds %d bytes for %d bytes of speech", got, total)
	}
}

func TestQuietFramesNotRecorded(t *testing.T) {
	vm := &VoiceManager{deps: Dependencies{Logger: Logger.New(true)}}
	vc := newTestVoiceConn()

	vm.handleAudioFrame(context.Background(), vc, make([]byte, 640))
	if got := vc.recorder.Len(); got != 0 {
		t.Fatalf("silence was recorded: %d bytes", got)
	}
	if vc.detector.Recording() {
		t.Error("detector should not be recording silence")
	}
}

func TestShortCaptureDiscardedOnSpeechEnd(t *testing.T) {
	vc := newTestVoiceConn()

	base := time.Now()
	vc.detector.Process(vad.Frame{Data: loudFrame(640), Timestamp: base})
	vc.recorder.Write(make([]byte, vad.MinCaptureBytes-1))

	// a quiet frame past the silence window raises the end event; the
	// sub-minimum capture must be dropped without a turn attempt
	quiet := vad.Frame{Data: make([]byte, 640), Timestamp: base.Add(2 * time.Second)}
	for _, ev := range vc.detector.Process(quiet) {
		if ev.Type == vad.SpeechEnd {
			if _, ok := vc.recorder.Flush(); ok {
				t.Fatal("sub-minimum capture was accepted")
			}
		}
	}
	if vc.recorder.Len() != 0 {
		t.Errorf("recorder not reset after discard: %d bytes", vc.recorder.Len())
	}
}
