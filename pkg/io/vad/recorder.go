package vad

import (
	"github.com/smallnest/ringbuffer"
)

// MinCaptureBytes suppresses spurious near-empty submissions such as
// clipped noise bursts.
const MinCaptureBytes = 1000

// Recorder accumulates PCM between a speech-start and speech-end event.
// The ring overwrites its oldest audio when an utterance outruns capacity,
// keeping the most recent speech.
type Recorder struct {
	rb   *ringbuffer.RingBuffer
	size int
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{
		rb:   ringbuffer.New(capacity).SetBlocking(false),
		size: capacity,
	}
}

// Write appends captured PCM, evicting the oldest bytes when full.
func (r *Recorder) Write(pcm []byte) {
	if len(pcm) > r.size {
		pcm = pcm[len(pcm)-r.size:]
	}
	for r.rb.Free() < len(pcm) {
		skip := make([]byte, len(pcm)-r.rb.Free())
		if _, err := r.rb.Read(skip); err != nil {
			r.rb.Reset()
			break
		}
	}
	r.rb.Write(pcm)
}

// Len reports bytes captured so far.
func (r *Recorder) Len() int {
	return r.rb.Length()
}

// Flush returns the assembled utterance and resets the buffer. Captures
// below MinCaptureBytes are discarded and reported as not ok.
func (r *Recorder) Flush() ([]byte, bool) {
	n := r.rb.Length()
	data := make([]byte, n)
	if n > 0 {
		r.rb.Read(data)
	}
	r.rb.Reset()

	if n < MinCaptureBytes {
		return nil, false
	}
	return data, true
}
