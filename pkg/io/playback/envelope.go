package playback

import (
	"encoding/binary"
	"math"
)

// Amplitude frames drive the character's mouth animation on the client.
// One value per window, normalized 0-1, emphasis-curved so quiet speech
// still moves the mouth visibly.

const defaultWindow = 1024 // samples per amplitude frame

// Envelope computes the amplitude envelope of 16-bit little-endian PCM.
func Envelope(pcm []byte) []float64 {
	return EnvelopeWindowed(pcm, defaultWindow)
}

// EnvelopeWindowed computes one amplitude value per window of the given
// sample count.
func EnvelopeWindowed(pcm []byte, window int) []float64 {
	if window <= 0 {
		window = defaultWindow
	}
	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return nil
	}

	frames := make([]float64, 0, sampleCount/window+1)
	for start := 0; start < sampleCount; start += window {
		end := start + window
		if end > sampleCount {
			end = sampleCount
		}
		var sum float64
		for i := start; i < end; i++ {
			s := float64(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
			sum += s * s
		}
		rms := math.Sqrt(sum/float64(end-start)) / 32768.0
		// sqrt curve lifts low amplitudes for visible articulation
		frames = append(frames, math.Sqrt(rms))
	}
	return frames
}
