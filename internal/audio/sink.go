package audio

import "fmt"

// MaxVolume allows a little gain above unity.
const MaxVolume = 1.25

// Sink is the output device as seen by the playlist. Implementations drain
// appended tracks on their own schedule and must be safe for concurrent use.
type Sink interface {
	// Append queues the file at path behind anything already queued.
	Append(path string) error
	// IsEmpty reports whether every appended track has finished.
	IsEmpty() bool
	IsPaused() bool
	Play()
	Pause()
	Volume() float64
	SetVolume(v float64)
	// Clear drops every queued track, including the one being heard.
	Clear()
}

// SpectrumSource is implemented by sinks that can report the amplitude of
// recently played audio.
type SpectrumSource interface {
	Spectrum() []float64
}

// DecodeError is returned by Append when a file cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ClampVolume limits v to [0, MaxVolume].
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
