package audio

import (
	"sync"
)

// MemorySink is a Sink that never produces sound. Tracks stay queued until
// Finish is called, which makes it useful for tests and headless runs.
type MemorySink struct {
	mu       sync.Mutex
	queue    []string
	appended []string
	failures map[string]error
	paused   bool
	volume   float64
}

// NewMemorySink returns an empty, playing sink at unity volume.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		volume:   1,
		failures: make(map[string]error),
	}
}

// FailOn makes every later Append of path return a DecodeError wrapping err.
func (s *MemorySink) FailOn(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = err
}

func (s *MemorySink) Append(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failures[path]; ok {
		return &DecodeError{Path: path, Err: err}
	}
	s.queue = append(s.queue, path)
	s.appended = append(s.appended, path)
	return nil
}

// Finish drops the track at the head of the queue as if it played out.
func (s *MemorySink) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		s.queue = s.queue[1:]
	}
}

// Queued returns the paths still waiting in the sink.
func (s *MemorySink) Queued() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queue...)
}

// Appended returns every path ever accepted, in order.
func (s *MemorySink) Appended() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.appended...)
}

func (s *MemorySink) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) == 0
}

func (s *MemorySink) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *MemorySink) Play() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *MemorySink) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *MemorySink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *MemorySink) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = ClampVolume(v)
	s.mu.Unlock()
}

func (s *MemorySink) Clear() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
}
