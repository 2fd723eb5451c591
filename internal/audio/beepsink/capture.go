package beepsink

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

const (
	spectrumBands = 24
	captureSize   = 1024
)

// captureStreamer passes samples through unchanged while keeping a coarse
// amplitude profile of the most recent block for the visualizer.
type captureStreamer struct {
	streamer beep.Streamer
	buffer   []float64

	mu    sync.RWMutex
	bands []float64
}

func newCaptureStreamer(s beep.Streamer) *captureStreamer {
	return &captureStreamer{
		streamer: s,
		buffer:   make([]float64, 0, captureSize),
		bands:    make([]float64, spectrumBands),
	}
}

func (c *captureStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.streamer.Stream(samples)
	if !ok || n == 0 {
		return n, ok
	}

	for i := 0; i < n; i++ {
		c.buffer = append(c.buffer, (samples[i][0]+samples[i][1])/2)
		if len(c.buffer) >= captureSize {
			c.analyze()
			c.buffer = c.buffer[:0]
		}
	}
	return n, ok
}

func (c *captureStreamer) Err() error {
	return c.streamer.Err()
}

// analyze splits the buffer into equal segments and stores the RMS of each.
func (c *captureStreamer) analyze() {
	bandSize := len(c.buffer) / spectrumBands
	if bandSize == 0 {
		return
	}

	bands := make([]float64, spectrumBands)
	for band := range bands {
		start := band * bandSize
		end := start + bandSize

		var sum float64
		for _, v := range c.buffer[start:end] {
			sum += v * v
		}
		bands[band] = math.Sqrt(sum / float64(end-start))
	}

	c.mu.Lock()
	c.bands = bands
	c.mu.Unlock()
}

// Spectrum returns a copy of the latest amplitude profile.
func (c *captureStreamer) Spectrum() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]float64, len(c.bands))
	copy(out, c.bands)
	return out
}
