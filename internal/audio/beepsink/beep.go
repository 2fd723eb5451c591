// Package beepsink plays queued tracks on the default output device
// through the beep speaker.
package beepsink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"dirplay/internal/audio"
	"dirplay/internal/library"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

var (
	_ audio.Sink           = (*Sink)(nil)
	_ audio.SpectrumSource = (*Sink)(nil)
)

// Sink plays tracks through the default output device. All queue and
// control state is mutated under the speaker lock, which is also what the
// audio goroutine holds while pulling samples.
type Sink struct {
	queue   *trackQueue
	capture *captureStreamer
	ctrl    *beep.Ctrl
	gain    *effects.Gain
	volume  float64
	log     logrus.FieldLogger
}

// New opens the speaker and starts streaming silence.
func New(volume float64, log logrus.FieldLogger) (*Sink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	volume = audio.ClampVolume(volume)
	q := &trackQueue{}
	capture := newCaptureStreamer(q)
	ctrl := &beep.Ctrl{Streamer: capture}
	gain := &effects.Gain{Streamer: ctrl, Gain: volume - 1}

	speaker.Play(gain)

	log.WithField("component", "sink").Debugf("speaker ready at %d Hz", sampleRate)
	return &Sink{
		queue:   q,
		capture: capture,
		ctrl:    ctrl,
		gain:    gain,
		volume:  volume,
		log:     log.WithField("component", "sink"),
	}, nil
}

// Append decodes the file at path and queues it.
func (s *Sink) Append(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &audio.DecodeError{Path: path, Err: err}
	}

	streamer, format, err := decode(path, file)
	if err != nil {
		file.Close()
		return &audio.DecodeError{Path: path, Err: err}
	}

	var out beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s.log.Debugf("resampling %s from %d to %d", path, format.SampleRate, sampleRate)
		out = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}

	speaker.Lock()
	s.queue.add(queuedTrack{
		path:     path,
		streamer: out,
		closers:  []io.Closer{streamer, file},
	})
	speaker.Unlock()

	s.log.Debugf("queued %s", path)
	return nil
}

func decode(path string, file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch library.DetectFormat(path) {
	case library.FormatMP3:
		return mp3.Decode(file)
	case library.FormatFLAC:
		return flac.Decode(file)
	case library.FormatWAV:
		return wav.Decode(file)
	case library.FormatOGG:
		return vorbis.Decode(file)
	default:
		return nil, beep.Format{}, errors.New("unsupported audio format")
	}
}

func (s *Sink) IsEmpty() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.queue.len() == 0
}

func (s *Sink) IsPaused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.ctrl.Paused
}

func (s *Sink) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *Sink) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *Sink) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return s.volume
}

// SetVolume sets a linear gain where 1 is the source level.
func (s *Sink) SetVolume(v float64) {
	v = audio.ClampVolume(v)
	speaker.Lock()
	s.volume = v
	s.gain.Gain = v - 1
	speaker.Unlock()
}

func (s *Sink) Clear() {
	speaker.Lock()
	s.queue.clear()
	speaker.Unlock()
}

// Spectrum returns the amplitude profile of the most recent samples.
func (s *Sink) Spectrum() []float64 {
	return s.capture.Spectrum()
}

// Close stops playback and releases the output device.
func (s *Sink) Close() {
	s.Clear()
	speaker.Close()
}
