package engine

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"dirplay/internal/audio"
	"dirplay/internal/library"
	"dirplay/internal/pathutil"
)

// PlayStyle decides what plays once the sink runs dry.
type PlayStyle int

const (
	Sequential PlayStyle = iota
	SingleRepeat
)

func (s PlayStyle) String() string {
	if s == SingleRepeat {
		return "single"
	}
	return "order"
}

// Loader reads the metadata of an audio file.
type Loader interface {
	Load(path string) (library.Metadata, error)
}

// Track is one playable item. The anchor is the instant the current
// uninterrupted stretch of playback would have started at position zero;
// it is only set while the track is feeding the sink.
type Track struct {
	Path     string
	Name     string
	Artist   string
	Title    string
	Album    string
	Total    time.Duration
	Position time.Duration

	anchor   time.Time
	anchored bool
}

// NewTrack builds a queued track from loaded metadata.
func NewTrack(path string, md library.Metadata) *Track {
	return &Track{
		Path:   path,
		Name:   pathutil.DisplayName(path),
		Artist: md.Artist,
		Title:  md.Title,
		Album:  md.Album,
		Total:  md.Duration,
	}
}

// Anchored reports whether the track is the one feeding the sink.
func (t Track) Anchored() bool {
	return t.anchored
}

// Elapsed is Position clamped to [0, Total]. A zero Total leaves the upper
// bound open.
func (t Track) Elapsed() time.Duration {
	p := t.Position
	if p < 0 {
		return 0
	}
	if t.Total > 0 && p > t.Total {
		return t.Total
	}
	return p
}

// Remaining is the playing time left.
func (t Track) Remaining() time.Duration {
	return t.Total - t.Elapsed()
}

// Percent is the progress rounded to a whole percent, capped at 100.
func (t Track) Percent() int {
	if t.Total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(t.Elapsed()) / float64(t.Total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Playlist owns the pending queue, the now-playing track and the sink.
type Playlist struct {
	sink    audio.Sink
	loader  Loader
	now     func() time.Time
	rng     *rand.Rand
	log     logrus.FieldLogger
	pending []*Track
	playing *Track
	style   PlayStyle

	// repeatCleared stops SingleRepeat from re-feeding the now-playing
	// track after CLEAR. The next popped track or style change resets it.
	repeatCleared bool
}

// NewPlaylist returns an empty sequential playlist.
func NewPlaylist(sink audio.Sink, loader Loader, now func() time.Time, rng *rand.Rand, log logrus.FieldLogger) *Playlist {
	return &Playlist{
		sink:   sink,
		loader: loader,
		now:    now,
		rng:    rng,
		log:    log,
		style:  Sequential,
	}
}

// Enqueue appends t to the pending queue.
func (p *Playlist) Enqueue(t *Track) {
	p.pending = append(p.pending, t)
}

// EnqueuePath loads the metadata of path and enqueues it.
func (p *Playlist) EnqueuePath(path string) error {
	md, err := p.loader.Load(path)
	if err != nil {
		return err
	}
	p.Enqueue(NewTrack(path, md))
	p.log.Debugf("enqueued %s", path)
	return nil
}

// EnqueueAll enqueues every file entry in order. Files that fail to load
// are skipped and their errors returned.
func (p *Playlist) EnqueueAll(entries []library.Entry) []error {
	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := p.EnqueuePath(e.Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Advance feeds the sink when it is empty. Under SingleRepeat the
// now-playing track is fed again from zero; otherwise the next pending
// track is popped. Tracks the sink rejects are dropped and the next one
// is tried.
func (p *Playlist) Advance() []error {
	if !p.sink.IsEmpty() {
		return nil
	}
	if p.style == SingleRepeat && p.playing != nil && !p.repeatCleared {
		t := p.playing
		t.Position = 0
		if err := p.sink.Append(t.Path); err != nil {
			t.anchored = false
			p.playing = nil
			return []error{err}
		}
		p.stamp(t)
		return nil
	}
	return p.popNext()
}

// Skip drops whatever the sink is playing and starts the next pending
// track regardless of the play style.
func (p *Playlist) Skip() []error {
	p.sink.Clear()
	return p.popNext()
}

func (p *Playlist) popNext() []error {
	p.repeatCleared = false
	if p.playing != nil {
		p.playing.anchored = false
		p.playing = nil
	}

	var errs []error
	for len(p.pending) > 0 {
		t := p.pending[0]
		p.pending = p.pending[1:]
		if err := p.sink.Append(t.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		t.Position = 0
		p.stamp(t)
		p.playing = t
		p.log.Debugf("now playing %s", t.Path)
		break
	}
	return errs
}

func (p *Playlist) stamp(t *Track) {
	t.anchor = p.now().Add(-t.Position)
	t.anchored = true
}

// Tick advances when the sink is empty, then updates the position of the
// now-playing track from its anchor unless playback is paused.
func (p *Playlist) Tick() []error {
	var errs []error
	if p.sink.IsEmpty() {
		errs = p.Advance()
	}
	if t := p.playing; t != nil && t.anchored && !p.sink.IsPaused() {
		t.Position = p.now().Sub(t.anchor)
	}
	return errs
}

// TogglePause pauses or resumes the sink. Pausing freezes the position;
// resuming moves the anchor so the frozen position continues from now.
func (p *Playlist) TogglePause() {
	t := p.playing
	if p.sink.IsPaused() {
		p.sink.Play()
		if t != nil && t.anchored {
			t.anchor = p.now().Add(-t.Position)
		}
		return
	}
	if t != nil && t.anchored {
		t.Position = p.now().Sub(t.anchor)
	}
	p.sink.Pause()
}

// RemoveByIndices removes pending tracks by 1-based position. Indices out
// of range are ignored. It returns how many tracks were removed.
func (p *Playlist) RemoveByIndices(indices []int) int {
	uniq := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 1 && i <= len(p.pending) {
			uniq[i] = struct{}{}
		}
	}
	order := make([]int, 0, len(uniq))
	for i := range uniq {
		order = append(order, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	for _, i := range order {
		p.pending = append(p.pending[:i-1], p.pending[i:]...)
	}
	return len(order)
}

// Shuffle permutes the pending queue. The now-playing track is untouched.
func (p *Playlist) Shuffle() {
	if len(p.pending) < 2 {
		return
	}
	p.rng.Shuffle(len(p.pending), func(i, j int) {
		p.pending[i], p.pending[j] = p.pending[j], p.pending[i]
	})
}

// Clear empties the pending queue without stopping playback. The track
// being heard plays to its end but is not repeated.
func (p *Playlist) Clear() {
	p.pending = nil
	p.repeatCleared = true
}

// ChangeVolume adds delta to the sink volume, rounded to two decimals and
// clamped to [0, audio.MaxVolume], and returns the new volume.
func (p *Playlist) ChangeVolume(delta float64) float64 {
	v := math.Round((p.sink.Volume()+delta)*100) / 100
	p.sink.SetVolume(audio.ClampVolume(v))
	return p.sink.Volume()
}

func (p *Playlist) SetStyle(s PlayStyle) {
	p.style = s
	p.repeatCleared = false
}

func (p *Playlist) Style() PlayStyle {
	return p.style
}

func (p *Playlist) Paused() bool {
	return p.sink.IsPaused()
}

func (p *Playlist) Volume() float64 {
	return p.sink.Volume()
}

// Pending returns copies of the pending tracks in play order.
func (p *Playlist) Pending() []Track {
	out := make([]Track, len(p.pending))
	for i, t := range p.pending {
		out[i] = *t
	}
	return out
}

// Playing returns a copy of the now-playing track.
func (p *Playlist) Playing() (Track, bool) {
	if p.playing == nil {
		return Track{}, false
	}
	return *p.playing, true
}

// Count is the number of pending tracks plus the now-playing one.
func (p *Playlist) Count() int {
	n := len(p.pending)
	if p.playing != nil {
		n++
	}
	return n
}

// Remaining is the total playing time left across the queue.
func (p *Playlist) Remaining() time.Duration {
	var d time.Duration
	for _, t := range p.pending {
		d += t.Total
	}
	if p.playing != nil {
		d += p.playing.Remaining()
	}
	return d
}

// Spectrum is the latest amplitude profile when the sink provides one.
func (p *Playlist) Spectrum() []float64 {
	if src, ok := p.sink.(audio.SpectrumSource); ok {
		return src.Spectrum()
	}
	return nil
}
