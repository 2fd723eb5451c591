package engine

import (
	"errors"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"dirplay/internal/audio"
	"dirplay/internal/library"
)

// fakeLister serves listings from memory. Directories missing from dirs
// fail with an IOError.
type fakeLister struct {
	dirs  map[string][]library.Entry
	calls int
}

func newFakeLister() *fakeLister {
	return &fakeLister{dirs: make(map[string][]library.Entry)}
}

func (f *fakeLister) add(dir string, names ...string) {
	entries := make([]library.Entry, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			entries = append(entries, library.NewDirectory(filepath.Join(dir, strings.TrimSuffix(name, "/"))))
			continue
		}
		entries = append(entries, library.NewFile(filepath.Join(dir, name)))
	}
	f.dirs[dir] = entries
}

func (f *fakeLister) List(dir, filter string) ([]library.Entry, error) {
	f.calls++
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, &library.IOError{Path: dir, Err: errors.New("permission denied")}
	}
	var out []library.Entry
	for _, e := range entries {
		if strings.Contains(e.Name(), filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeLoader gives every file a fixed duration unless listed in broken.
type fakeLoader struct {
	durations map[string]time.Duration
	broken    map[string]bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		durations: make(map[string]time.Duration),
		broken:    make(map[string]bool),
	}
}

func (f *fakeLoader) Load(path string) (library.Metadata, error) {
	if f.broken[path] {
		return library.Metadata{}, &library.MetadataError{Path: path, Err: errors.New("corrupt header")}
	}
	d, ok := f.durations[path]
	if !ok {
		d = 3 * time.Minute
	}
	return library.Metadata{Title: filepath.Base(path), Duration: d}, nil
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	lister *fakeLister
	loader *fakeLoader
	sink   *audio.MemorySink
	clock  *fakeClock
	engine *Engine
}

// newFixture builds an engine over /music with an album folder and three
// songs, with room for three rows.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		lister: newFakeLister(),
		loader: newFakeLoader(),
		sink:   audio.NewMemorySink(),
		clock:  newFakeClock(),
	}
	f.lister.add("/music", "c.mp3", "album/", "a.mp3", "b.mp3")
	f.lister.add("/music/album", "01.flac", "02.flac")

	e, err := New(Options{
		Lister: f.lister,
		Loader: f.loader,
		Sink:   f.sink,
		Root:   "/music",
		Height: 3,
		Now:    f.clock.Now,
		Rand:   rand.New(rand.NewSource(1)),
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	f.engine = e
	return f
}

func (f *fixture) command(line string) {
	f.engine.Handle(Key(EvEnterCommand))
	for _, r := range line {
		f.engine.Handle(Char(r))
	}
	f.engine.Handle(Key(EvSubmit))
}

func (f *fixture) pendingNames() []string {
	var names []string
	for _, t := range f.engine.Snapshot().Pending {
		names = append(names, t.Name)
	}
	return names
}
