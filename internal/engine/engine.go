// Package engine holds the application state of the player: the directory
// cursor, the input modes, the command line and the playlist.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"dirplay/internal/audio"
	"dirplay/internal/library"
)

const (
	defaultVolumeStep = 0.05
	defaultHeight     = 10
)

// Options wires the collaborators of an Engine. Lister, Loader and Sink are
// required; everything else has a default.
type Options struct {
	Lister Lister
	Loader Loader
	Sink   audio.Sink

	// Root is the highest directory the browser may climb to.
	Root string
	// Start is the first directory listed. Defaults to Root.
	Start string

	Height     int
	VolumeStep float64

	Now    func() time.Time
	Rand   *rand.Rand
	Logger logrus.FieldLogger
}

// Engine composes the cursor, the mode machine and the playlist. It is not
// safe for concurrent use; one loop owns it.
type Engine struct {
	cursor   *Cursor
	modes    *Machine
	playlist *Playlist

	root       string
	volumeStep float64
	errMsg     string
	log        logrus.FieldLogger
}

// New builds an engine and lists the start directory.
func New(opts Options) (*Engine, error) {
	if opts.Lister == nil || opts.Loader == nil || opts.Sink == nil {
		return nil, errors.New("engine: lister, loader and sink are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = defaultVolumeStep
	}
	if opts.Start == "" {
		opts.Start = opts.Root
	}

	log := opts.Logger.WithField("component", "engine")
	e := &Engine{
		cursor:     NewCursor(opts.Lister, opts.Height),
		modes:      NewMachine(),
		playlist:   NewPlaylist(opts.Sink, opts.Loader, opts.Now, opts.Rand, log),
		root:       opts.Root,
		volumeStep: opts.VolumeStep,
		log:        log,
	}
	if err := e.cursor.EnterDirectory(opts.Start); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", opts.Start, err)
	}
	return e, nil
}

// Handle processes one input event. It reports true when the loop should
// stop.
func (e *Engine) Handle(ev Event) (quit bool) {
	e.errMsg = ""

	act := e.modes.Handle(ev)
	switch act.Kind {
	case ActQuit:
		return true
	case ActMoveUp:
		e.cursor.MoveUp(act.Step)
	case ActMoveDown:
		e.cursor.MoveDown(act.Step)
	case ActMoveTop:
		e.cursor.MoveTop()
	case ActMoveBottom:
		e.cursor.MoveBottom()
	case ActNextPage:
		e.cursor.NextPage()
	case ActPrevPage:
		e.cursor.PreviousPage()
	case ActOpen:
		if sel, ok := e.cursor.Selected(); ok && sel.IsDir() {
			e.report(e.cursor.EnterDirectory(sel.Path))
		}
	case ActActivate:
		e.activate()
	case ActParent:
		e.report(e.cursor.GoToParent(e.root))
	case ActTogglePause:
		e.playlist.TogglePause()
	case ActVolumeUp:
		e.playlist.ChangeVolume(e.volumeStep)
	case ActVolumeDown:
		e.playlist.ChangeVolume(-e.volumeStep)
	case ActFilter:
		e.report(e.cursor.Relist(act.Text))
	case ActClearFilter:
		e.report(e.cursor.Relist(""))
	case ActRunCommand:
		e.runCommand(act.Text)
		e.report(e.cursor.Relist(""))
	}
	return false
}

func (e *Engine) activate() {
	sel, ok := e.cursor.Selected()
	if !ok {
		return
	}
	if sel.IsDir() {
		e.report(e.cursor.EnterDirectory(sel.Path))
		return
	}
	if err := e.playlist.EnqueuePath(sel.Path); err != nil {
		e.report(err)
		return
	}
	e.report(e.playlist.Advance()...)
}

func (e *Engine) runCommand(line string) {
	cmd, errs := ParseCommand(line)
	e.report(errs...)

	switch cmd.Verb {
	case VerbRemove:
		e.playlist.RemoveByIndices(cmd.Indices)
	case VerbClear:
		e.playlist.Clear()
	case VerbAll:
		e.report(e.playlist.EnqueueAll(e.cursor.Files())...)
		e.report(e.playlist.Advance()...)
	case VerbOrder:
		e.playlist.SetStyle(Sequential)
	case VerbSingleCycle:
		e.playlist.SetStyle(SingleRepeat)
	case VerbNext:
		e.report(e.playlist.Skip()...)
	case VerbShuffle:
		e.playlist.Shuffle()
	}
	e.cursor.MoveUp(1)
}

// Tick synchronizes the playlist with the sink. Call it on a fixed period.
func (e *Engine) Tick() {
	e.report(e.playlist.Tick()...)
}

// Resize sets the number of listing rows visible.
func (e *Engine) Resize(height int) {
	e.cursor.SetHeight(height)
}

// Refresh relists the current directory after it changed on disk.
func (e *Engine) Refresh() {
	changed, err := e.cursor.Refresh()
	if err != nil {
		e.report(err)
		return
	}
	if changed {
		e.log.Debugf("relisted %s", e.cursor.Dir())
	}
}

// Dir is the directory being browsed.
func (e *Engine) Dir() string {
	return e.cursor.Dir()
}

// Mode is the active input mode.
func (e *Engine) Mode() Mode {
	return e.modes.Mode()
}

// report writes errs into the error slot. Later errors in the same cycle
// are appended.
func (e *Engine) report(errs ...error) {
	var msgs []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		e.log.WithError(err).Warn("operation failed")
		msgs = append(msgs, err.Error())
	}
	if len(msgs) == 0 {
		return
	}
	if e.errMsg != "" {
		msgs = append([]string{e.errMsg}, msgs...)
	}
	e.errMsg = strings.Join(msgs, "; ")
}

// Err is the message in the error slot, empty when there is none.
func (e *Engine) Err() string {
	return e.errMsg
}

// Snapshot is a read-only copy of everything the view needs.
type Snapshot struct {
	Dir      string
	Root     string
	Filter   string
	Listing  []library.Entry
	Selected int
	Page     Page
	Height   int

	Mode          Mode
	SearchBuffer  string
	CommandBuffer string

	Pending   []Track
	Playing   *Track
	Style     PlayStyle
	Paused    bool
	Volume    float64
	Count     int
	Remaining time.Duration
	Spectrum  []float64

	Error string
}

// HasSelection reports whether a row is selected.
func (s Snapshot) HasSelection() bool {
	return s.Selected >= 0 && s.Selected < len(s.Listing)
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	sel, _ := e.cursor.Selection()
	s := Snapshot{
		Dir:           e.cursor.Dir(),
		Root:          e.root,
		Filter:        e.cursor.Filter(),
		Listing:       e.cursor.Listing(),
		Selected:      sel,
		Page:          e.cursor.Page(),
		Height:        e.cursor.Height(),
		Mode:          e.modes.Mode(),
		SearchBuffer:  e.modes.SearchBuffer(),
		CommandBuffer: e.modes.CommandBuffer(),
		Pending:       e.playlist.Pending(),
		Style:         e.playlist.Style(),
		Paused:        e.playlist.Paused(),
		Volume:        e.playlist.Volume(),
		Count:         e.playlist.Count(),
		Remaining:     e.playlist.Remaining(),
		Error:         e.errMsg,
	}
	if t, ok := e.playlist.Playing(); ok {
		s.Playing = &t
	}
	s.Spectrum = e.playlist.Spectrum()
	return s
}
