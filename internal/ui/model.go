// Package ui is the bubbletea front end: it decodes keys into engine
// events, drives the playback tick and renders engine snapshots.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"dirplay/internal/config"
	"dirplay/internal/engine"
)

// DirWatcher follows the directory being browsed.
type DirWatcher interface {
	Watch(dir string) error
	Changes() <-chan string
}

// Options configures a Model. Watcher may be nil.
type Options struct {
	Engine       *engine.Engine
	Watcher      DirWatcher
	Colors       config.Colors
	TickInterval time.Duration
	BigStep      int
	Logger       logrus.FieldLogger
}

type tickMsg time.Time

type dirChangedMsg string

// Model is the bubbletea model wrapping the engine.
type Model struct {
	engine  *engine.Engine
	watcher DirWatcher
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  config.Styles
	tick    time.Duration
	bigStep int
	log     logrus.FieldLogger

	watching string
	width    int
	height   int
}

// New builds the model and starts watching the engine's directory.
func New(opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.BigStep < 1 {
		opts.BigStep = 5
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	styles := opts.Colors.Styles()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Gauge

	m := Model{
		engine:  opts.Engine,
		watcher: opts.Watcher,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		styles:  styles,
		tick:    opts.TickInterval,
		bigStep: opts.BigStep,
		log:     opts.Logger.WithField("component", "ui"),
	}
	m.follow()
	return m
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-ch
		if !ok {
			return nil
		}
		return dirChangedMsg(dir)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick), m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.engine.Tick()
		return m, tickCmd(m.tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dirChangedMsg:
		if string(msg) == m.engine.Dir() {
			m.engine.Refresh()
		}
		return m, waitForChange(m.watcher.Changes())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.Resize(listRows(msg.Height))
		return m, nil

	case tea.KeyMsg:
		for _, ev := range m.keys.decode(msg, m.engine.Mode(), m.bigStep) {
			if m.engine.Handle(ev) {
				return m, tea.Quit
			}
		}
		m.follow()
		return m, nil
	}
	return m, nil
}

// follow points the watcher at the engine's directory after navigation.
func (m *Model) follow() {
	if m.watcher == nil {
		return
	}
	dir := m.engine.Dir()
	if dir == m.watching {
		return
	}
	if err := m.watcher.Watch(dir); err != nil {
		m.log.WithError(err).Warnf("cannot watch %s", dir)
	}
	m.watching = dir
}

func (m Model) View() string {
	return m.render(m.engine.Snapshot())
}
