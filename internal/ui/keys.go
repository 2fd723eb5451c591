package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dirplay/internal/engine"
)

type keyMap struct {
	Quit       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Down       key.Binding
	BigDown    key.Binding
	Up         key.Binding
	BigUp      key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Open       key.Binding
	Parent     key.Binding
	Enter      key.Binding
	Search     key.Binding
	Command    key.Binding
	Pause      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		BigDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "down more")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		BigUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "up more")),
		NextPage:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev page")),
		Open:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "open")),
		Parent:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "parent")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/open")),
		Search:     key.NewBinding(key.WithKeys("|", "/"), key.WithHelp("|", "search")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "vol up")),
		VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "vol down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Open, k.Parent, k.Search, k.Command, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.BigUp, k.BigDown, k.Top, k.Bottom},
		{k.NextPage, k.PrevPage, k.Open, k.Parent, k.Enter},
		{k.Search, k.Command, k.Pause, k.VolumeUp, k.VolumeDown, k.Quit},
	}
}

// decode turns a key press into engine events. Which keys mean what
// depends on the mode: in search and command mode printable keys are text.
func (k keyMap) decode(msg tea.KeyMsg, mode engine.Mode, bigStep int) []engine.Event {
	if mode != engine.Browse {
		return decodeText(msg)
	}

	switch {
	case key.Matches(msg, k.Quit):
		return events(engine.Key(engine.EvQuit))
	case key.Matches(msg, k.Top):
		return events(engine.Key(engine.EvMoveTop))
	case key.Matches(msg, k.Bottom):
		return events(engine.Key(engine.EvMoveBottom))
	case key.Matches(msg, k.Down):
		return events(engine.Move(engine.EvMoveDown, 1))
	case key.Matches(msg, k.BigDown):
		return events(engine.Move(engine.EvMoveDown, bigStep))
	case key.Matches(msg, k.Up):
		return events(engine.Move(engine.EvMoveUp, 1))
	case key.Matches(msg, k.BigUp):
		return events(engine.Move(engine.EvMoveUp, bigStep))
	case key.Matches(msg, k.NextPage):
		return events(engine.Key(engine.EvPageNext))
	case key.Matches(msg, k.PrevPage):
		return events(engine.Key(engine.EvPagePrev))
	case key.Matches(msg, k.Open):
		return events(engine.Key(engine.EvOpen))
	case key.Matches(msg, k.Parent):
		return events(engine.Key(engine.EvBack))
	case key.Matches(msg, k.Enter):
		return events(engine.Key(engine.EvSubmit))
	case key.Matches(msg, k.Search):
		return events(engine.Key(engine.EvEnterSearch))
	case key.Matches(msg, k.Command):
		return events(engine.Key(engine.EvEnterCommand))
	case key.Matches(msg, k.Pause):
		return events(engine.Key(engine.EvTogglePause))
	case key.Matches(msg, k.VolumeUp):
		return events(engine.Key(engine.EvVolumeUp))
	case key.Matches(msg, k.VolumeDown):
		return events(engine.Key(engine.EvVolumeDown))
	}
	return nil
}

func decodeText(msg tea.KeyMsg) []engine.Event {
	switch msg.Type {
	case tea.KeyCtrlC:
		return events(engine.Key(engine.EvQuit))
	case tea.KeyEnter:
		return events(engine.Key(engine.EvSubmit))
	case tea.KeyEsc:
		return events(engine.Key(engine.EvCancel))
	case tea.KeyBackspace:
		return events(engine.Key(engine.EvBackspace))
	case tea.KeySpace:
		return events(engine.Char(' '))
	case tea.KeyRunes:
		out := make([]engine.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, engine.Char(r))
		}
		return out
	}
	return nil
}

func events(evs ...engine.Event) []engine.Event {
	return evs
}
