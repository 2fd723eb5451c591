package engine

// Mode selects how input events are interpreted.
type Mode int

const (
	Browse Mode = iota
	Search
	Command
)

func (m Mode) String() string {
	switch m {
	case Search:
		return "search"
	case Command:
		return "command"
	default:
		return "browse"
	}
}

// EventKind enumerates the decoded input events the engine understands.
type EventKind int

const (
	EvNone EventKind = iota
	EvChar
	EvMoveUp
	EvMoveDown
	EvMoveTop
	EvMoveBottom
	EvPageNext
	EvPagePrev
	EvOpen
	EvBack
	EvTogglePause
	EvVolumeUp
	EvVolumeDown
	EvEnterSearch
	EvEnterCommand
	EvSubmit
	EvCancel
	EvBackspace
	EvQuit
)

// Event is one decoded input. Char is set for EvChar and Step for moves.
type Event struct {
	Kind EventKind
	Char rune
	Step int
}

// Key returns an event without payload.
func Key(kind EventKind) Event {
	return Event{Kind: kind}
}

// Char returns a typed character event.
func Char(r rune) Event {
	return Event{Kind: EvChar, Char: r}
}

// Move returns a move event of the given size.
func Move(kind EventKind, step int) Event {
	return Event{Kind: kind, Step: step}
}

// ActionKind is what the engine should do in response to an event.
type ActionKind int

const (
	ActNone ActionKind = iota
	ActQuit
	ActMoveUp
	ActMoveDown
	ActMoveTop
	ActMoveBottom
	ActNextPage
	ActPrevPage
	ActOpen
	ActActivate
	ActParent
	ActTogglePause
	ActVolumeUp
	ActVolumeDown
	ActFilter
	ActClearFilter
	ActRunCommand
)

// Action is the outcome of a transition. Text carries the filter or the
// command line; Step carries the move size.
type Action struct {
	Kind ActionKind
	Step int
	Text string
}

const searchSentinel = '|'

// Machine is the Browse/Search/Command state machine together with the
// input buffers of the two text modes.
type Machine struct {
	mode    Mode
	search  []rune
	command []rune
}

// NewMachine starts in Browse mode.
func NewMachine() *Machine {
	return &Machine{mode: Browse}
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// SearchBuffer is the search line including its leading sentinel.
func (m *Machine) SearchBuffer() string {
	return string(m.search)
}

// SearchText is the search line without the sentinel.
func (m *Machine) SearchText() string {
	if len(m.search) == 0 {
		return ""
	}
	return string(m.search[1:])
}

func (m *Machine) CommandBuffer() string {
	return string(m.command)
}

// Handle applies one event and returns the action it produced.
func (m *Machine) Handle(ev Event) Action {
	if ev.Kind == EvQuit {
		return Action{Kind: ActQuit}
	}
	switch m.mode {
	case Search:
		return m.handleSearch(ev)
	case Command:
		return m.handleCommand(ev)
	default:
		return m.handleBrowse(ev)
	}
}

func (m *Machine) handleBrowse(ev Event) Action {
	switch ev.Kind {
	case EvMoveUp:
		return Action{Kind: ActMoveUp, Step: stepOf(ev)}
	case EvMoveDown:
		return Action{Kind: ActMoveDown, Step: stepOf(ev)}
	case EvMoveTop:
		return Action{Kind: ActMoveTop}
	case EvMoveBottom:
		return Action{Kind: ActMoveBottom}
	case EvPageNext:
		return Action{Kind: ActNextPage}
	case EvPagePrev:
		return Action{Kind: ActPrevPage}
	case EvOpen:
		return Action{Kind: ActOpen}
	case EvSubmit:
		return Action{Kind: ActActivate}
	case EvBack:
		return Action{Kind: ActParent}
	case EvTogglePause:
		return Action{Kind: ActTogglePause}
	case EvVolumeUp:
		return Action{Kind: ActVolumeUp}
	case EvVolumeDown:
		return Action{Kind: ActVolumeDown}
	case EvEnterSearch:
		m.mode = Search
		m.search = []rune{searchSentinel}
	case EvEnterCommand:
		m.mode = Command
		m.command = m.command[:0]
	}
	return Action{Kind: ActNone}
}

func (m *Machine) handleSearch(ev Event) Action {
	switch ev.Kind {
	case EvChar:
		m.search = append(m.search, ev.Char)
		return Action{Kind: ActFilter, Text: m.SearchText()}
	case EvBackspace:
		if len(m.search) > 1 {
			m.search = m.search[:len(m.search)-1]
			return Action{Kind: ActFilter, Text: m.SearchText()}
		}
	case EvSubmit:
		text := m.SearchText()
		m.mode = Browse
		return Action{Kind: ActFilter, Text: text}
	case EvCancel:
		m.mode = Browse
		m.search = m.search[:0]
		return Action{Kind: ActClearFilter}
	}
	return Action{Kind: ActNone}
}

func (m *Machine) handleCommand(ev Event) Action {
	switch ev.Kind {
	case EvChar:
		m.command = append(m.command, ev.Char)
	case EvBackspace:
		if len(m.command) > 0 {
			m.command = m.command[:len(m.command)-1]
		}
	case EvSubmit:
		line := string(m.command)
		m.mode = Browse
		m.command = m.command[:0]
		return Action{Kind: ActRunCommand, Text: line}
	case EvCancel:
		m.mode = Browse
		m.command = m.command[:0]
	}
	return Action{Kind: ActNone}
}

func stepOf(ev Event) int {
	if ev.Step < 1 {
		return 1
	}
	return ev.Step
}
