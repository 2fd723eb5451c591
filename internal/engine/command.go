package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Verb is a command of the command line.
type Verb int

const (
	VerbNone Verb = iota
	VerbRemove
	VerbClear
	VerbAll
	VerbOrder
	VerbSingleCycle
	VerbNext
	VerbShuffle
)

var verbs = map[string]Verb{
	"REMOVE":      VerbRemove,
	"RM":          VerbRemove,
	"CLEAR":       VerbClear,
	"CLS":         VerbClear,
	"ALL":         VerbAll,
	"ORDER":       VerbOrder,
	"OD":          VerbOrder,
	"SINGLECYCLE": VerbSingleCycle,
	"SC":          VerbSingleCycle,
	"NEXT":        VerbNext,
	"N":           VerbNext,
	"SHUFFLE":     VerbShuffle,
	"SH":          VerbShuffle,
}

var (
	ErrUnknownCommand = errors.New("not a command")
	ErrBadIndex       = errors.New("index must be a positive integer")
	ErrMissingIndex   = errors.New("REMOVE needs at least one index")
)

// CommandError reports a token of the command line that could not be used.
type CommandError struct {
	Token string
	Err   error
}

func (e *CommandError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Token)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParsedCommand is a command line after parsing. Indices are 1-based and
// only set for VerbRemove.
type ParsedCommand struct {
	Verb    Verb
	Indices []int
}

// ParseCommand parses a command line such as ":rm 2 3". The verb is
// matched case-insensitively. Bad index tokens are reported but do not
// stop the remaining indices from being parsed.
func ParseCommand(line string) (ParsedCommand, []error) {
	line = strings.TrimPrefix(strings.TrimSpace(line), ":")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParsedCommand{}, []error{&CommandError{Err: ErrUnknownCommand}}
	}

	verb, ok := verbs[strings.ToUpper(fields[0])]
	if !ok {
		return ParsedCommand{}, []error{&CommandError{Token: fields[0], Err: ErrUnknownCommand}}
	}

	cmd := ParsedCommand{Verb: verb}
	if verb != VerbRemove {
		return cmd, nil
	}

	var errs []error
	for _, tok := range fields[1:] {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 {
			errs = append(errs, &CommandError{Token: tok, Err: ErrBadIndex})
			continue
		}
		cmd.Indices = append(cmd.Indices, n)
	}
	if len(fields) == 1 {
		errs = append(errs, &CommandError{Err: ErrMissingIndex})
	}
	return cmd, errs
}
