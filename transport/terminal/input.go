package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned for a line that is neither a command nor a cell
var ErrInvalidInput = errors.New("invalid input")

// Command is a parsed input line
type Command int

const (
	CommandClick Command = iota
	CommandReset
	CommandHistory
	CommandHelp
	CommandQuit
	CommandNone
)

var commandWords = map[string]Command{
	"reset":   CommandReset,
	"r":       CommandReset,
	"history": CommandHistory,
	"moves":   CommandHistory,
	"help":    CommandHelp,
	"h":       CommandHelp,
	"?":       CommandHelp,
	"quit":    CommandQuit,
	"exit":    CommandQuit,
	"q":       CommandQuit,
}

// ParseLine classifies an input line. For CommandClick the cell is returned.
func ParseLine(line string) (Command, int, int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return CommandNone, 0, 0, nil
	}
	if cmd, ok := commandWords[strings.ToLower(line)]; ok {
		return cmd, 0, 0, nil
	}
	row, col, err := ParseCell(line)
	if err != nil {
		return CommandNone, 0, 0, err
	}
	return CommandClick, row, col, nil
}

// ParseCell parses "row col", "row,col" or "(row,col)"
func ParseCell(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: expected row and column, got %q", ErrInvalidInput, s)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad row %q", ErrInvalidInput, fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad column %q", ErrInvalidInput, fields[1])
	}
	return row, col, nil
}
