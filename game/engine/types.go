package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultBoardSize is the edge length of the standard board.
	DefaultBoardSize = 5

	// Validation constants
	MinBoardSize = 3
	MaxBoardSize = 26
)

var (
	ErrInvalidDirection     = errors.New("invalid direction")
	ErrIndexOutOfRange      = errors.New("stone index out of range")
	ErrInvalidConfiguration = errors.New("invalid stone configuration")
	ErrIllegalMove          = errors.New("illegal move")
	ErrInvalidSide          = errors.New("invalid side")
)

// Position is a board coordinate. Whether it lies on the board is decided by
// the Board, not by the Position itself.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// MoveTo returns the position one step away in direction d.
func (p Position) MoveTo(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Delta returns the row and column offsets from p to to.
func (p Position) Delta(to Position) (int, int) {
	return to.Row - p.Row, to.Col - p.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Side identifies one of the two players.
type Side int

const (
	First Side = iota
	Second
)

// Sides lists both sides in turn order.
var Sides = [2]Side{First, Second}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == First {
		return Second
	}
	return First
}

func (s Side) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// MarshalText encodes the side as "first" or "second".
func (s Side) MarshalText() ([]byte, error) {
	if s != First && s != Second {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts "first"/"second" and the historical color names
// "blue"/"red".
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseSide converts a side name into a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first", "blue":
		return First, nil
	case "second", "red":
		return Second, nil
	default:
		return First, fmt.Errorf("%w: %q", ErrInvalidSide, name)
	}
}

// SideForTurn returns the side that moves on the given turn number.
func SideForTurn(turn int) Side {
	if turn%2 == 0 {
		return First
	}
	return Second
}

// Stone is a single game piece. Its side never changes; its position changes
// only through GameState.ApplyMove.
type Stone struct {
	side     Side
	position Position
}

// NewStone creates a stone of the given side at p.
func NewStone(side Side, p Position) Stone {
	return Stone{side: side, position: p}
}

// Side returns the stone's owner.
func (s Stone) Side() Side {
	return s.side
}

// Position returns the stone's current cell.
func (s Stone) Position() Position {
	return s.position
}

func (s Stone) String() string {
	return s.side.String() + s.position.String()
}

// moveTo shifts the stone one step in direction d.
func (s *Stone) moveTo(d Direction) {
	s.position = s.position.MoveTo(d)
}

// Board is the square playing field.
type Board struct {
	Size int `json:"size"`
}

// Contains reports whether p lies within the board.
func (b Board) Contains(p Position) bool {
	return 0 <= p.Row && p.Row < b.Size && 0 <= p.Col && p.Col < b.Size
}

// StoneView is the serialisable form of a stone.
type StoneView struct {
	Index    int      `json:"index"`
	Side     Side     `json:"side"`
	Position Position `json:"position"`
}

// Snapshot is a read-only view of a game, used by hosts to render.
type Snapshot struct {
	ConfigName  string      `json:"config_name"`
	BoardSize   int         `json:"board_size"`
	Stones      []StoneView `json:"stones"`
	Turn        int         `json:"turn"`
	CurrentSide Side        `json:"current_side"`
	Phase       Phase       `json:"phase"`
	Selected    *Position   `json:"selected,omitempty"`
	Selectable  []Position  `json:"selectable"`
	GameOver    bool        `json:"game_over"`
	Winner      *Side       `json:"winner,omitempty"`
	Blocked     bool        `json:"blocked,omitempty"`
}

// MoveHistoryEntry represents a single applied move in the game history.
type MoveHistoryEntry struct {
	MoveNumber int       `json:"move_number"`
	Stone      int       `json:"stone"`
	Side       Side      `json:"side"`
	Direction  Direction `json:"direction"`
	From       Position  `json:"from"`
	To         Position  `json:"to"`
	Timestamp  int64     `json:"timestamp"`
}
