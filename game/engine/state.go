package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GameState owns the stones of one game and enforces the board invariants:
// every stone is on the board and no two stones share a cell.
type GameState struct {
	board     Board
	stones    []Stone
	initial   [2][]Position
	observers []MoveObserver
	logger    *zap.Logger
}

// DefaultStones returns the standard opening: seven First stones along the
// top edge and seven Second stones along the bottom edge.
func DefaultStones() []Stone {
	return []Stone{
		NewStone(First, Position{1, 0}),
		NewStone(First, Position{0, 0}),
		NewStone(First, Position{0, 1}),
		NewStone(First, Position{0, 2}),
		NewStone(First, Position{0, 3}),
		NewStone(First, Position{0, 4}),
		NewStone(First, Position{1, 4}),
		NewStone(Second, Position{3, 0}),
		NewStone(Second, Position{4, 0}),
		NewStone(Second, Position{4, 1}),
		NewStone(Second, Position{4, 2}),
		NewStone(Second, Position{4, 3}),
		NewStone(Second, Position{4, 4}),
		NewStone(Second, Position{3, 4}),
	}
}

// NewDefaultGameState creates the standard 5x5 game.
func NewDefaultGameState() *GameState {
	state, err := NewGameState(DefaultBoardSize, DefaultStones()...)
	if err != nil {
		// The default opening is constant and valid.
		panic(err)
	}
	return state
}

// NewGameState creates a game with an arbitrary set of stones. Stone indices
// follow the argument order and stay fixed for the life of the game.
func NewGameState(boardSize int, stones ...Stone) (*GameState, error) {
	if boardSize <= 0 {
		return nil, fmt.Errorf("%w: board size must be positive, got %d", ErrInvalidConfiguration, boardSize)
	}

	gs := &GameState{
		board:  Board{Size: boardSize},
		stones: make([]Stone, len(stones)),
		logger: zap.NewNop(),
	}
	copy(gs.stones, stones)

	seen := make(map[Position]int, len(stones))
	for i, stone := range gs.stones {
		if stone.side != First && stone.side != Second {
			return nil, fmt.Errorf("%w: stone %d has unknown side %d", ErrInvalidConfiguration, i, int(stone.side))
		}
		if !gs.board.Contains(stone.position) {
			return nil, fmt.Errorf("%w: stone %d at %s is off the %dx%d board",
				ErrInvalidConfiguration, i, stone.position, boardSize, boardSize)
		}
		if other, dup := seen[stone.position]; dup {
			return nil, fmt.Errorf("%w: stones %d and %d both at %s", ErrInvalidConfiguration, other, i, stone.position)
		}
		seen[stone.position] = i
		gs.initial[stone.side] = append(gs.initial[stone.side], stone.position)
	}

	return gs, nil
}

// SetLogger replaces the logger used for move tracing.
func (gs *GameState) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gs.logger = logger
}

// Subscribe registers an observer for position changes.
func (gs *GameState) Subscribe(o MoveObserver) {
	gs.observers = append(gs.observers, o)
}

// Board returns the board the game is played on.
func (gs *GameState) Board() Board {
	return gs.board
}

// StoneCount returns the number of stones in the game.
func (gs *GameState) StoneCount() int {
	return len(gs.stones)
}

// Stones returns a copy of all stones in index order.
func (gs *GameState) Stones() []Stone {
	out := make([]Stone, len(gs.stones))
	copy(out, gs.stones)
	return out
}

// SideOf returns the side of stone i.
func (gs *GameState) SideOf(i int) (Side, error) {
	if err := gs.checkIndex(i); err != nil {
		return First, err
	}
	return gs.stones[i].side, nil
}

// PositionOf returns the current position of stone i.
func (gs *GameState) PositionOf(i int) (Position, error) {
	if err := gs.checkIndex(i); err != nil {
		return Position{}, err
	}
	return gs.stones[i].position, nil
}

// IsOnBoard reports whether p lies within the board.
func (gs *GameState) IsOnBoard(p Position) bool {
	return gs.board.Contains(p)
}

// PositionsOfSide returns the current positions of side's stones in stone
// index order.
func (gs *GameState) PositionsOfSide(side Side) []Position {
	positions := make([]Position, 0, len(gs.stones)/2)
	for _, stone := range gs.stones {
		if stone.side == side {
			positions = append(positions, stone.position)
		}
	}
	return positions
}

// InitialPositions returns the starting formation of side.
func (gs *GameState) InitialPositions(side Side) []Position {
	if side != First && side != Second {
		return nil
	}
	out := make([]Position, len(gs.initial[side]))
	copy(out, gs.initial[side])
	return out
}

// StoneIndexAt returns the index of side's stone at p, if there is one.
func (gs *GameState) StoneIndexAt(p Position, side Side) (int, bool) {
	for i, stone := range gs.stones {
		if stone.position == p && stone.side == side {
			return i, true
		}
	}
	return -1, false
}

// IsOccupied reports whether any stone stands on p.
func (gs *GameState) IsOccupied(p Position) bool {
	for _, stone := range gs.stones {
		if stone.position == p {
			return true
		}
	}
	return false
}

func (gs *GameState) checkIndex(i int) error {
	if i < 0 || i >= len(gs.stones) {
		return fmt.Errorf("%w: %d (stone count %d)", ErrIndexOutOfRange, i, len(gs.stones))
	}
	return nil
}

func (gs *GameState) String() string {
	parts := make([]string, len(gs.stones))
	for i, stone := range gs.stones {
		parts[i] = stone.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
