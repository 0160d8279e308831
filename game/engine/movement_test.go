package engine

import (
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewDefaultGameState(t *testing.T) {
	state := NewDefaultGameState()

	if state.StoneCount() != 14 {
		t.Fatalf("Expected 14 stones, got %d", state.StoneCount())
	}

	expected := map[Side][]Position{
		First:  {{1, 0}, {0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 4}},
		Second: {{3, 0}, {4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {3, 4}},
	}
	for side, positions := range expected {
		got := state.PositionsOfSide(side)
		if len(got) != 7 {
			t.Fatalf("Expected 7 %s stones, got %d", side, len(got))
		}
		for i, p := range positions {
			if got[i] != p {
				t.Errorf("%s stone %d: expected %s, got %s", side, i, p, got[i])
			}
		}
	}

	for i := 0; i < 7; i++ {
		if side, _ := state.SideOf(i); side != First {
			t.Errorf("Stone %d: expected first, got %s", i, side)
		}
		if side, _ := state.SideOf(i + 7); side != Second {
			t.Errorf("Stone %d: expected second, got %s", i+7, side)
		}
	}
}

func TestNewGameState_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		stones []Stone
	}{
		{
			name: "duplicate position",
			size: 5,
			stones: []Stone{
				NewStone(First, Position{0, 0}),
				NewStone(Second, Position{0, 0}),
			},
		},
		{
			name:   "off board row",
			size:   5,
			stones: []Stone{NewStone(First, Position{5, 0})},
		},
		{
			name:   "negative column",
			size:   5,
			stones: []Stone{NewStone(Second, Position{2, -1})},
		},
		{
			name:   "zero board",
			size:   0,
			stones: nil,
		},
		{
			name:   "unknown side",
			size:   5,
			stones: []Stone{NewStone(Side(7), Position{1, 1})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameState(tt.size, tt.stones...)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNewGameState_CopiesStones(t *testing.T) {
	stones := []Stone{NewStone(First, Position{0, 0}), NewStone(Second, Position{2, 2})}
	state, err := NewGameState(3, stones...)
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}
	stones[0] = NewStone(Second, Position{1, 1})

	if p, _ := state.PositionOf(0); p != (Position{0, 0}) {
		t.Errorf("State should not alias caller's slice, got %s", p)
	}
}

func TestAccessors_IndexOutOfRange(t *testing.T) {
	state := NewDefaultGameState()

	for _, i := range []int{-1, 14, 100} {
		if _, err := state.SideOf(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SideOf(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := state.PositionOf(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("PositionOf(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := state.IsValidMove(i, DownRight); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("IsValidMove(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := state.ValidMoves(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ValidMoves(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestIsValidMove_Scenarios(t *testing.T) {
	state := NewDefaultGameState()

	tests := []struct {
		name      string
		at        Position
		side      Side
		direction Direction
		expected  bool
	}{
		{"corner stone into empty cell", Position{0, 0}, First, DownRight, true},
		{"first stone into empty cell", Position{0, 1}, First, DownRight, true},
		{"second stone onto occupied cell", Position{4, 1}, Second, UpLeft, false},
		{"off the top edge", Position{0, 0}, First, UpLeft, false},
		{"off the left edge", Position{1, 0}, First, DownLeft, false},
		{"onto own stone", Position{0, 1}, First, DownLeft, false},
		{"second stone into empty cell", Position{4, 1}, Second, UpRight, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := state.StoneIndexAt(tt.at, tt.side)
			if !ok {
				t.Fatalf("No %s stone at %s", tt.side, tt.at)
			}
			got, err := state.IsValidMove(index, tt.direction)
			if err != nil {
				t.Fatalf("IsValidMove failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("IsValidMove(%d, %s) = %v, want %v", index, tt.direction, got, tt.expected)
			}
		})
	}
}

func TestValidMoves_MatchesIsValidMove(t *testing.T) {
	state := NewDefaultGameState()

	for i := 0; i < state.StoneCount(); i++ {
		moves, err := state.ValidMoves(i)
		if err != nil {
			t.Fatalf("ValidMoves(%d) failed: %v", i, err)
		}
		inSet := map[Direction]bool{}
		for _, d := range moves {
			inSet[d] = true
		}
		for _, d := range Directions {
			ok, _ := state.IsValidMove(i, d)
			if ok != inSet[d] {
				t.Errorf("Stone %d direction %s: IsValidMove=%v, in ValidMoves=%v", i, d, ok, inSet[d])
			}
		}
	}
}

func TestApplyMove_NotifiesObservers(t *testing.T) {
	state := NewDefaultGameState()

	type moved struct {
		index    int
		from, to Position
	}
	var events []moved
	state.Subscribe(ObserverFuncs{StoneMoved: func(i int, from, to Position) {
		events = append(events, moved{i, from, to})
	}})

	index, _ := state.StoneIndexAt(Position{0, 0}, First)
	if err := state.ApplyMove(index, DownRight); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	if p, _ := state.PositionOf(index); p != (Position{1, 1}) {
		t.Errorf("Expected stone at (1,1), got %s", p)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(events))
	}
	want := moved{index, Position{0, 0}, Position{1, 1}}
	if events[0] != want {
		t.Errorf("Expected %+v, got %+v", want, events[0])
	}
}

func TestApplyMove_IllegalMoveLeavesStateUntouched(t *testing.T) {
	state := NewDefaultGameState()
	notified := false
	state.Subscribe(ObserverFuncs{StoneMoved: func(int, Position, Position) { notified = true }})

	index, _ := state.StoneIndexAt(Position{4, 1}, Second)
	err := state.ApplyMove(index, UpLeft)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Expected ErrIllegalMove, got %v", err)
	}
	if p, _ := state.PositionOf(index); p != (Position{4, 1}) {
		t.Errorf("Stone should not have moved, now at %s", p)
	}
	if notified {
		t.Error("No notification expected for a rejected move")
	}

	if err := state.ApplyMove(99, UpLeft); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove for bad index, got %v", err)
	}
}

func TestApplyMove_LogsMove(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	state := NewDefaultGameState()
	state.SetLogger(zap.New(core))

	index, _ := state.StoneIndexAt(Position{0, 0}, First)
	if err := state.ApplyMove(index, DownRight); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	entries := logs.FilterMessage("stone moved").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["from"] != "(0,0)" || fields["to"] != "(1,1)" {
		t.Errorf("Unexpected log fields: %v", fields)
	}
}

func TestCheckWinner(t *testing.T) {
	// First's formation is row 0, Second's is row 2 on a 3x3 board.
	state, err := NewGameState(3,
		NewStone(First, Position{0, 1}),
		NewStone(Second, Position{2, 1}),
	)
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}

	if _, won := state.CheckWinner(First); won {
		t.Error("No winner expected at start")
	}

	mustMove(t, state, 0, DownRight) // First (0,1)->(1,2)
	mustMove(t, state, 1, UpLeft)    // Second (2,1)->(1,0)
	mustMove(t, state, 0, DownLeft)  // First (1,2)->(2,1)

	side, won := state.CheckWinner(First)
	if !won || side != First {
		t.Errorf("Expected first to win, got %s, %v", side, won)
	}
	if _, won := state.CheckWinner(Second); won {
		t.Error("Second has not reached first's formation")
	}
}

func TestCheckWinner_RequiresEveryStone(t *testing.T) {
	state := NewDefaultGameState()
	if _, won := state.CheckWinner(First); won {
		t.Error("No winner expected in the opening position")
	}
	var zero Side
	if side, won := state.CheckWinner(Second); won || side != zero {
		t.Errorf("Expected the zero side without a win, got %s, %v", side, won)
	}
}

func TestRandomPlayout_PreservesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	state := NewDefaultGameState()
	side := First

	for move := 0; move < 300; move++ {
		type candidate struct {
			index int
			dir   Direction
		}
		var candidates []candidate
		for i := 0; i < state.StoneCount(); i++ {
			if s, _ := state.SideOf(i); s != side {
				continue
			}
			moves, _ := state.ValidMoves(i)
			for _, d := range moves {
				candidates = append(candidates, candidate{i, d})
			}
		}
		if len(candidates) == 0 {
			break
		}
		pick := candidates[rng.Intn(len(candidates))]
		if err := state.ApplyMove(pick.index, pick.dir); err != nil {
			t.Fatalf("Move %d: ApplyMove failed: %v", move, err)
		}

		seen := map[Position]bool{}
		for i := 0; i < state.StoneCount(); i++ {
			p, _ := state.PositionOf(i)
			if !state.IsOnBoard(p) {
				t.Fatalf("Move %d: stone %d off board at %s", move, i, p)
			}
			if seen[p] {
				t.Fatalf("Move %d: two stones at %s", move, p)
			}
			seen[p] = true
		}
		side = side.Opponent()
	}
}

func mustMove(t *testing.T, state *GameState, index int, d Direction) {
	t.Helper()
	if err := state.ApplyMove(index, d); err != nil {
		t.Fatalf("ApplyMove(%d, %s) failed: %v", index, d, err)
	}
}
