package engine

import (
	"encoding/json"
	"testing"
)

func createTestConfig() *GameConfig {
	return &GameConfig{
		Name:        "Engine Test Layout",
		Description: "Layout for engine integration tests",
		BoardSize:   3,
		Layout: []string{
			".F.",
			"...",
			".S.",
		},
		Legend: DefaultLegend(),
	}
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine.Turn() != 0 {
		t.Errorf("Expected turn 0, got %d", engine.Turn())
	}
	if engine.CurrentSide() != First {
		t.Errorf("Expected first to move, got %s", engine.CurrentSide())
	}
	if engine.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if engine.GetState().StoneCount() != 2 {
		t.Errorf("Expected 2 stones, got %d", engine.GetState().StoneCount())
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()

	if engine.GetState().StoneCount() != 14 {
		t.Errorf("Expected 14 stones, got %d", engine.GetState().StoneCount())
	}
	if engine.GetConfig().Name != "classic" {
		t.Errorf("Expected classic layout, got %s", engine.GetConfig().Name)
	}
	if len(engine.Selectable()) != 7 {
		t.Errorf("Expected 7 selectable stones, got %d", len(engine.Selectable()))
	}
}

func TestEngine_MoveHistory(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if engine.GetLastMove() != nil {
		t.Error("Expected no last move initially")
	}

	engine.OnCellClicked(0, 1)
	engine.OnCellClicked(1, 2)

	history := engine.GetMoveHistory()
	if len(history) != 1 {
		t.Fatalf("Expected 1 move in history, got %d", len(history))
	}

	last := engine.GetLastMove()
	if last == nil {
		t.Fatal("Expected last move to be non-nil")
	}
	if last.MoveNumber != 1 || last.Side != First || last.Direction != DownRight {
		t.Errorf("Unexpected history entry: %+v", last)
	}
	if last.From != (Position{0, 1}) || last.To != (Position{1, 2}) {
		t.Errorf("Expected (0,1)->(1,2), got %s->%s", last.From, last.To)
	}

	// Rejected clicks are not recorded
	engine.OnCellClicked(0, 0)
	if len(engine.GetMoveHistory()) != 1 {
		t.Error("Rejected click should not add history")
	}
}

func TestEngine_FullGame(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	var won []Side
	engine.Subscribe(ObserverFuncs{GameWon: func(s Side) { won = append(won, s) }})

	for _, click := range [][2]int{{0, 1}, {1, 2}, {2, 1}, {1, 0}, {1, 2}, {2, 1}} {
		if !engine.OnCellClicked(click[0], click[1]) {
			t.Fatalf("Click %v rejected", click)
		}
	}

	if !engine.IsGameOver() {
		t.Fatal("Expected game over")
	}
	if side, ok := engine.Winner(); !ok || side != First {
		t.Errorf("Expected first to win, got %s %v", side, ok)
	}
	if len(won) != 1 {
		t.Errorf("Expected one win notification, got %d", len(won))
	}
	if len(engine.GetMoveHistory()) != 3 {
		t.Errorf("Expected 3 moves, got %d", len(engine.GetMoveHistory()))
	}
}

func TestEngine_Reset(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	var turns []int
	engine.Subscribe(ObserverFuncs{TurnAdvanced: func(turn int) { turns = append(turns, turn) }})

	engine.OnCellClicked(0, 1)
	engine.OnCellClicked(1, 2)

	snap := engine.Reset()
	if snap.Turn != 0 || snap.Phase != SelectFrom {
		t.Errorf("Expected fresh game after reset, got turn %d phase %s", snap.Turn, snap.Phase)
	}
	if len(engine.GetMoveHistory()) != 0 {
		t.Error("Expected history to be cleared by reset")
	}
	if p, _ := engine.GetState().PositionOf(0); p != (Position{0, 1}) {
		t.Errorf("Expected stone back at (0,1), got %s", p)
	}

	// Observers survive the reset
	engine.OnCellClicked(0, 1)
	engine.OnCellClicked(1, 0)
	if len(turns) != 2 || turns[1] != 1 {
		t.Errorf("Expected turn notifications [1 1], got %v", turns)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.OnCellClicked(0, 1)

	snap := engine.Snapshot()
	if snap.Phase != SelectTo {
		t.Errorf("Expected select_to, got %s", snap.Phase)
	}
	if snap.Selected == nil || *snap.Selected != (Position{0, 1}) {
		t.Errorf("Expected (0,1) selected, got %v", snap.Selected)
	}
	if snap.Winner != nil {
		t.Error("Expected no winner")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if decoded["phase"] != "select_to" || decoded["current_side"] != "first" {
		t.Errorf("Unexpected encoded snapshot: %s", data)
	}
}

func TestEngine_SnapshotStonesThroughInterface(t *testing.T) {
	var eng Engine = NewEngineWithDefaults()
	eng.OnCellClicked(0, 0)
	eng.OnCellClicked(1, 1)

	snap := eng.Snapshot()
	stones := eng.GetState().Stones()
	if len(snap.Stones) != len(stones) {
		t.Fatalf("Expected %d stones in snapshot, got %d", len(stones), len(snap.Stones))
	}
	for i, stone := range stones {
		view := snap.Stones[i]
		if view.Index != i || view.Side != stone.Side() || view.Position != stone.Position() {
			t.Errorf("Stone %d: snapshot %+v does not match %s", i, view, stone)
		}
	}
	if snap.Stones[0].Position != (Position{1, 1}) {
		t.Errorf("Expected stone 0 at (1,1), got %s", snap.Stones[0].Position)
	}
}
