package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

func plainRenderer() *Renderer {
	return NewRenderer(termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii)), DefaultTheme())
}

func TestRenderer_Board(t *testing.T) {
	eng := engine.NewEngineWithDefaults()
	r := plainRenderer()

	board := r.Board(eng.Snapshot())
	lines := strings.Split(strings.TrimRight(board, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected header plus 5 rows, got %d lines:\n%s", len(lines), board)
	}
	if strings.Count(board, "(F)") != 7 {
		t.Errorf("Expected 7 selectable first stones:\n%s", board)
	}
	if strings.Count(board, " S ") != 7 {
		t.Errorf("Expected 7 plain second stones:\n%s", board)
	}

	eng.OnCellClicked(0, 0)
	board = r.Board(eng.Snapshot())
	if !strings.Contains(board, "[F]") {
		t.Errorf("Expected selected stone marker:\n%s", board)
	}
	if strings.Count(board, "(.)") != 1 {
		t.Errorf("Expected exactly one selectable destination:\n%s", board)
	}
	if strings.Contains(board, "(F)") {
		t.Errorf("Stones should not be selectable while choosing a destination:\n%s", board)
	}
}

func TestRenderer_Status(t *testing.T) {
	r := plainRenderer()
	names := func(s engine.Side) string {
		if s == engine.First {
			return "Ada"
		}
		return "Bob"
	}

	first := engine.First
	tests := []struct {
		name string
		snap *engine.Snapshot
		want string
	}{
		{"select from", &engine.Snapshot{Turn: 0, CurrentSide: engine.First, Phase: engine.SelectFrom}, "Ada, pick a stone"},
		{"select to", &engine.Snapshot{Turn: 1, CurrentSide: engine.Second, Phase: engine.SelectTo}, "Bob, pick a destination"},
		{"won", &engine.Snapshot{Turn: 3, Phase: engine.GameOver, GameOver: true, Winner: &first}, "Ada (first) wins after 3 turns"},
		{"blocked", &engine.Snapshot{Turn: 1, CurrentSide: engine.Second, Phase: engine.GameOver, GameOver: true, Blocked: true}, "Bob has no legal move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Status(tt.snap, names); !strings.Contains(got, tt.want) {
				t.Errorf("Expected status containing %q, got %q", tt.want, got)
			}
		})
	}
}
