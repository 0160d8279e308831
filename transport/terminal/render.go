package terminal

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

// Theme controls the symbols and colours used to draw the board
type Theme struct {
	FirstStone  rune
	SecondStone rune
	Empty       rune

	FirstColor     string
	SecondColor    string
	HighlightColor string
	MutedColor     string
}

// DefaultTheme matches the layout file characters
func DefaultTheme() Theme {
	return Theme{
		FirstStone:     engine.FirstCell,
		SecondStone:    engine.SecondCell,
		Empty:          engine.EmptyCell,
		FirstColor:     "#3B82F6",
		SecondColor:    "#EF4444",
		HighlightColor: "#FACC15",
		MutedColor:     "#6B7280",
	}
}

// Renderer draws snapshots as text
type Renderer struct {
	out   *termenv.Output
	theme Theme
}

// NewRenderer creates a renderer for out
func NewRenderer(out *termenv.Output, theme Theme) *Renderer {
	return &Renderer{out: out, theme: theme}
}

// Board returns the board drawing for snap. Every cell is three columns
// wide: "[F]" marks the selected stone, "(F)" or "(.)" a selectable cell.
func (r *Renderer) Board(snap *engine.Snapshot) string {
	size := snap.BoardSize
	cells := make(map[engine.Position]engine.Side, len(snap.Stones))
	for _, stone := range snap.Stones {
		cells[stone.Position] = stone.Side
	}
	selectable := make(map[engine.Position]bool, len(snap.Selectable))
	for _, p := range snap.Selectable {
		selectable[p] = true
	}

	var b strings.Builder
	b.WriteString("   ")
	for col := 0; col < size; col++ {
		b.WriteString(r.muted(fmt.Sprintf(" %-2d", col)))
	}
	b.WriteString("\n")

	for row := 0; row < size; row++ {
		b.WriteString(r.muted(fmt.Sprintf("%2d ", row)))
		for col := 0; col < size; col++ {
			p := engine.Position{Row: row, Col: col}
			side, occupied := cells[p]
			b.WriteString(r.cell(p, side, occupied, snap.Selected, selectable[p]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) cell(p engine.Position, side engine.Side, occupied bool, selected *engine.Position, isSelectable bool) string {
	symbol := string(r.theme.Empty)
	style := r.out.String(symbol).Foreground(r.out.Color(r.theme.MutedColor))
	if occupied {
		symbol = string(r.stoneRune(side))
		style = r.out.String(symbol).Foreground(r.out.Color(r.sideColor(side))).Bold()
	}

	switch {
	case selected != nil && *selected == p:
		return "[" + style.Reverse().String() + "]"
	case isSelectable:
		hl := r.out.Color(r.theme.HighlightColor)
		return r.out.String("(").Foreground(hl).String() + style.String() + r.out.String(")").Foreground(hl).String()
	default:
		return " " + style.String() + " "
	}
}

// Status returns a one-line summary of whose turn it is or how the game ended
func (r *Renderer) Status(snap *engine.Snapshot, names func(engine.Side) string) string {
	switch {
	case snap.Winner != nil:
		w := *snap.Winner
		return r.sideLabel(w, fmt.Sprintf("%s (%s) wins after %d turns!", names(w), w, snap.Turn))
	case snap.Blocked:
		return fmt.Sprintf("%s has no legal move. Game over after %d turns.", r.sideLabel(snap.CurrentSide, names(snap.CurrentSide)), snap.Turn)
	case snap.Phase == engine.SelectTo:
		return fmt.Sprintf("Turn %d: %s, pick a destination.", snap.Turn, r.sideLabel(snap.CurrentSide, names(snap.CurrentSide)))
	default:
		return fmt.Sprintf("Turn %d: %s, pick a stone.", snap.Turn, r.sideLabel(snap.CurrentSide, names(snap.CurrentSide)))
	}
}

func (r *Renderer) sideLabel(side engine.Side, text string) string {
	return r.out.String(text).Foreground(r.out.Color(r.sideColor(side))).Bold().String()
}

func (r *Renderer) muted(text string) string {
	return r.out.String(text).Foreground(r.out.Color(r.theme.MutedColor)).String()
}

func (r *Renderer) stoneRune(side engine.Side) rune {
	if side == engine.Second {
		return r.theme.SecondStone
	}
	return r.theme.FirstStone
}

func (r *Renderer) sideColor(side engine.Side) string {
	if side == engine.Second {
		return r.theme.SecondColor
	}
	return r.theme.FirstColor
}
