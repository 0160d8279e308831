package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Phase is the kind of click the controller is waiting for.
type Phase int

const (
	SelectFrom Phase = iota
	SelectTo
	GameOver
)

func (p Phase) String() string {
	switch p {
	case SelectFrom:
		return "select_from"
	case SelectTo:
		return "select_to"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{SelectFrom, SelectTo, GameOver} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(text))
}

// Controller turns cell clicks into moves. In SelectFrom it accepts a click on
// one of the current side's movable stones; in SelectTo it accepts a click on
// one of that stone's legal destinations, applies the move and hands the turn
// over. Clicks outside the selectable set are ignored.
//
// A Controller and its GameState are not safe for concurrent use; hosts with
// several goroutines must serialise clicks.
type Controller struct {
	state      *GameState
	phase      Phase
	turn       int
	selected   Position
	hasSel     bool
	selectable []Position
	winner     Side
	won        bool
	blocked    bool
	observers  []Observer
	logger     *zap.Logger
}

// NewController creates a controller at turn 0 in the SelectFrom phase.
func NewController(state *GameState) *Controller {
	c := &Controller{
		state:  state,
		phase:  SelectFrom,
		logger: zap.NewNop(),
	}
	c.refreshSelectable()
	if len(c.selectable) == 0 {
		c.phase = GameOver
		c.blocked = true
	}
	return c
}

// SetLogger replaces the logger used for click tracing.
func (c *Controller) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// Subscribe registers o for all notifications, including stone moves on the
// underlying GameState. The current selectable set is pushed to o at once so
// it can draw the initial highlights.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
	c.state.Subscribe(o)
	o.OnSelectableChanged(c.Selectable())
}

// State returns the game being controlled.
func (c *Controller) State() *GameState {
	return c.state
}

// Phase returns the current selection phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Turn returns the number of moves applied so far.
func (c *Controller) Turn() int {
	return c.turn
}

// CurrentSide returns the side to move.
func (c *Controller) CurrentSide() Side {
	return SideForTurn(c.turn)
}

// Selected returns the chosen stone's cell while in SelectTo.
func (c *Controller) Selected() (Position, bool) {
	return c.selected, c.hasSel
}

// Selectable returns a copy of the cells the next click may target.
func (c *Controller) Selectable() []Position {
	out := make([]Position, len(c.selectable))
	copy(out, c.selectable)
	return out
}

// IsSelectable reports whether a click on p would be accepted.
func (c *Controller) IsSelectable(p Position) bool {
	for _, s := range c.selectable {
		if s == p {
			return true
		}
	}
	return false
}

// Winner returns the winning side once the game has been won.
func (c *Controller) Winner() (Side, bool) {
	return c.winner, c.won
}

// Blocked reports whether the game ended because the side to move had no
// legal move.
func (c *Controller) Blocked() bool {
	return c.blocked
}

// OnCellClicked is the host entry point for a click on cell (row, col).
func (c *Controller) OnCellClicked(row, col int) bool {
	return c.Click(Position{Row: row, Col: col})
}

// Click processes a click on p and reports whether it was accepted. Rejected
// clicks change nothing and fire no notification.
func (c *Controller) Click(p Position) bool {
	c.logger.Debug("click on square", zap.Stringer("position", p), zap.Stringer("phase", c.phase))

	switch c.phase {
	case SelectFrom:
		if !c.IsSelectable(p) {
			return false
		}
		c.selected = p
		c.hasSel = true
		c.phase = SelectTo
		c.refreshSelectable()
		c.notifySelectable()
		return true

	case SelectTo:
		if !c.IsSelectable(p) {
			return false
		}
		if err := c.move(p); err != nil {
			// Destinations come from ValidMoves, so this is a broken invariant.
			c.logger.Error("selectable destination rejected", zap.Error(err))
			return false
		}
		return true

	default:
		return false
	}
}

func (c *Controller) move(to Position) error {
	side := c.CurrentSide()
	index, ok := c.state.StoneIndexAt(c.selected, side)
	if !ok {
		return fmt.Errorf("%w: no %s stone at %s", ErrIllegalMove, side, c.selected)
	}
	direction, err := DirectionOf(c.selected.Delta(to))
	if err != nil {
		return err
	}

	c.logger.Debug("moving stone", zap.Int("stone", index), zap.Stringer("direction", direction))
	if err := c.state.ApplyMove(index, direction); err != nil {
		return err
	}

	// Settle the whole post-move state before anyone is told about it.
	c.turn++
	c.selected = Position{}
	c.hasSel = false
	c.phase = SelectFrom
	if winner, won := c.state.CheckWinner(side); won {
		c.phase = GameOver
		c.winner = winner
		c.won = true
		c.selectable = c.selectable[:0]
	} else {
		c.refreshSelectable()
		if len(c.selectable) == 0 {
			c.phase = GameOver
			c.blocked = true
		}
	}

	for _, o := range c.observers {
		o.OnTurnAdvanced(c.turn)
	}
	c.notifySelectable()

	switch {
	case c.won:
		c.logger.Debug("game won", zap.Stringer("side", c.winner), zap.Int("turn", c.turn))
		for _, o := range c.observers {
			o.OnGameWon(c.winner)
		}
	case c.blocked:
		stuck := c.CurrentSide()
		c.logger.Debug("game blocked", zap.Stringer("side", stuck), zap.Int("turn", c.turn))
		for _, o := range c.observers {
			o.OnGameBlocked(stuck)
		}
	}
	return nil
}

// refreshSelectable recomputes the selectable set for the current phase.
func (c *Controller) refreshSelectable() {
	c.selectable = c.selectable[:0]
	side := c.CurrentSide()

	switch c.phase {
	case SelectFrom:
		for i, stone := range c.state.stones {
			if stone.side != side {
				continue
			}
			if moves, _ := c.state.ValidMoves(i); len(moves) > 0 {
				c.selectable = append(c.selectable, stone.position)
			}
		}
	case SelectTo:
		index, ok := c.state.StoneIndexAt(c.selected, side)
		if !ok {
			return
		}
		cells, _ := c.state.Destinations(index)
		c.selectable = append(c.selectable, cells...)
	}
}

func (c *Controller) notifySelectable() {
	for _, o := range c.observers {
		o.OnSelectableChanged(c.Selectable())
	}
}
