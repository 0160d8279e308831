package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Input
	OnCellClicked(row, col int) bool

	// Game state
	GetState() *GameState
	Snapshot() *Snapshot
	Phase() Phase
	Turn() int
	CurrentSide() Side
	Selectable() []Position
	Winner() (Side, bool)
	IsGameOver() bool
	Reset() *Snapshot

	// Notifications
	Subscribe(o Observer)

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// Option configures a GameEngine.
type Option func(*GameEngine)

// WithLogger sets the logger used by the engine, its state and controller.
func WithLogger(logger *zap.Logger) Option {
	return func(e *GameEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

var _ Engine = (*GameEngine)(nil)

// GameEngine implements the Engine interface
type GameEngine struct {
	config     *GameConfig
	controller *Controller
	observers  []Observer
	history    []MoveHistoryEntry
	logger     *zap.Logger
}

// NewEngine creates a new game engine with the provided layout
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.start(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a new game engine on the classic layout
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultGameConfig(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default layout rejected: %v", err))
	}
	return e
}

// start builds a fresh state and controller and re-attaches observers.
func (e *GameEngine) start() error {
	state, err := NewGameStateFromConfig(e.config)
	if err != nil {
		return err
	}
	state.SetLogger(e.logger)

	controller := NewController(state)
	controller.SetLogger(e.logger)
	e.controller = controller

	state.Subscribe(historyRecorder{e})
	for _, o := range e.observers {
		controller.Subscribe(o)
	}
	return nil
}

// OnCellClicked forwards a click to the selection controller
func (e *GameEngine) OnCellClicked(row, col int) bool {
	return e.controller.OnCellClicked(row, col)
}

// Subscribe registers an observer that survives Reset
func (e *GameEngine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
	e.controller.Subscribe(o)
}

// GetState returns the current rules engine state
func (e *GameEngine) GetState() *GameState {
	return e.controller.State()
}

// Controller returns the selection controller
func (e *GameEngine) Controller() *Controller {
	return e.controller
}

// Phase returns the current selection phase
func (e *GameEngine) Phase() Phase {
	return e.controller.Phase()
}

// Turn returns the number of moves applied so far
func (e *GameEngine) Turn() int {
	return e.controller.Turn()
}

// CurrentSide returns the side to move
func (e *GameEngine) CurrentSide() Side {
	return e.controller.CurrentSide()
}

// Selectable returns the cells the next click may target
func (e *GameEngine) Selectable() []Position {
	return e.controller.Selectable()
}

// Winner returns the winning side, if any
func (e *GameEngine) Winner() (Side, bool) {
	return e.controller.Winner()
}

// IsGameOver returns whether the game has ended
func (e *GameEngine) IsGameOver() bool {
	return e.controller.Phase() == GameOver
}

// Reset starts a new game on the same layout. History is cleared.
func (e *GameEngine) Reset() *Snapshot {
	e.history = nil
	if err := e.start(); err != nil {
		// The layout was validated when the engine was created.
		panic(fmt.Sprintf("layout %q rejected on reset: %v", e.config.Name, err))
	}
	return e.Snapshot()
}

// GetConfig returns the layout the engine was created from
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Snapshot returns a serialisable view of the game
func (e *GameEngine) Snapshot() *Snapshot {
	c := e.controller
	state := c.State()

	stones := make([]StoneView, 0, state.StoneCount())
	for i, stone := range state.Stones() {
		stones = append(stones, StoneView{Index: i, Side: stone.Side(), Position: stone.Position()})
	}

	snap := &Snapshot{
		ConfigName:  e.config.Name,
		BoardSize:   state.Board().Size,
		Stones:      stones,
		Turn:        c.Turn(),
		CurrentSide: c.CurrentSide(),
		Phase:       c.Phase(),
		Selectable:  c.Selectable(),
		GameOver:    c.Phase() == GameOver,
		Blocked:     c.Blocked(),
	}
	if p, ok := c.Selected(); ok {
		snap.Selected = &p
	}
	if w, ok := c.Winner(); ok {
		snap.Winner = &w
	}
	return snap
}

// addMoveToHistory appends an applied move to the history
func (e *GameEngine) addMoveToHistory(index int, from, to Position) {
	side, _ := e.controller.State().SideOf(index)
	direction, err := DirectionOf(from.Delta(to))
	if err != nil {
		e.logger.Warn("move with unknown direction", zap.Int("stone", index), zap.Error(err))
	}
	e.history = append(e.history, MoveHistoryEntry{
		MoveNumber: len(e.history) + 1,
		Stone:      index,
		Side:       side,
		Direction:  direction,
		From:       from,
		To:         to,
		Timestamp:  time.Now().Unix(),
	})
}

type historyRecorder struct {
	engine *GameEngine
}

func (h historyRecorder) OnStoneMoved(index int, from, to Position) {
	h.engine.addMoveToHistory(index, from, to)
}
