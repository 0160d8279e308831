package engine

// MoveObserver is notified whenever a stone changes position.
type MoveObserver interface {
	OnStoneMoved(index int, from, to Position)
}

// Observer receives every notification a host needs to re-render a game.
// Callbacks run synchronously on the goroutine that delivered the click.
type Observer interface {
	MoveObserver
	OnSelectableChanged(positions []Position)
	OnTurnAdvanced(turn int)
	OnGameWon(side Side)
	// OnGameBlocked fires when side is due to move but has no legal move.
	OnGameBlocked(side Side)
}

// ObserverFuncs adapts a set of optional callbacks to Observer. Nil fields
// are ignored.
type ObserverFuncs struct {
	StoneMoved        func(index int, from, to Position)
	SelectableChanged func(positions []Position)
	TurnAdvanced      func(turn int)
	GameWon           func(side Side)
	GameBlocked       func(side Side)
}

func (f ObserverFuncs) OnStoneMoved(index int, from, to Position) {
	if f.StoneMoved != nil {
		f.StoneMoved(index, from, to)
	}
}

func (f ObserverFuncs) OnSelectableChanged(positions []Position) {
	if f.SelectableChanged != nil {
		f.SelectableChanged(positions)
	}
}

func (f ObserverFuncs) OnTurnAdvanced(turn int) {
	if f.TurnAdvanced != nil {
		f.TurnAdvanced(turn)
	}
}

func (f ObserverFuncs) OnGameWon(side Side) {
	if f.GameWon != nil {
		f.GameWon(side)
	}
}

func (f ObserverFuncs) OnGameBlocked(side Side) {
	if f.GameBlocked != nil {
		f.GameBlocked(side)
	}
}
