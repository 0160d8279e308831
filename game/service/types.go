package service

import (
	"time"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

// Event types reported in ClickResult.Events
const (
	EventStoneMoved        = "stone_moved"
	EventSelectableChanged = "selectable_changed"
	EventTurnAdvanced      = "turn_advanced"
	EventGameWon           = "game_won"
	EventGameBlocked       = "game_blocked"
)

// Players holds the display names of both sides
type Players struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// DefaultPlayers returns the names used when none are given
func DefaultPlayers() Players {
	return Players{First: "Player 1", Second: "Player 2"}
}

// withDefaults fills in missing names
func (p Players) withDefaults() Players {
	def := DefaultPlayers()
	if p.First == "" {
		p.First = def.First
	}
	if p.Second == "" {
		p.Second = def.Second
	}
	return p
}

// Name returns the player name for a side
func (p Players) Name(side engine.Side) string {
	if side == engine.Second {
		return p.Second
	}
	return p.First
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigID       string             `json:"config_id"`
	Players        Players            `json:"players"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot   `json:"snapshot"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ClickResult contains the result of a click
type ClickResult struct {
	Accepted bool             `json:"accepted"`
	Events   []GameEvent      `json:"events"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

// GameEvent represents a notification fired by the engine during a click
type GameEvent struct {
	Type       string            `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	Stone      int               `json:"stone,omitempty"`
	From       *engine.Position  `json:"from,omitempty"`
	To         *engine.Position  `json:"to,omitempty"`
	Selectable []engine.Position `json:"selectable,omitempty"`
	Turn       int               `json:"turn,omitempty"`
	Side       string            `json:"side,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a layout
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	BoardSize     int    `json:"board_size"`
	StonesPerSide int    `json:"stones_per_side"`
}

// SessionRecord is the persisted metadata of a session. Game state is
// never part of it.
type SessionRecord struct {
	ID             string     `json:"id"`
	ConfigID       string     `json:"config_id"`
	Players        Players    `json:"players"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	Turns          int        `json:"turns"`
	Winner         string     `json:"winner,omitempty"`
	Blocked        bool       `json:"blocked,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}
