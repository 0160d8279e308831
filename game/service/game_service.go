package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, players Players) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessionRecords(ctx context.Context) ([]*SessionRecord, error)

	// Game Operations
	Click(ctx context.Context, sessionID string, row, col int) (*ClickResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Game State
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.GameConfig, players Players) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
	Records() ([]*SessionRecord, error)
}

// ConfigManager handles layout loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. The engine is not safe for
// concurrent use; callers hold Lock while driving it.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	ConfigID       string
	Players        Players
	CreatedAt      time.Time
	LastAccessedAt time.Time
	FinishedAt     *time.Time

	mu     sync.Mutex
	events *eventLog
}

// NewSession wraps an engine in a session. Empty player names get defaults.
func NewSession(id, configID string, eng *engine.GameEngine, players Players) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Engine:         eng,
		Config:         eng.GetConfig(),
		ConfigID:       configID,
		Players:        players.withDefaults(),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// Lock acquires the session's mutex
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's mutex
func (s *Session) Unlock() { s.mu.Unlock() }

// Record returns the persisted view of the session
func (s *Session) Record() *SessionRecord {
	rec := &SessionRecord{
		ID:             s.ID,
		ConfigID:       s.ConfigID,
		Players:        s.Players,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
		FinishedAt:     s.FinishedAt,
	}
	if s.Engine != nil {
		rec.Turns = s.Engine.Turn()
		if side, ok := s.Engine.Winner(); ok {
			rec.Winner = side.String()
		}
		rec.Blocked = s.Engine.Controller().Blocked()
	}
	return rec
}

// collector lazily attaches an event collector to the session's engine.
// Subscriptions survive Reset, so this happens once per session.
func (s *Session) collector() *eventLog {
	if s.events == nil {
		s.events = &eventLog{}
		s.Engine.Subscribe(s.events)
	}
	return s.events
}

// eventLog turns engine notifications into GameEvents
type eventLog struct {
	events []GameEvent
}

func (l *eventLog) reset() {
	l.events = nil
}

func (l *eventLog) drain() []GameEvent {
	events := l.events
	l.events = nil
	if events == nil {
		events = []GameEvent{}
	}
	return events
}

func (l *eventLog) OnStoneMoved(index int, from, to engine.Position) {
	l.events = append(l.events, GameEvent{
		Type:      EventStoneMoved,
		Message:   fmt.Sprintf("Stone %d moved from %s to %s", index, from, to),
		Timestamp: time.Now(),
		Stone:     index,
		From:      &from,
		To:        &to,
	})
}

func (l *eventLog) OnSelectableChanged(positions []engine.Position) {
	l.events = append(l.events, GameEvent{
		Type:       EventSelectableChanged,
		Message:    fmt.Sprintf("%d selectable cells", len(positions)),
		Timestamp:  time.Now(),
		Selectable: positions,
	})
}

func (l *eventLog) OnTurnAdvanced(turn int) {
	l.events = append(l.events, GameEvent{
		Type:      EventTurnAdvanced,
		Message:   fmt.Sprintf("Turn %d: %s to move", turn, engine.SideForTurn(turn)),
		Timestamp: time.Now(),
		Turn:      turn,
		Side:      engine.SideForTurn(turn).String(),
	})
}

func (l *eventLog) OnGameWon(side engine.Side) {
	l.events = append(l.events, GameEvent{
		Type:      EventGameWon,
		Message:   fmt.Sprintf("%s wins", side),
		Timestamp: time.Now(),
		Side:      side.String(),
	})
}

func (l *eventLog) OnGameBlocked(side engine.Side) {
	l.events = append(l.events, GameEvent{
		Type:      EventGameBlocked,
		Message:   fmt.Sprintf("%s has no legal move", side),
		Timestamp: time.Now(),
		Side:      side.String(),
	})
}
