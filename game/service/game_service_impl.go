package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

// ErrConfigUnavailable is returned when a session names a layout that cannot be loaded
var ErrConfigUnavailable = errors.New("layout not available")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// getConfigID returns the config_id for a given layout name, used for consistent responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session on the named layout, or on the
// default layout when configName is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, players Players) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: layout '%s' not found. Available layouts: %v", ErrConfigUnavailable, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: layout '%s' not found", ErrConfigUnavailable, configName)
			}
			return nil, fmt.Errorf("failed to load layout %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	// Let session manager generate the ID
	sess, err := s.sessions.Create("", configID, config, players)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("config", configID),
		zap.String("first", sess.Players.First),
		zap.String("second", sess.Players.Second),
	)

	sess.Lock()
	defer sess.Unlock()
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.Lock()
		result = append(result, sessionInfo(sess))
		sess.Unlock()
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// DeleteSession removes a session and its persisted record
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ListSessionRecords returns the persisted session records
func (s *gameServiceImpl) ListSessionRecords(ctx context.Context) ([]*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.sessions.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to list session records: %w", err)
	}
	return records, nil
}

// Click forwards a cell click to the session's engine and reports the
// notifications it produced, in order
func (s *gameServiceImpl) Click(ctx context.Context, sessionID string, row, col int) (*ClickResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed time
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	log := sess.collector()
	log.reset()

	wasOver := sess.Engine.IsGameOver()
	accepted := sess.Engine.OnCellClicked(row, col)
	result := &ClickResult{
		Accepted: accepted,
		Events:   log.drain(),
		Snapshot: sess.Engine.Snapshot(),
	}

	finished := !wasOver && sess.Engine.IsGameOver()
	if finished {
		now := time.Now()
		sess.FinishedAt = &now
	}
	winner, won := sess.Engine.Winner()
	sess.Unlock()

	s.logger.Debug("click handled",
		zap.String("session", sessionID),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Bool("accepted", accepted),
	)

	if finished {
		if won {
			s.logger.Info("game won",
				zap.String("session", sessionID),
				zap.Stringer("side", winner),
				zap.String("player", sess.Players.Name(winner)),
				zap.Int("turns", result.Snapshot.Turn),
			)
		} else {
			s.logger.Info("game blocked",
				zap.String("session", sessionID),
				zap.Stringer("side", result.Snapshot.CurrentSide),
			)
		}
	}

	// Auto-save session after an applied move
	if accepted && result.Snapshot.Turn > 0 {
		if err := s.sessions.Save(sessionID); err != nil {
			s.logger.Warn("failed to persist session after click", zap.String("session", sessionID), zap.Error(err))
		}
	}

	return result, nil
}

// Reset starts a new game on the session's layout
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	snap := sess.Engine.Reset()
	sess.FinishedAt = nil
	sess.Unlock()

	s.logger.Debug("session reset", zap.String("session", sessionID))

	if err := s.sessions.Save(sessionID); err != nil {
		s.logger.Warn("failed to persist session after reset", zap.String("session", sessionID), zap.Error(err))
	}

	return snap, nil
}

// GetSnapshot returns the current view of a session's game
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.Snapshot(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	history := sess.Engine.GetMoveHistory()
	sess.Unlock()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available layouts
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific layout
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a layout to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// sessionInfo builds the SessionInfo view. The caller holds the session lock.
func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigID:       sess.ConfigID,
		Players:        sess.Players,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}
