package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
	"github.com/wricardo/mcp-training/hoppingstones/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
	ErrSessionNotActive     = errors.New("session has a record but no running game")
)

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence RecordPersistence
	logger      *zap.Logger
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*service.Session),
		logger:   logger,
	}
}

// NewManagerWithPersistence creates a new session manager that stores session records
func NewManagerWithPersistence(persistence RecordPersistence, logger *zap.Logger) *Manager {
	m := NewManager(logger)
	m.persistence = persistence
	return m
}

// Create creates a new session with the given ID and layout. An empty ID
// gets a generated one.
func (m *Manager) Create(id, configID string, config *engine.GameConfig, players service.Players) (*service.Session, error) {
	if id != "" && !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()

	if id == "" {
		id = m.generateSessionID()
	}

	// Check if session already exists (case-insensitive)
	if m.sessionExists(id) || (m.persistence != nil && m.persistence.Exists(id)) {
		m.mu.Unlock()
		return nil, ErrSessionAlreadyExists
	}

	// Create game engine
	eng, err := engine.NewEngine(config, engine.WithLogger(m.logger.With(zap.String("session", id))))
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	session := service.NewSession(id, configID, eng, players)
	m.sessions[strings.ToLower(id)] = session
	m.mu.Unlock()

	// Auto-save if persistence is enabled. The session is already visible to
	// other callers, so its record is taken under the session lock.
	if m.persistence != nil {
		session.Lock()
		record := session.Record()
		session.Unlock()
		if err := m.persistence.Save(record); err != nil {
			// Log error but don't fail the creation
			m.logger.Warn("failed to persist session", zap.String("session", id), zap.Error(err))
		}
	}

	return session, nil
}

// Get retrieves a running session by ID (case-insensitive). A session that
// only exists as a persisted record yields ErrSessionNotActive.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		return nil, ErrSessionNotActive
	}

	return nil, ErrSessionNotFound
}

// List returns all running sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session and its record
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.sessions[lowerID]
	delete(m.sessions, lowerID)

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	// If not in persistence and not in memory, it doesn't exist
	if !inMemory {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteFromMemory removes a session from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	session.Lock()
	session.LastAccessedAt = time.Now()
	session.Unlock()

	return nil
}

// Save writes a session's record to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	session.Lock()
	record := session.Record()
	session.Unlock()

	return m.persistence.Save(record)
}

// Records returns the records of every known session, running or persisted,
// oldest first. Running sessions take precedence over their stored record.
func (m *Manager) Records() ([]*service.SessionRecord, error) {
	byID := make(map[string]*service.SessionRecord)

	if m.persistence != nil {
		ids, err := m.persistence.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to list persisted sessions: %w", err)
		}
		for _, id := range ids {
			record, err := m.persistence.Load(id)
			if err != nil {
				m.logger.Warn("failed to load persisted session", zap.String("session", id), zap.Error(err))
				continue
			}
			byID[strings.ToLower(record.ID)] = record
		}
	}

	for _, session := range m.List() {
		session.Lock()
		byID[strings.ToLower(session.ID)] = session.Record()
		session.Unlock()
	}

	records := make([]*service.SessionRecord, 0, len(byID))
	for _, record := range byID {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}
