package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/hoppingstones/game/service"
)

// FilePersistence implements RecordPersistence with one JSON file per session
type FilePersistence struct {
	sessionsDir string
}

// NewFilePersistence creates a new file-based record store
func NewFilePersistence(sessionsDir string) (*FilePersistence, error) {
	// Create sessions directory if it doesn't exist
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{sessionsDir: sessionsDir}, nil
}

// Save writes a session record to its JSON file
func (fp *FilePersistence) Save(record *service.SessionRecord) error {
	if record == nil {
		return fmt.Errorf("session record cannot be nil")
	}
	if !validID(record.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, record.ID)
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	// Write through a temp file and rename into place
	filePath := fp.getFilePath(record.ID)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session record from its JSON file
func (fp *FilePersistence) Load(id string) (*service.SessionRecord, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	filePath := fp.getFilePath(id)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	// Read file
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var record service.SessionRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	return &record, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	// Check if file exists
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	// Remove file
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			// Remove .json extension to get session ID
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	if !validID(id) {
		return false
	}
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", strings.ToLower(id)))
}

// validID rejects IDs that would escape the sessions directory
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}
