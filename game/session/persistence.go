package session

import (
	"github.com/wricardo/mcp-training/hoppingstones/game/service"
)

// RecordPersistence defines the interface for persisting session records.
// Only metadata is stored; an in-progress game cannot be restored from it.
type RecordPersistence interface {
	// Save persists a session record to storage
	Save(record *service.SessionRecord) error

	// Load retrieves a session record from storage by ID
	Load(id string) (*service.SessionRecord, error)

	// Delete removes a session record from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session record exists in storage
	Exists(id string) bool
}
