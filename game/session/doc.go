// Package session provides session management for Hopping Stones.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session record persistence
//   - Releasing a running game once play ends, keeping its record
//
// Core Types:
//
// Manager holds the running sessions. Each service.Session owns its own
// engine and mutex. FilePersistence stores one JSON record per session.
//
// Session Identifiers:
//
// Sessions use the first 8 hex characters of a random UUID. Lookups are
// case-insensitive.
//
// Persistence:
//
// Only the session record is stored: player names, layout ID, timestamps,
// turn count and outcome. A running game cannot be restored from a record;
// Get reports ErrSessionNotActive for a session that exists only on disk.
//
// Usage:
//
//	store, err := session.NewFilePersistence(dir)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(store, logger)
//
//	sess, err := manager.Create("", "classic", config, service.Players{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	records, err := manager.Records()
package session
