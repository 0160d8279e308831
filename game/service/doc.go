// Package service provides the business logic layer for Hopping Stones.
//
// The service package implements:
//   - Multi-session game management
//   - Layout loading and saving
//   - Click processing with ordered event reporting
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and record persistence.
// ConfigManager manages layout loading and validation.
//
// Architecture:
//
// The service layer sits between a host (the terminal player or any other
// front end) and the game engine. Each session owns its own engine instance
// and a mutex; a click holds that mutex for the whole controller, state and
// notification cycle, so a session can be driven from several goroutines.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("layouts", logger)
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "classic", service.Players{First: "Ada", Second: "Bob"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Click(ctx, info.ID, 0, 0)
//
// Session Records:
//
// Only session metadata is ever persisted: player names, layout, timestamps,
// turn count and outcome. A record survives the process; the game itself does not.
package service
