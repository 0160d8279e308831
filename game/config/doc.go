// Package config provides layout management for Hopping Stones.
//
// The config package handles:
//   - Loading layouts from JSON and YAML files
//   - Layout validation
//   - Default layout management
//   - Layout discovery and listing
//
// Layout Format:
//
// A layout file describes the starting position of both sides:
//
//	name: classic
//	description: Seven stones per side along opposite edges
//	board_size: 5
//	layout:
//	  - FFFFF
//	  - F...F
//	  - .....
//	  - S...S
//	  - SSSSS
//	legend: {F: first, S: second, ".": empty}
//
// Files may use .json, .yaml or .yml. A layout is addressed by its file
// name without extension; "classic" is always available, built in when no
// classic file exists.
//
// Usage:
//
//	manager, err := config.NewManager("layouts", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	layout, err := manager.LoadConfig("corners")
//	defaultLayout := manager.GetDefault()
//	layouts, err := manager.ListConfigs()
package config
