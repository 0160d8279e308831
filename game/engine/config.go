package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout characters
const (
	FirstCell  = 'F'
	SecondCell = 'S'
	EmptyCell  = '.'
)

// GameConfig describes a starting layout loaded from JSON or YAML.
type GameConfig struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	BoardSize   int               `json:"board_size" yaml:"board_size"`
	Layout      []string          `json:"layout" yaml:"layout"`
	Legend      map[string]string `json:"legend" yaml:"legend"`
}

// DefaultLegend is the only legend accepted by ValidateGameConfig.
func DefaultLegend() map[string]string {
	return map[string]string{
		"F": "first",
		"S": "second",
		".": "empty",
	}
}

// DefaultGameConfig returns the classic 5x5 layout.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Seven stones per side along opposite edges of a 5x5 board",
		BoardSize:   DefaultBoardSize,
		Layout: []string{
			"FFFFF",
			"F...F",
			".....",
			"S...S",
			"SSSSS",
		},
		Legend: DefaultLegend(),
	}
}

// ValidateGameConfig validates a layout for correctness and playability.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate board size
	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	// Validate layout
	if len(config.Layout) != config.BoardSize {
		return fmt.Errorf("config validation: layout must have %d rows to match board_size, got %d",
			config.BoardSize, len(config.Layout))
	}

	counts := map[rune]int{}
	for i, row := range config.Layout {
		if len(row) != config.BoardSize {
			return fmt.Errorf("config validation: row %d must have %d characters to match board_size, got %d",
				i+1, config.BoardSize, len(row))
		}
		for j, char := range row {
			switch char {
			case FirstCell, SecondCell, EmptyCell:
				counts[char]++
			default:
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", char, i+1, j+1)
			}
		}
	}

	if counts[FirstCell] == 0 {
		return fmt.Errorf("config validation: layout must contain at least one first (F) stone")
	}
	if counts[FirstCell] != counts[SecondCell] {
		return fmt.Errorf("config validation: both sides need the same number of stones, got %d first and %d second",
			counts[FirstCell], counts[SecondCell])
	}

	// Validate legend
	for key, expected := range DefaultLegend() {
		if value, ok := config.Legend[key]; !ok || value != expected {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expected, value)
		}
	}

	return nil
}

// StonesFromConfig lists the stones of a layout in row-major order.
func StonesFromConfig(config *GameConfig) []Stone {
	var stones []Stone
	for r, row := range config.Layout {
		for c, char := range row {
			switch char {
			case FirstCell:
				stones = append(stones, NewStone(First, Position{Row: r, Col: c}))
			case SecondCell:
				stones = append(stones, NewStone(Second, Position{Row: r, Col: c}))
			}
		}
	}
	return stones
}

// NewGameStateFromConfig validates config and builds its starting position.
func NewGameStateFromConfig(config *GameConfig) (*GameState, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return NewGameState(config.BoardSize, StonesFromConfig(config)...)
}

// ConfigFromState renders a game state back into layout rows.
func ConfigFromState(name, description string, state *GameState) *GameConfig {
	size := state.Board().Size
	rows := make([][]byte, size)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(string(EmptyCell), size))
	}
	for _, stone := range state.stones {
		char := byte(FirstCell)
		if stone.side == Second {
			char = SecondCell
		}
		rows[stone.position.Row][stone.position.Col] = char
	}

	layout := make([]string, size)
	for r, row := range rows {
		layout[r] = string(row)
	}
	return &GameConfig{
		Name:        name,
		Description: description,
		BoardSize:   size,
		Layout:      layout,
		Legend:      DefaultLegend(),
	}
}

// DecodeGameConfig parses a layout file. The format is chosen from the file
// extension; anything other than .yaml or .yml is treated as JSON.
func DecodeGameConfig(filename string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// EncodeGameConfig serialises config in the format matching filename.
func EncodeGameConfig(filename string, config *GameConfig) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Marshal(config)
	default:
		return json.MarshalIndent(config, "", "  ")
	}
}

// LoadGameConfig loads and validates a layout file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeGameConfig(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}
