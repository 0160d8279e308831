// Command validate checks Hopping Stones layout files (*.json, *.yaml, *.yml)
// in the directories given on the command line, or the current directory.
// It checks:
//   - JSON or YAML structure and required fields
//   - Board size, row lengths and allowed characters (F, S, .)
//   - Equal, non-zero stone counts and the exact legend
//   - Parity: each side can, in principle, fill the other's formation
//   - The first side has a legal opening move
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single layout file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.DecodeGameConfig(filePath, data)
	if err != nil {
		format := "JSON"
		if ext := strings.ToLower(filepath.Ext(filePath)); ext == ".yaml" || ext == ".yml" {
			format = "YAML"
		}
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid %s: %v", format, err))
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	state, err := engine.NewGameStateFromConfig(config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot build game: %v", err))
		return result
	}

	playability := validatePlayability(state)
	result.Valid = playability.Valid
	result.Errors = append(result.Errors, playability.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Stones per side: %d", engine.CountStones(config, engine.First)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Opening moves: %d", engine.Mobility(state, engine.First)))
	}

	return result
}

// validatePlayability checks that both sides can win by parity and that
// the first side is able to move at all.
func validatePlayability(state *engine.GameState) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	for _, side := range []engine.Side{engine.First, engine.Second} {
		even, odd := engine.ParityCounts(state, side)
		if !engine.IsWinnable(state, side) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Parity failure: %s stones (%d even, %d odd) can never fill the %s formation", side, even, odd, side.Opponent()))
		}
	}

	if !state.HasValidMove(engine.First) {
		result.Valid = false
		result.Errors = append(result.Errors, "First side has no legal opening move")
	}

	if result.Valid {
		result.Errors = append(result.Errors, "✓ Parity: both formations reachable")
	}

	return result
}

// layoutFiles lists the layout files in dir
func layoutFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main validates every layout file found, printing a concise report and
// exiting with non-zero status if any are invalid.
func main() {
	dirs := os.Args[1:]
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var files []string
	for _, dir := range dirs {
		found, err := layoutFiles(dir)
		if err != nil {
			fmt.Printf("Error finding layout files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		fmt.Println("No layout files found")
		return
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All layouts are valid!")
	} else {
		fmt.Println("❌ Some layouts have errors")
		os.Exit(1)
	}
}
