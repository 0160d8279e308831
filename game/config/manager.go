package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
	"github.com/wricardo/mcp-training/hoppingstones/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is the layout used when none is requested.
const DefaultConfigName = "classic"

// layoutExtensions lists the accepted layout file extensions in lookup order.
var layoutExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles layout loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	logger        *zap.Logger
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string, logger *zap.Logger) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
		logger:    logger,
	}

	// Load default config
	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a layout by name. The name may carry a file extension;
// without one, .json, .yaml and .yml are tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	key := configID(name)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	configPath, err := m.findConfigFile(name)
	if err != nil {
		if key == DefaultConfigName && errors.Is(err, ErrConfigNotFound) {
			// The classic layout is always available
			config := engine.DefaultGameConfig()
			m.configs[key] = config
			return config, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.DecodeGameConfig(configPath, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate config
	if err := engine.ValidateGameConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.logger.Debug("layout loaded", zap.String("config", key), zap.String("path", configPath))

	// Cache the config
	m.configs[key] = config
	return config, nil
}

// ListConfigs returns information about all available layouts, sorted by ID.
// The built-in classic layout is listed even when no file provides it.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isLayoutFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		// Try to load the config to get details
		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			m.logger.Warn("skipping invalid layout", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		seen[id] = true
		configs = append(configs, newConfigInfo(entry.Name(), id, config))
	}

	if !seen[DefaultConfigName] {
		configs = append(configs, newConfigInfo("", DefaultConfigName, engine.DefaultGameConfig()))
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	// Clear cache
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	// Reload default config
	return m.loadDefaultConfig()
}

// SaveConfig validates a layout and writes it to disk. The file format
// follows the extension of name; without one, JSON is used.
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	// Validate config before saving
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !isLayoutFile(filename) {
		filename = name + ".json"
	}

	configPath := filepath.Join(m.configDir, filename)

	data, err := engine.EncodeGameConfig(filename, config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[configID(name)] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	// classic.json on disk wins over the built-in classic layout
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		m.logger.Warn("classic layout unusable, falling back to built-in", zap.Error(err))
		config = engine.DefaultGameConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// findConfigFile resolves a layout name to a file in the config directory
func (m *Manager) findConfigFile(name string) (string, error) {
	candidates := []string{name}
	if !isLayoutFile(name) {
		candidates = candidates[:0]
		for _, ext := range layoutExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, candidate := range candidates {
		path := filepath.Join(m.configDir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	return "", ErrConfigNotFound
}

func newConfigInfo(filename, id string, config *engine.GameConfig) *service.ConfigInfo {
	return &service.ConfigInfo{
		Filename:      filename,
		ConfigID:      id, // This is the identifier to use for session creation
		Name:          config.Name,
		Description:   config.Description,
		BoardSize:     config.BoardSize,
		StonesPerSide: engine.CountStones(config, engine.First),
	}
}

// configID strips a layout extension from name
func configID(name string) string {
	ext := filepath.Ext(name)
	for _, known := range layoutExtensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func isLayoutFile(name string) bool {
	return configID(name) != name
}
