package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configDir      string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager reading config.toml from configDir.
func NewManagerWithDir(configDir string) (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Set up environment variable support (DOCKABLE_LAYOUT_DIVIDER_SIZE, ...)
	v.SetEnvPrefix("DOCKABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv
	if err := v.BindEnv("logging.level", "DOCKABLE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKABLE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKABLE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKABLE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile = filepath.Join(m.configDir, configFileName)
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// normalizeConfig fills values a user may leave blank.
func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = getDefaultLogDir()
	}
	if config.Interaction.MinFloatingHeight == 0 {
		config.Interaction.MinFloatingHeight = config.Interaction.HeaderHeight
	}
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configFileLocked()); err != nil {
		return err
	}

	if m.watching {
		// The watcher fires for our own write; keep the in-memory copy.
		m.skipNextReload = true
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configFileLocked()
}

func (m *Manager) configFileLocked() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configFileName)
}

// createDefaultConfig writes the default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, configFileName)
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLayoutDefaults(defaults)
	m.setInteractionDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setDemoDefaults(defaults)
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.divider_size", defaults.Layout.DividerSize)
	m.viper.SetDefault("layout.anchor_offset", defaults.Layout.AnchorOffset)
	m.viper.SetDefault("layout.root_anchors", defaults.Layout.RootAnchors)
}

func (m *Manager) setInteractionDefaults(defaults *Config) {
	m.viper.SetDefault("interaction.drag_threshold", defaults.Interaction.DragThreshold)
	m.viper.SetDefault("interaction.capture_radius", defaults.Interaction.CaptureRadius)
	m.viper.SetDefault("interaction.min_floating_width", defaults.Interaction.MinFloatingWidth)
	m.viper.SetDefault("interaction.min_floating_height", defaults.Interaction.MinFloatingHeight)
	m.viper.SetDefault("interaction.min_overlap", defaults.Interaction.MinOverlap)
	m.viper.SetDefault("interaction.header_height", defaults.Interaction.HeaderHeight)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setDemoDefaults(defaults *Config) {
	m.viper.SetDefault("demo.cell_width", defaults.Demo.CellWidth)
	m.viper.SetDefault("demo.cell_height", defaults.Demo.CellHeight)
	m.viper.SetDefault("demo.layout_file", defaults.Demo.LayoutFile)
	m.viper.SetDefault("demo.theme.border", defaults.Demo.Theme.Border)
	m.viper.SetDefault("demo.theme.active_border", defaults.Demo.Theme.ActiveBorder)
	m.viper.SetDefault("demo.theme.tab", defaults.Demo.Theme.Tab)
	m.viper.SetDefault("demo.theme.active_tab", defaults.Demo.Theme.ActiveTab)
	m.viper.SetDefault("demo.theme.divider", defaults.Demo.Theme.Divider)
	m.viper.SetDefault("demo.theme.anchor", defaults.Demo.Theme.Anchor)
	m.viper.SetDefault("demo.theme.preview", defaults.Demo.Theme.Preview)
}
