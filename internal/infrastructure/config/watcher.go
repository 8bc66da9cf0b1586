package config

import (
	"fmt"

	"github.com/bnema/dockable/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil // Already watching
	}
	if m.config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	m.viper.OnConfigChange(m.handleConfigEvent)
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

func (m *Manager) handleConfigEvent(e fsnotify.Event) {
	log := logging.NewFromEnv()
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("fsnotify config change detected")

	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}

	// Acquire write lock before reload (reload modifies m.config)
	m.mu.Lock()

	// Our own Save already updated the in-memory config.
	if m.skipNextReload {
		log.Debug().Msg("skipping reload (triggered by own Save)")
		m.skipNextReload = false
		if err := m.viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Msg("failed to sync viper config after Save")
		}
		m.notifyCallbacksLocked()
		return
	}

	log.Debug().Msg("reloading config from external change")
	if err := m.reload(); err != nil {
		log.Warn().Err(err).Msg("failed to reload config")
		m.mu.Unlock()
		return
	}
	m.notifyCallbacksLocked()
}

// notifyCallbacksLocked copies callbacks and config, releases lock, then notifies.
// Must be called with m.mu held for write. Releases the lock before calling callbacks.
func (m *Manager) notifyCallbacksLocked() {
	configCopy := *m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		cfg := configCopy
		callback(&cfg)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload reloads the configuration (internal method, must be called with lock held for write).
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
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
