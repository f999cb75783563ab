package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Manager holds the loaded configuration and hands out atomic snapshots.
// Environment variables do not change at runtime, so there is no file
// watching here; Reload exists for tests and long-running servers that
// want to pick up new CLI overrides.
type Manager struct {
	Service    Service
	current    atomic.Value // stores *Config
	sources    []Source
	callbacks  []func(*Config)
	callbackMu sync.RWMutex
	reloadMu   sync.Mutex
	closeOnce  sync.Once
}

// NewManager creates a new configuration manager.
func NewManager(service Service) *Manager {
	if service == nil {
		service = NewService()
	}
	return &Manager{
		Service:   service,
		callbacks: make([]func(*Config), 0),
	}
}

// Load loads configuration from sources and stores the snapshot.
func (m *Manager) Load(ctx context.Context, sources ...Source) (*Config, error) {
	m.reloadMu.Lock()
	m.sources = append([]Source(nil), sources...)
	m.reloadMu.Unlock()

	config, err := m.Service.Load(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	m.applyConfig(config)

	return config, nil
}

// Get returns the current configuration atomically.
func (m *Manager) Get() *Config {
	val := m.current.Load()
	if val == nil {
		return nil
	}
	config, ok := val.(*Config)
	if !ok {
		return nil
	}
	return config
}

// Reload forces a configuration reload from all sources.
func (m *Manager) Reload(ctx context.Context) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	newConfig, err := m.Service.Load(ctx, m.sources...)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	m.applyConfig(newConfig)

	return nil
}

// OnChange registers a callback to be invoked when configuration changes.
func (m *Manager) OnChange(callback func(*Config)) {
	m.callbackMu.Lock()
	defer m.callbackMu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Close releases the sources. Idempotent.
func (m *Manager) Close(_ context.Context) error {
	var closeErr error
	m.closeOnce.Do(func() {
		m.reloadMu.Lock()
		sourcesCopy := append([]Source(nil), m.sources...)
		m.reloadMu.Unlock()
		for _, source := range sourcesCopy {
			if source == nil {
				continue
			}
			if err := source.Close(); err != nil && closeErr == nil {
				closeErr = err
			}
		}
	})
	return closeErr
}

// applyConfig applies a new configuration atomically and notifies callbacks.
func (m *Manager) applyConfig(config *Config) {
	m.current.Store(config)

	m.callbackMu.RLock()
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.callbackMu.RUnlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(config)
		}
	}
}
