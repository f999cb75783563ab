package config

import (
	"fmt"
	"strings"
)

// defaultProvider implements Source for built-in defaults. The loader always
// applies defaults first, so this source exists only to make precedence
// explicit at call sites.
type defaultProvider struct{}

// NewDefaultProvider creates a configuration source for built-in defaults.
func NewDefaultProvider() Source {
	return &defaultProvider{}
}

func (d *defaultProvider) Load() (map[string]any, error) {
	return make(map[string]any), nil
}

func (d *defaultProvider) Type() SourceType {
	return SourceDefault
}

func (d *defaultProvider) Close() error {
	return nil
}

// envProvider is a marker source; the actual environment loading is handled
// by koanf's native env provider in loader.go.
type envProvider struct{}

// NewEnvProvider creates a new environment variable configuration source.
func NewEnvProvider() Source {
	return &envProvider{}
}

func (e *envProvider) Load() (map[string]any, error) {
	return make(map[string]any), nil
}

func (e *envProvider) Type() SourceType {
	return SourceEnv
}

func (e *envProvider) Close() error {
	return nil
}

// cliProvider implements Source for command-line flag overrides. Keys are
// dot-notation config paths ("agent.model") mapped to flag values.
type cliProvider struct {
	overrides map[string]any
}

// NewCLIProvider creates a new CLI flags configuration source.
func NewCLIProvider(overrides map[string]any) Source {
	return &cliProvider{overrides: overrides}
}

func (c *cliProvider) Load() (map[string]any, error) {
	if len(c.overrides) == 0 {
		return make(map[string]any), nil
	}
	config := make(map[string]any)
	for path, value := range c.overrides {
		if value == nil {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI override %s: %w", path, err)
		}
	}
	return config, nil
}

func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

func (c *cliProvider) Close() error {
	return nil
}

// setNested sets a value in a nested map structure using dot notation.
// It returns an error if a path conflict is encountered.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}
