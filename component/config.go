// Package component provides loading and parsing of graphid.yaml
// configuration files. A graphid.yaml sets the hashing defaults, the content
// cache backend, and named quad filters for one deployment.
package component

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a graphid.yaml configuration file.
type Config struct {
	// Hashing defaults
	Algorithm     string `yaml:"algorithm,omitempty"`     // "sha256", "sha512", "sha1"
	Normalization string `yaml:"normalization,omitempty"` // "simple", "canonical", "merkle"
	Encoding      string `yaml:"encoding,omitempty"`      // content ID encoding: "hex", "base64url"

	// MaxQuads caps input size; inputs above it are rejected.
	MaxQuads int `yaml:"max_quads,omitempty"`

	// Cache configures the content cache backend.
	Cache *CacheConfig `yaml:"cache,omitempty"`

	// Filters are named CEL quad filter expressions.
	Filters map[string]string `yaml:"filters,omitempty"`
}

// CacheConfig selects and tunes the content cache backend.
type CacheConfig struct {
	// Backend is "memory" (default) or "redis".
	Backend string `yaml:"backend,omitempty"`

	// Capacity bounds the in-memory cache entry count.
	Capacity int `yaml:"capacity,omitempty"`

	// URL is the Redis connection string for the redis backend.
	URL string `yaml:"url,omitempty"`

	// KeyPrefix namespaces Redis cache keys.
	KeyPrefix string `yaml:"key_prefix,omitempty"`

	// TTL is the Redis artifact expiry.
	// Format: Go duration string (e.g., "24h").
	TTL string `yaml:"ttl,omitempty"`
}

// GetAlgorithm returns the configured algorithm or the default value.
func (c *Config) GetAlgorithm() string {
	if c == nil || c.Algorithm == "" {
		return "sha256"
	}
	return c.Algorithm
}

// GetNormalization returns the configured normalization mode or the default
// value.
func (c *Config) GetNormalization() string {
	if c == nil || c.Normalization == "" {
		return "canonical"
	}
	return c.Normalization
}

// GetEncoding returns the configured content ID encoding or the default
// value.
func (c *Config) GetEncoding() string {
	if c == nil || c.Encoding == "" {
		return "hex"
	}
	return c.Encoding
}

// GetMaxQuads returns the configured input cap or the default value.
func (c *Config) GetMaxQuads() int {
	if c == nil || c.MaxQuads <= 0 {
		return 1_000_000
	}
	return c.MaxQuads
}

// GetBackend returns the cache backend or the default value.
func (c *CacheConfig) GetBackend() string {
	if c == nil || c.Backend == "" {
		return "memory"
	}
	return c.Backend
}

// GetCapacity returns the cache capacity or the default value.
func (c *CacheConfig) GetCapacity() int {
	if c == nil || c.Capacity <= 0 {
		return 1024
	}
	return c.Capacity
}

// GetTTL parses the TTL string and returns a duration. Returns zero (no
// expiry) if not set or invalid.
func (c *CacheConfig) GetTTL() time.Duration {
	if c == nil || c.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0
	}
	return d
}

// Load reads and parses a graphid.yaml file from the given path. If the path
// is a directory, it looks for graphid.yaml or graphid.yml in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		yamlPath := filepath.Join(path, "graphid.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "graphid.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no graphid.yaml or graphid.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for graphid.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no graphid.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}
