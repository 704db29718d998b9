// Package file provides a TOML-backed configuration store.
// Configuration is stored in a TOML file within the reclass config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Embedding provider names accepted in configuration.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// EmbeddingConfig holds the embedding provider settings.
type EmbeddingConfig struct {
	// Provider selects the embedding backend: "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model,omitempty"`

	// APIKey authenticates against hosted providers. Ignored by Ollama.
	APIKey string `toml:"api_key,omitempty"`

	// Dimensions overrides the model's default vector size.
	Dimensions int `toml:"dimensions,omitempty"`

	// RequestsPerSecond caps outbound embedding requests. Zero disables
	// the cap for local providers and uses the decorator default otherwise.
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`

	// Burst is the rate limiter burst size.
	Burst int `toml:"burst,omitempty"`
}

// Config is the persisted reclass configuration.
type Config struct {
	// DataDir is where the record database lives. Empty means ~/.reclass/data.
	DataDir string `toml:"data_dir,omitempty"`

	// Threshold is the minimum similarity for a classification to be
	// accepted. Zero means the built-in default (0.85).
	Threshold float64 `toml:"threshold,omitempty"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider: ProviderOllama,
		},
	}
}

// ConfigStore loads and persists Config as a TOML file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.reclass/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".reclass")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update replaces the configuration and persists it immediately.
func (s *ConfigStore) Update(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cfg
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Restricted permissions: the file may hold an API key.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file leaves
// the defaults in place.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = DefaultConfig()
			return nil
		}
		return err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = ProviderOllama
	}

	s.config = cfg
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
