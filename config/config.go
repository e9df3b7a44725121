package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the recommendation engine.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Recommend RecommendConfig `yaml:"recommend"`
	Import    ImportConfig    `yaml:"import"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	// Dimension is fixed for the lifetime of a store; it must match the
	// encoder's output dimension.
	Dimension int `yaml:"dimension"`
}

// EncoderConfig holds embedding encoder configuration.
type EncoderConfig struct {
	Provider       string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model          string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv      string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RecommendConfig holds recommendation configuration.
type RecommendConfig struct {
	TopK int `yaml:"top_k"`

	// DecayLambda is the per-hour exponential decay rate applied to
	// interaction age.
	DecayLambda float64 `yaml:"decay_lambda"`

	// ActionWeights maps interaction actions to positive weights.
	// Actions not listed fall back to DefaultActionWeight.
	ActionWeights map[string]float64 `yaml:"action_weights"`

	DefaultActionWeight float64 `yaml:"default_action_weight"`
}

// ImportConfig holds bulk import configuration.
type ImportConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	Concurrency int      `yaml:"concurrency"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dimension: 1536,
		},
		Encoder: EncoderConfig{
			Provider:       "openai",
			Model:          "text-embedding-3-small",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 30,
		},
		Recommend: RecommendConfig{
			TopK:        10,
			DecayLambda: 0.1,
			ActionWeights: map[string]float64{
				"like":    1.0,
				"comment": 1.5,
				"share":   2.0,
			},
			DefaultActionWeight: 1.0,
		},
		Import: ImportConfig{
			Includes:    []string{"**/*.md", "**/*.txt"},
			Excludes:    []string{"**/node_modules/**", "**/.git/**", "**/.feedrec/**"},
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for feedrec.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "feedrec.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".feedrec", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ActionWeight returns the weight for an action, falling back to the
// default for unknown actions.
func (c *Config) ActionWeight(action string) float64 {
	if w, ok := c.Recommend.ActionWeights[action]; ok && w > 0 {
		return w
	}
	if c.Recommend.DefaultActionWeight > 0 {
		return c.Recommend.DefaultActionWeight
	}
	return 1.0
}

// StoreDBPath returns the path to the vector store database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".feedrec", "store.db")
}

// EnsureDataDir ensures the .feedrec directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".feedrec"), 0755)
}
