package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into word windows.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// OpenAIEmbedderConfig holds configuration for the remote embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedding provider.
// Type "openai" uses the remote provider with the hash fallback;
// type "hash" uses the deterministic fallback alone.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// ArchiveConfig locates the persisted passage archive.
type ArchiveConfig struct {
	Path string `yaml:"path"`
	// SizeBudgetMB is advisory: the ingest command warns when the
	// archive exceeds it, nothing enforces it.
	SizeBudgetMB float64 `yaml:"size_budget_mb"`
}

// SearchConfig holds query-time defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// SourcesConfig locates the acquisition layer's exports.
type SourcesConfig struct {
	CourseFile    string `yaml:"course_file"`
	DiscourseGlob string `yaml:"discourse_glob"`
	DiscourseURL  string `yaml:"discourse_url"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker  ChunkerConfig  `yaml:"chunker"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Search   SearchConfig   `yaml:"search"`
	Sources  SourcesConfig  `yaml:"sources"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/courseqa/config.yaml.
// If neither exists, it writes defaults to ~/.config/courseqa/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "courseqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Chunker:  ChunkerConfig{ChunkSize: 500, Overlap: 50},
		Embedder: EmbedderConfig{Type: "openai"},
		Archive:  ArchiveConfig{Path: "data/processed/embeddings.gob", SizeBudgetMB: 15},
		Search:   SearchConfig{TopK: 5},
		Sources: SourcesConfig{
			CourseFile:    "data/raw/course_content.json",
			DiscourseGlob: "data/raw/discourse_*.json",
		},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 500
	}
	// Zero overlap is indistinguishable from unset in YAML, so the 50-word
	// default applies unless the chunk size is too small to allow it.
	if cfg.Chunker.Overlap == 0 && cfg.Chunker.ChunkSize > 50 {
		cfg.Chunker.Overlap = 50
	}
	if cfg.Archive.Path == "" {
		cfg.Archive.Path = "data/processed/embeddings.gob"
	}
	if cfg.Archive.SizeBudgetMB == 0 {
		cfg.Archive.SizeBudgetMB = 15
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 5
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}
