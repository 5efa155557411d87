package config

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSecs     int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs    int    `yaml:"write_timeout_secs"`
	ShutdownTimeoutSecs int    `yaml:"shutdown_timeout_secs"`
}

// DatasetConfig locates the labeled training corpus.
type DatasetConfig struct {
	ID          string   `yaml:"id"`
	BaseURL     string   `yaml:"base_url"`
	Files       []string `yaml:"files"`
	TokenEnvs   []string `yaml:"token_envs"`
	Limit       int      `yaml:"limit"`
	TimeoutSecs int      `yaml:"timeout_secs"`
	MaxRetries  int      `yaml:"max_retries"`
}

// ClassifierConfig configures the model build.
type ClassifierConfig struct {
	BuildTimeoutSecs int `yaml:"build_timeout_secs"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type       string `yaml:"type"`
	MaxBullets int    `yaml:"max_bullets"`
}

// LLMConfig configures the optional abstractive summary provider.
type LLMConfig struct {
	Provider       string   `yaml:"provider"`
	BaseURL        string   `yaml:"base_url,omitempty"`
	Model          string   `yaml:"model"`
	APIKeyEnvs     []string `yaml:"api_key_envs"`
	Temperature    float64  `yaml:"temperature"`
	TimeoutSecs    int      `yaml:"timeout_secs"`
	MaxRetries     int      `yaml:"max_retries"`
	MaxInputTokens int      `yaml:"max_input_tokens"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	LLM        LLMConfig        `yaml:"llm"`
	Log        LogConfig        `yaml:"log"`
}

// Addr returns the host:port the API listens on.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c ServerConfig) ReadTimeout() time.Duration  { return secs(c.ReadTimeoutSecs) }
func (c ServerConfig) WriteTimeout() time.Duration { return secs(c.WriteTimeoutSecs) }
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return secs(c.ShutdownTimeoutSecs)
}

func (c DatasetConfig) Timeout() time.Duration         { return secs(c.TimeoutSecs) }
func (c ClassifierConfig) BuildTimeout() time.Duration { return secs(c.BuildTimeoutSecs) }
func (c LLMConfig) Timeout() time.Duration             { return secs(c.TimeoutSecs) }

// Token returns the dataset credential from the first set env var in TokenEnvs.
func (c DatasetConfig) Token() string { return FirstEnv(c.TokenEnvs) }

// APIKey returns the provider credential from the first set env var in APIKeyEnvs.
func (c LLMConfig) APIKey() string { return FirstEnv(c.APIKeyEnvs) }

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
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

// LoadDefault tries ./config.yaml first, then ~/.config/biaslens/config.yaml.
// If neither exists, it writes defaults to ~/.config/biaslens/config.yaml and returns them.
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

// FirstEnv returns the value of the first non-empty environment variable in names.
func FirstEnv(names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "biaslens", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Server: ServerConfig{Host: "0.0.0.0", Port: 3000, ReadTimeoutSecs: 30, WriteTimeoutSecs: 90, ShutdownTimeoutSecs: 15},
		Dataset: DatasetConfig{
			ID:          "newsmediabias/news-bias-full-data",
			BaseURL:     "https://huggingface.co/datasets",
			Files:       []string{"train.csv", "data/train.csv", "dataset.csv"},
			TokenEnvs:   []string{"HF_TOKEN", "HUGGINGFACE_API_KEY"},
			Limit:       2000,
			TimeoutSecs: 20,
			MaxRetries:  2,
		},
		Classifier: ClassifierConfig{BuildTimeoutSecs: 60},
		Summarizer: SummarizerConfig{Type: "auto", MaxBullets: 5},
		LLM: LLMConfig{
			Provider:       "openai",
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			APIKeyEnvs:     []string{"OPENAI_API_KEY", "LLM_API_KEY"},
			Temperature:    0.2,
			TimeoutSecs:    30,
			MaxRetries:     2,
			MaxInputTokens: 3000,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()

	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = def.Server.ReadTimeoutSecs
	}
	if cfg.Server.WriteTimeoutSecs == 0 {
		cfg.Server.WriteTimeoutSecs = def.Server.WriteTimeoutSecs
	}
	if cfg.Server.ShutdownTimeoutSecs == 0 {
		cfg.Server.ShutdownTimeoutSecs = def.Server.ShutdownTimeoutSecs
	}

	if cfg.Dataset.ID == "" {
		cfg.Dataset.ID = def.Dataset.ID
	}
	if cfg.Dataset.BaseURL == "" {
		cfg.Dataset.BaseURL = def.Dataset.BaseURL
	}
	if len(cfg.Dataset.Files) == 0 {
		cfg.Dataset.Files = def.Dataset.Files
	}
	if len(cfg.Dataset.TokenEnvs) == 0 {
		cfg.Dataset.TokenEnvs = def.Dataset.TokenEnvs
	}
	if cfg.Dataset.Limit == 0 {
		cfg.Dataset.Limit = def.Dataset.Limit
	}
	if cfg.Dataset.TimeoutSecs == 0 {
		cfg.Dataset.TimeoutSecs = def.Dataset.TimeoutSecs
	}

	if cfg.Classifier.BuildTimeoutSecs == 0 {
		cfg.Classifier.BuildTimeoutSecs = def.Classifier.BuildTimeoutSecs
	}

	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	if cfg.Summarizer.MaxBullets == 0 {
		cfg.Summarizer.MaxBullets = def.Summarizer.MaxBullets
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
	if cfg.LLM.Provider == "gemini" {
		if cfg.LLM.BaseURL == def.LLM.BaseURL {
			cfg.LLM.BaseURL = ""
		}
		if cfg.LLM.Model == "" || cfg.LLM.Model == def.LLM.Model {
			cfg.LLM.Model = "gemini-1.5-flash"
		}
		if len(cfg.LLM.APIKeyEnvs) == 0 || slices.Equal(cfg.LLM.APIKeyEnvs, def.LLM.APIKeyEnvs) {
			cfg.LLM.APIKeyEnvs = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
		}
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if len(cfg.LLM.APIKeyEnvs) == 0 {
		cfg.LLM.APIKeyEnvs = def.LLM.APIKeyEnvs
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = def.LLM.Temperature
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = def.LLM.TimeoutSecs
	}
	if cfg.LLM.MaxInputTokens == 0 {
		cfg.LLM.MaxInputTokens = def.LLM.MaxInputTokens
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }
