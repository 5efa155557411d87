package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
dataset:
  files: [only.csv]
llm:
  provider: gemini
log:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout())
	assert.Equal(t, []string{"only.csv"}, cfg.Dataset.Files)
	assert.Equal(t, "newsmediabias/news-bias-full-data", cfg.Dataset.ID)
	assert.Equal(t, 20*time.Second, cfg.Dataset.Timeout())
	assert.Equal(t, time.Minute, cfg.Classifier.BuildTimeout())
	assert.Equal(t, 5, cfg.Summarizer.MaxBullets)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, cfg.LLM.APIKeyEnvs)
	assert.Empty(t, cfg.LLM.BaseURL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultConfig()
	want.Summarizer.Type = "extractive"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadDefaultWritesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "biaslens", "config.yaml"), path)
	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-second")
	t.Setenv("OPENAI_API_KEY", " sk-first ")

	cfg := defaultConfig()
	assert.Equal(t, "hf-second", cfg.Dataset.Token())
	assert.Equal(t, "sk-first", cfg.LLM.APIKey())
	assert.Empty(t, FirstEnv([]string{"BIASLENS_UNSET_VAR"}))
}

func TestGeminiReplacesOpenAIDefaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.LLM.Provider = "gemini"
	applyConfigDefaults(cfg)

	assert.Empty(t, cfg.LLM.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, cfg.LLM.APIKeyEnvs)
}
