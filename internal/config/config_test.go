package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jlptquiz/internal/dataset"
)

// isolate runs the test in an empty directory with no vendor API keys
// and no provider override, so neither a stray jlptquiz.yaml nor the
// developer's shell leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		"JLPTQUIZ_CONFIG", "JLPTQUIZ_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		unsetenv(t, k)
	}
	return dir
}

// unsetenv removes k for the duration of the test. An exported but empty
// variable still overrides YAML, so clearing it is not enough.
func unsetenv(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	require.NoError(t, os.Unsetenv(k))
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "jlptquiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EnvDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("JLPTQUIZ_SPREADSHEET_ID", "sheet-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, dataset.Sheets{Grammar: "Grammar", Kanji: "Kanji", Vocabulary: "Vocabulary"}, cfg.Sheets.Names())
	assert.Equal(t, "A1:Z1000", cfg.Sheets.Range)
	assert.Equal(t, 15*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 20, cfg.Quiz.SessionSize)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr())
	assert.Equal(t, 2*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
}

func TestRead_SkipsValidation(t *testing.T) {
	isolate(t)
	t.Setenv("JLPTQUIZ_SPREADSHEET_ID", "")
	t.Setenv("JLPTQUIZ_CSV_DIR", "")
	t.Setenv("JLPTQUIZ_DB", "/tmp/quiz.db")

	_, err := Load("")
	require.Error(t, err, "no sheet source")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/quiz.db", cfg.DB.Path)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, `
sheets:
  csv_dir: ./data
  kanji: "漢字"
  timeout: 5s
quiz:
  session_size: 10
server:
  port: 9090
log:
  format: json
llm:
  provider: mock
`)
	t.Setenv("JLPTQUIZ_SESSION_SIZE", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Sheets.CSVDir)
	assert.Equal(t, "漢字", cfg.Sheets.Kanji)
	assert.Equal(t, "Grammar", cfg.Sheets.Grammar)
	assert.Equal(t, 5*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 7, cfg.Quiz.SessionSize, "env beats yaml")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestRead_ExportedEmptyEnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, "llm:\n  provider: mock\n")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider, "unset variable leaves YAML alone")

	t.Setenv("JLPTQUIZ_LLM_PROVIDER", "")
	cfg, err = Read("")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.Provider, "exported empty variable wins over YAML")
}

func TestLoad_ConfigPathSources(t *testing.T) {
	dir := isolate(t)
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("sheets:\n  csv_dir: ./from-env-path\n"), 0o644))

	t.Run("JLPTQUIZ_CONFIG", func(t *testing.T) {
		t.Setenv("JLPTQUIZ_CONFIG", other)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "./from-env-path", cfg.Sheets.CSVDir)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("env path missing", func(t *testing.T) {
		t.Setenv("JLPTQUIZ_CONFIG", filepath.Join(dir, "nope.yaml"))
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestLoad_DiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("JLPTQUIZ_CSV_DIR", "./data")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func validConfig() Config {
	return Config{
		Sheets: SheetsConfig{CSVDir: "./data", Grammar: "Grammar", Timeout: time.Second},
		Quiz:   QuizConfig{SessionSize: 20},
		Server: ServerConfig{Port: 5000, RatePerSecond: 10, RateBurst: 20, SessionTTL: time.Hour},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no source", func(c *Config) { c.Sheets.CSVDir = "" }},
		{"no grammar sheet", func(c *Config) { c.Sheets.Grammar = " " }},
		{"zero timeout", func(c *Config) { c.Sheets.Timeout = 0 }},
		{"zero session size", func(c *Config) { c.Quiz.SessionSize = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"negative rate", func(c *Config) { c.Server.RatePerSecond = -1 }},
		{"rate without burst", func(c *Config) { c.Server.RateBurst = 0 }},
		{"zero ttl", func(c *Config) { c.Server.SessionTTL = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"llm without key", func(c *Config) { c.LLM.Provider = "anthropic" }},
	}

	base := validConfig()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Path = "custom.db"
	p, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, "custom.db", p)

	envPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("JLPTQUIZ_DB", envPath)
	cfg.DB.Path = ""
	p, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, envPath, p)
}

func TestNewLoader_PrefersCSV(t *testing.T) {
	l, err := SheetsConfig{CSVDir: t.TempDir(), SpreadsheetID: "x"}.NewLoader(t.Context())
	require.NoError(t, err)
	assert.IsType(t, &dataset.CSVLoader{}, l)

	_, err = SheetsConfig{SpreadsheetID: "x"}.NewLoader(t.Context())
	assert.Error(t, err, "sheets without credentials")
}
