package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/llm"
	"github.com/abhisek/jlptquiz/internal/store"
)

// Config is the root application configuration. Values come from YAML
// and are then overridden by JLPTQUIZ_* variables. A variable that is
// exported but empty still counts as set and blanks the YAML value.
type Config struct {
	Sheets SheetsConfig `yaml:"sheets"`
	Quiz   QuizConfig   `yaml:"quiz"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	DB     DBConfig     `yaml:"db"`
	LLM    llm.Config   `yaml:"llm"`
}

// SheetsConfig selects where study material is loaded from. CSVDir, when
// set, takes precedence over the spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string        `yaml:"spreadsheet_id"   env:"JLPTQUIZ_SPREADSHEET_ID"`
	CredentialsFile string        `yaml:"credentials_file" env:"JLPTQUIZ_CREDENTIALS_FILE"`
	APIKey          string        `yaml:"api_key"          env:"JLPTQUIZ_SHEETS_API_KEY"`
	Grammar         string        `yaml:"grammar"          env:"JLPTQUIZ_SHEET_GRAMMAR"    env-default:"Grammar"`
	Kanji           string        `yaml:"kanji"            env:"JLPTQUIZ_SHEET_KANJI"      env-default:"Kanji"`
	Vocabulary      string        `yaml:"vocabulary"       env:"JLPTQUIZ_SHEET_VOCABULARY" env-default:"Vocabulary"`
	Range           string        `yaml:"range"            env:"JLPTQUIZ_SHEET_RANGE"      env-default:"A1:Z1000"`
	CSVDir          string        `yaml:"csv_dir"          env:"JLPTQUIZ_CSV_DIR"`
	Timeout         time.Duration `yaml:"timeout"          env:"JLPTQUIZ_LOAD_TIMEOUT"     env-default:"15s"`
}

// QuizConfig holds quiz session settings.
type QuizConfig struct {
	SessionSize int `yaml:"session_size" env:"JLPTQUIZ_SESSION_SIZE" env-default:"20"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"JLPTQUIZ_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"JLPTQUIZ_PORT"             env-default:"5000"`
	RatePerSecond   float64       `yaml:"rate_per_second"  env:"JLPTQUIZ_RATE_PER_SECOND"  env-default:"10"`
	RateBurst       int           `yaml:"rate_burst"       env:"JLPTQUIZ_RATE_BURST"       env-default:"20"`
	SessionTTL      time.Duration `yaml:"session_ttl"      env:"JLPTQUIZ_SESSION_TTL"      env-default:"2h"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"JLPTQUIZ_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"JLPTQUIZ_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"JLPTQUIZ_LOG_FORMAT" env-default:"text"`

	// File receives logs while the terminal UI owns the screen. Empty
	// discards them.
	File string `yaml:"file" env:"JLPTQUIZ_LOG_FILE"`
}

// DBConfig holds the SQLite location.
type DBConfig struct {
	Path string `yaml:"path" env:"JLPTQUIZ_DB"`
}

// DBPath returns the configured database path or the per-user default.
func (c *Config) DBPath() (string, error) {
	if c.DB.Path != "" {
		return c.DB.Path, nil
	}
	return store.DefaultDBPath()
}

// Names maps each kind to its sheet name.
func (s SheetsConfig) Names() dataset.Sheets {
	return dataset.Sheets{
		Grammar:    s.Grammar,
		Kanji:      s.Kanji,
		Vocabulary: s.Vocabulary,
	}
}

// NewLoader returns a CSV loader when CSVDir is set and a Google Sheets
// loader otherwise.
func (s SheetsConfig) NewLoader(ctx context.Context) (dataset.Loader, error) {
	if s.CSVDir != "" {
		return dataset.NewCSVLoader(s.CSVDir), nil
	}
	l, err := dataset.NewSheetsLoader(ctx, dataset.SheetsConfig{
		SpreadsheetID:   s.SpreadsheetID,
		CredentialsFile: s.CredentialsFile,
		APIKey:          s.APIKey,
		Range:           s.Range,
	})
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	return l, nil
}
