package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Sheets.CSVDir == "" && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets: spreadsheet_id or csv_dir is required")
	}
	if strings.TrimSpace(c.Sheets.Grammar) == "" {
		return fmt.Errorf("sheets: grammar sheet name is required")
	}
	if c.Sheets.Timeout <= 0 {
		return fmt.Errorf("sheets: timeout must be > 0 (got %s)", c.Sheets.Timeout)
	}

	if c.Quiz.SessionSize <= 0 {
		return fmt.Errorf("quiz: session_size must be > 0 (got %d)", c.Quiz.SessionSize)
	}

	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: format must be text or json (got %q)", c.Log.Format)
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", s.Port)
	}
	if s.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must be >= 0 (got %v)", s.RatePerSecond)
	}
	if s.RatePerSecond > 0 && s.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be >= 1 when rate limiting is on (got %d)", s.RateBurst)
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %s)", s.SessionTTL)
	}
	return nil
}
