package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultRange is the cell range read from every sheet.
const DefaultRange = "A1:Z1000"

// SheetsConfig configures access to a Google spreadsheet. Either a
// service-account credentials file or an API key (for public sheets) is
// required.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	APIKey          string
	Range           string

	// Endpoint overrides the API base URL.
	Endpoint string
}

// SheetsLoader reads tables from one spreadsheet through the Sheets v4 API.
type SheetsLoader struct {
	svc           *sheets.Service
	spreadsheetID string
	cellRange     string
}

// NewSheetsLoader authenticates with read-only scope and returns a loader
// bound to cfg.SpreadsheetID.
func NewSheetsLoader(ctx context.Context, cfg SheetsConfig) (*SheetsLoader, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		return nil, errors.New("either a credentials file or an API key is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return newSheetsLoader(svc, cfg.SpreadsheetID, cfg.Range), nil
}

func newSheetsLoader(svc *sheets.Service, spreadsheetID, cellRange string) *SheetsLoader {
	if cellRange == "" {
		cellRange = DefaultRange
	}
	return &SheetsLoader{svc: svc, spreadsheetID: spreadsheetID, cellRange: cellRange}
}

// LoadTable reads the configured range of the named sheet. The first row
// becomes the header.
func (l *SheetsLoader) LoadTable(ctx context.Context, table string) (*Table, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, a1Range(table, l.cellRange)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get values: %w", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		cells := make([]string, len(r))
		for j, c := range r {
			if c != nil {
				cells[j] = fmt.Sprint(c)
			}
		}
		rows[i] = cells
	}
	return splitTable(rows)
}

// a1Range quotes the sheet name so names containing spaces or
// punctuation stay valid A1 notation.
func a1Range(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}
