package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVLoader reads tables from "<dir>/<table>.csv". It serves offline use
// and fixtures; the file layout matches a sheet exported as CSV.
type CSVLoader struct {
	dir string
}

// NewCSVLoader returns a loader rooted at dir.
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{dir: dir}
}

func (l *CSVLoader) LoadTable(ctx context.Context, table string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(l.dir, table+".csv"))
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return splitTable(rows)
}
