package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyTable is returned when a table has no header row.
var ErrEmptyTable = errors.New("table has no header row")

// Table is a raw sheet: the first row as header plus the remaining rows.
type Table struct {
	Header  []string
	Records [][]string
}

// Loader fetches one named table from a tabular data source. The source
// (spreadsheet id, directory) is bound when the loader is constructed.
type Loader interface {
	LoadTable(ctx context.Context, table string) (*Table, error)
}

// Sheets names the table backing each kind. An empty name skips the kind.
type Sheets struct {
	Grammar    string
	Kanji      string
	Vocabulary string
}

func (s Sheets) names() map[Kind]string {
	return map[Kind]string{
		KindGrammar:    s.Grammar,
		KindKanji:      s.Kanji,
		KindVocabulary: s.Vocabulary,
	}
}

// LoadLibrary loads every configured sheet concurrently under a single
// timeout. The grammar sheet is required: its failure fails the load.
// Kanji and vocabulary sheets are optional and only logged on failure.
func LoadLibrary(ctx context.Context, loader Loader, sheets Sheets, timeout time.Duration) (*Library, error) {
	if sheets.Grammar == "" {
		return nil, errors.New("grammar sheet name is required")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	names := sheets.names()
	results := make(map[Kind]*Dataset, len(names))
	resultCh := make(chan *Dataset, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for kind, name := range names {
		if name == "" {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			tbl, err := loader.LoadTable(gctx, name)
			if err != nil {
				if kind == KindGrammar {
					return fmt.Errorf("load %s sheet %q: %w", kind, name, err)
				}
				slog.Warn("optional sheet not loaded", "kind", kind, "sheet", name, "error", err)
				return nil
			}
			ds := New(kind, tbl.Header, tbl.Records)
			slog.Info("sheet loaded", "kind", kind, "sheet", name, "rows", ds.Len(),
				"duration", time.Since(start))
			resultCh <- ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(resultCh)

	for ds := range resultCh {
		results[ds.Kind()] = ds
	}
	if results[KindGrammar].Len() == 0 {
		return nil, fmt.Errorf("grammar sheet %q: %w", sheets.Grammar, ErrEmptyTable)
	}

	sets := make([]*Dataset, 0, len(results))
	for _, ds := range results {
		sets = append(sets, ds)
	}
	return NewLibrary(sets...), nil
}

// splitTable turns raw rows into a Table, treating the first row as the
// header.
func splitTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyTable
	}
	return &Table{Header: rows[0], Records: rows[1:]}, nil
}
