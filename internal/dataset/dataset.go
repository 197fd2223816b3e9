package dataset

import (
	"fmt"
	"strings"
)

// Kind identifies a study-material sheet.
type Kind string

const (
	KindGrammar    Kind = "grammar"
	KindKanji      Kind = "kanji"
	KindVocabulary Kind = "vocabulary"
)

// AllKinds lists every kind in display order.
var AllKinds = []Kind{KindGrammar, KindKanji, KindVocabulary}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Row maps a column header to its cell value.
type Row map[string]string

// Dataset is an immutable, in-memory snapshot of one sheet. Column
// resolution happens once at construction, so the resolved header for a
// field never changes during the dataset's lifetime. A Dataset is safe for
// concurrent reads.
type Dataset struct {
	kind     Kind
	columns  []string
	rows     []Row
	resolved map[Field]string
}

// New builds a Dataset from a header and its records. Records shorter
// than the header are padded with empty cells; extra cells are dropped.
// Rows in which every cell is blank are skipped. When a header repeats,
// only its first column is read.
func New(kind Kind, header []string, records [][]string) *Dataset {
	cols := make([]string, len(header))
	dup := make([]bool, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
		dup[i] = seen[cols[i]]
		seen[cols[i]] = true
	}

	d := &Dataset{
		kind:     kind,
		columns:  cols,
		resolved: make(map[Field]string),
	}

	for _, rec := range records {
		row := make(Row, len(cols))
		blank := true
		for i, c := range cols {
			if c == "" || dup[i] {
				continue
			}
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row[c] = v
		}
		if !blank {
			d.rows = append(d.rows, row)
		}
	}

	for f := range aliases {
		if c, ok := Resolve(cols, f); ok {
			d.resolved[f] = c
		}
	}
	return d
}

// Kind returns the sheet kind.
func (d *Dataset) Kind() Kind { return d.kind }

// Columns returns a copy of the header.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Row returns a copy of row i.
func (d *Dataset) Row(i int) Row {
	out := make(Row, len(d.rows[i]))
	for k, v := range d.rows[i] {
		out[k] = v
	}
	return out
}

// Column returns the header resolved for f at construction.
func (d *Dataset) Column(f Field) (string, bool) {
	c, ok := d.resolved[f]
	return c, ok
}

// Candidates returns every header matching an alias of f, in alias
// priority order. Column returns only the first of them.
func (d *Dataset) Candidates(f Field) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range aliases[f] {
		for _, c := range d.columns {
			if normalizeHeader(c) == normalizeHeader(a) && !seen[c] {
				seen[c] = true
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Cell returns the raw cell of row i in column col.
func (d *Dataset) Cell(i int, col string) string {
	return d.rows[i][col]
}

// Value returns the cell of row i for field f. The boolean is false when
// the dataset has no column for f.
func (d *Dataset) Value(i int, f Field) (string, bool) {
	c, ok := d.resolved[f]
	if !ok {
		return "", false
	}
	return d.rows[i][c], true
}

// ValueOr returns the trimmed cell of row i for field f, or def when the
// column is missing or the cell is a placeholder.
func (d *Dataset) ValueOr(i int, f Field, def string) string {
	v, ok := d.Value(i, f)
	if !ok || IsPlaceholder(v) {
		return def
	}
	return strings.TrimSpace(v)
}

// Library holds the datasets loaded at startup, keyed by kind. Missing
// kinds are nil.
type Library struct {
	sets map[Kind]*Dataset
}

// NewLibrary builds a Library from the given datasets.
func NewLibrary(sets ...*Dataset) *Library {
	l := &Library{sets: make(map[Kind]*Dataset, len(sets))}
	for _, d := range sets {
		if d != nil {
			l.sets[d.kind] = d
		}
	}
	return l
}

// Get returns the dataset for kind, or nil when it was not loaded.
func (l *Library) Get(kind Kind) *Dataset {
	if l == nil {
		return nil
	}
	return l.sets[kind]
}

// Loaded reports whether the grammar sheet, which every mode but kanji
// depends on, is present and non-empty.
func (l *Library) Loaded() bool {
	return l.Get(KindGrammar).Len() > 0
}

// Counts returns the row count per loaded kind.
func (l *Library) Counts() map[Kind]int {
	out := make(map[Kind]int, len(l.sets))
	for k, d := range l.sets {
		out[k] = d.Len()
	}
	return out
}
