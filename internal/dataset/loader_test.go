package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type stubLoader struct {
	tables map[string]*Table
	errs   map[string]error
}

func (s *stubLoader) LoadTable(_ context.Context, table string) (*Table, error) {
	if err := s.errs[table]; err != nil {
		return nil, err
	}
	t, ok := s.tables[table]
	if !ok {
		return nil, errors.New("no such table")
	}
	return t, nil
}

func TestLoadLibrary_OptionalSheetFailureIsTolerated(t *testing.T) {
	loader := &stubLoader{
		tables: map[string]*Table{
			"Grammar": {Header: []string{"Grammar Lesson", "Grammar Meaning"}, Records: [][]string{{"〜ながら", "while"}}},
		},
		errs: map[string]error{"Kanji": errors.New("boom")},
	}

	lib, err := LoadLibrary(context.Background(), loader, Sheets{Grammar: "Grammar", Kanji: "Kanji"}, time.Second)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if lib.Get(KindGrammar).Len() != 1 {
		t.Fatalf("grammar rows = %d, want 1", lib.Get(KindGrammar).Len())
	}
	if lib.Get(KindKanji) != nil {
		t.Fatal("expected kanji to be absent")
	}
}

func TestLoadLibrary_GrammarFailureIsFatal(t *testing.T) {
	loader := &stubLoader{errs: map[string]error{"Grammar": errors.New("unreachable")}}

	_, err := LoadLibrary(context.Background(), loader, Sheets{Grammar: "Grammar"}, time.Second)
	if err == nil {
		t.Fatal("expected error when grammar sheet fails")
	}
}

func TestLoadLibrary_EmptyGrammarIsFatal(t *testing.T) {
	loader := &stubLoader{tables: map[string]*Table{
		"Grammar": {Header: []string{"Grammar Lesson"}},
	}}

	_, err := LoadLibrary(context.Background(), loader, Sheets{Grammar: "Grammar"}, 0)
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("err = %v, want ErrEmptyTable", err)
	}
}

func TestCSVLoader(t *testing.T) {
	dir := t.TempDir()
	content := "\ufeffKanji,Meaning,Example Sentence\n" +
		"日,sun,\"日曜日です。\nIt is Sunday.\"\n" +
		"月,moon\n"
	if err := os.WriteFile(filepath.Join(dir, "Kanji.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := NewCSVLoader(dir).LoadTable(context.Background(), "Kanji")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tbl.Header[0] != "Kanji" {
		t.Errorf("BOM not stripped: %q", tbl.Header[0])
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(tbl.Records))
	}
	if !strings.Contains(tbl.Records[0][2], "\n") {
		t.Errorf("multi-line cell lost its line break: %q", tbl.Records[0][2])
	}

	if _, err := NewCSVLoader(dir).LoadTable(context.Background(), "Missing"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSheetsLoader_LoadTable(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"range":          "Kanji!A1:Z1000",
			"majorDimension": "ROWS",
			"values": [][]any{
				{"Kanji", "Meaning", "Onyomi"},
				{"日", "sun"},
				{"月", "moon", "ゲツ"},
			},
		})
	}))
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tbl, err := newSheetsLoader(svc, "sheet-id", "").LoadTable(context.Background(), "Kanji")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if !strings.Contains(gotPath, "sheet-id") {
		t.Errorf("request path %q does not name the spreadsheet", gotPath)
	}
	if len(tbl.Header) != 3 || len(tbl.Records) != 2 {
		t.Fatalf("table = %+v", tbl)
	}

	ds := New(KindKanji, tbl.Header, tbl.Records)
	if v := ds.ValueOr(0, FieldOnReading, "none"); v != "none" {
		t.Errorf("short row not padded, got %q", v)
	}
}

func TestA1Range(t *testing.T) {
	if got := a1Range("My Sheet", DefaultRange); got != "'My Sheet'!A1:Z1000" {
		t.Errorf("a1Range = %q", got)
	}
	if got := a1Range("It's", "A1:B2"); got != "'It''s'!A1:B2" {
		t.Errorf("a1Range = %q", got)
	}
}
