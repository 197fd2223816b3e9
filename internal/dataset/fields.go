package dataset

import "strings"

// Field is a canonical column concept. Sheets written by different
// authors name the same concept differently, so each Field carries an
// ordered list of accepted header aliases.
type Field int

const (
	FieldGrammarTerm Field = iota
	FieldGrammarNative
	FieldGrammarMeaning
	FieldGrammarExample
	FieldMeaning
	FieldKanjiExample
	FieldCharacter
	FieldOnReading
	FieldKunReading
	FieldWord
	FieldReading
)

var fieldNames = map[Field]string{
	FieldGrammarTerm:    "grammar_term",
	FieldGrammarNative:  "grammar_native",
	FieldGrammarMeaning: "grammar_meaning",
	FieldGrammarExample: "grammar_example",
	FieldMeaning:        "meaning",
	FieldKanjiExample:   "kanji_example",
	FieldCharacter:      "character",
	FieldOnReading:      "on_reading",
	FieldKunReading:     "kun_reading",
	FieldWord:           "word",
	FieldReading:        "reading",
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// aliases lists accepted headers per field. Order is priority: the first
// alias present in a sheet wins. "Example Senstence" is a real header
// spelling found in the grammar sheet.
var aliases = map[Field][]string{
	FieldGrammarTerm:    {"Grammar Lesson", "Grammar", "文法"},
	FieldGrammarNative:  {"文法レッスン", "Japanese"},
	FieldGrammarMeaning: {"Grammar Meaning", "Meaning", "意味"},
	FieldGrammarExample: {"Example Senstence", "Example Sentence", "Example", "Examples", "Sentence", "Sentences"},
	FieldMeaning:        {"Meaning", "English", "Translation", "意味", "Definition", "Kanji Meaning"},
	FieldKanjiExample:   {"Example Sentence", "Example", "Sentence", "Sentences", "例文", "Example Sentences"},
	FieldCharacter:      {"Kanji", "漢字", "Character", "字"},
	FieldOnReading:      {"Onyomi", "音読み", "On Reading", "On"},
	FieldKunReading:     {"Kunyomi", "訓読み", "Kun Reading", "Kun"},
	FieldWord:           {"Word", "Vocabulary", "Vocab", "単語", "語彙"},
	FieldReading:        {"Reading", "読み", "Kana", "Furigana", "ひらがな"},
}

// Aliases returns a copy of the accepted headers for f in priority order.
func Aliases(f Field) []string {
	return append([]string(nil), aliases[f]...)
}

// Resolve returns the header in columns matching the highest-priority
// alias of f. Matching ignores case and surrounding whitespace. The
// returned name is the header exactly as it appears in columns.
func Resolve(columns []string, f Field) (string, bool) {
	index := make(map[string]string, len(columns))
	for _, c := range columns {
		k := normalizeHeader(c)
		if _, dup := index[k]; !dup {
			index[k] = c
		}
	}
	for _, a := range aliases[f] {
		if c, ok := index[normalizeHeader(a)]; ok {
			return c, true
		}
	}
	return "", false
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsPlaceholder reports whether a cell carries no usable value: empty,
// whitespace only, or one of the "nan" / "n/a" markers spreadsheets
// export for missing data.
func IsPlaceholder(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "n/a":
		return true
	}
	return false
}
