package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

const (
	meaningText     = "What does this mean?"
	translationText = "Translate this sentence to English:"
)

// Engine builds questions from a loaded Library. The library is treated as
// read-only; the engine only serializes access to its random source, so
// one Engine can serve concurrent callers.
type Engine struct {
	lib *dataset.Library

	mu  sync.Mutex
	rng *rand.Rand

	// sentences caches the parsed example pairs per kind.
	sentences map[dataset.Kind][]SentencePair
}

// NewEngine returns an Engine over lib. A nil rng is replaced by a
// randomly seeded one.
func NewEngine(lib *dataset.Library, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e := &Engine{
		lib:       lib,
		rng:       rng,
		sentences: make(map[dataset.Kind][]SentencePair),
	}
	e.sentences[dataset.KindGrammar] = collectSentences(lib.Get(dataset.KindGrammar), dataset.FieldGrammarExample)
	e.sentences[dataset.KindKanji] = collectSentences(lib.Get(dataset.KindKanji), dataset.FieldKanjiExample)
	return e
}

// Library returns the library the engine draws from.
func (e *Engine) Library() *dataset.Library { return e.lib }

// Available reports whether mode can produce at least one question when
// nothing is excluded.
func (e *Engine) Available(mode Mode) bool {
	items, err := e.items(mode, nil)
	return err == nil && len(items) > 0
}

// Question samples one question for mode, skipping items labeled Good.
func (e *Engine) Question(mode Mode, labels knowledge.Set) (*Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode == ModeKanjiMixed {
		mode = ModeKanji
		if e.rng.IntN(2) == 1 {
			if items, err := e.items(ModeKanjiSentence, labels); err == nil && len(items) > 0 {
				mode = ModeKanjiSentence
			}
		}
	}

	items, err := e.items(mode, labels)
	if err != nil {
		return nil, err
	}
	it, err := SampleOne(e.rng, items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mode, err)
	}
	q := e.build(it)
	return &q, nil
}

// Questions samples up to n distinct questions for mode. Fewer are
// returned when the filtered pool is smaller than n. In ModeKanjiMixed,
// classic and sentence items share one pool.
func (e *Engine) Questions(mode Mode, labels knowledge.Set, n int) ([]Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var items []item
	if mode == ModeKanjiMixed {
		for _, m := range []Mode{ModeKanji, ModeKanjiSentence} {
			if more, err := e.items(m, labels); err == nil {
				items = append(items, more...)
			}
		}
	} else {
		var err error
		if items, err = e.items(mode, labels); err != nil {
			return nil, err
		}
	}

	picked, err := SampleSet(e.rng, items, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mode, err)
	}
	out := make([]Question, len(picked))
	for i, it := range picked {
		out[i] = e.build(it)
	}
	return out, nil
}

// item is one sampleable unit: a sheet row, or a sentence pair for the
// sentence modes.
type item struct {
	mode Mode
	row  int
	pair SentencePair
}

func (e *Engine) items(mode Mode, labels knowledge.Set) ([]item, error) {
	ds := e.lib.Get(mode.Kind())
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%s sheet not loaded: %w", mode.Kind(), ErrDataUnavailable)
	}

	var rows []int
	var err error
	switch mode {
	case ModeGrammar:
		rows, err = FilterPool(ds, dataset.FieldGrammarTerm, dataset.FieldGrammarMeaning, labels)
	case ModeKanji:
		rows, err = FilterPool(ds, dataset.FieldCharacter, dataset.FieldMeaning, labels)
	case ModeVocabulary:
		rows, err = FilterPool(ds, dataset.FieldWord, dataset.FieldMeaning, labels)
	case ModeSentence, ModeKanjiSentence:
		return e.sentenceItems(mode, labels)
	default:
		return nil, fmt.Errorf("mode %q: %w", mode, ErrDataUnavailable)
	}
	if err != nil {
		return nil, err
	}

	out := make([]item, len(rows))
	for i, r := range rows {
		out[i] = item{mode: mode, row: r}
	}
	return out, nil
}

func (e *Engine) sentenceItems(mode Mode, labels knowledge.Set) ([]item, error) {
	field := dataset.FieldGrammarExample
	if mode == ModeKanjiSentence {
		field = dataset.FieldKanjiExample
	}
	if _, ok := e.lib.Get(mode.Kind()).Column(field); !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrDataUnavailable, ErrColumnNotFound, field)
	}

	var out []item
	for _, p := range e.sentences[mode.Kind()] {
		if labels.Known(p.Source) {
			continue
		}
		out = append(out, item{mode: mode, pair: p})
	}
	return out, nil
}

func (e *Engine) build(it item) Question {
	ds := e.lib.Get(it.mode.Kind())

	switch it.mode {
	case ModeSentence, ModeKanjiSentence:
		q := Question{
			Mode:    it.mode,
			Key:     it.pair.Source,
			Prompt:  it.pair.Source,
			Text:    meaningText,
			Correct: it.pair.Translation,
		}
		if it.mode == ModeKanjiSentence {
			q.Text = translationText
			q.FreeText = true
			return q
		}
		var candidates []string
		for _, p := range e.sentences[ds.Kind()] {
			candidates = append(candidates, p.Translation)
		}
		q.Options = MakeOptions(e.rng, q.Correct,
			GenerateDistractors(e.rng, q.Correct, candidates, SentenceFallback))
		return q

	case ModeGrammar:
		q := Question{
			Mode:    it.mode,
			Key:     rowKey(ds, it.row, dataset.FieldGrammarTerm, dataset.FieldGrammarMeaning),
			Prompt:  ds.ValueOr(it.row, dataset.FieldGrammarTerm, "N/A"),
			Native:  ds.ValueOr(it.row, dataset.FieldGrammarNative, "N/A"),
			Example: exampleLine(ds, it.row, dataset.FieldGrammarExample),
			Text:    meaningText,
			Correct: ds.ValueOr(it.row, dataset.FieldGrammarMeaning, ""),
		}
		q.Options = MakeOptions(e.rng, q.Correct,
			GenerateDistractors(e.rng, q.Correct, columnValues(ds, dataset.FieldGrammarMeaning), GrammarFallback))
		return q

	case ModeKanji:
		kanji := ds.ValueOr(it.row, dataset.FieldCharacter, "N/A")
		q := Question{
			Mode:    it.mode,
			Key:     rowKey(ds, it.row, dataset.FieldCharacter, dataset.FieldMeaning),
			Prompt:  kanji,
			Onyomi:  ds.ValueOr(it.row, dataset.FieldOnReading, ""),
			Kunyomi: ds.ValueOr(it.row, dataset.FieldKunReading, ""),
			Text:    fmt.Sprintf("What does the kanji %s mean?", kanji),
			Correct: ds.ValueOr(it.row, dataset.FieldMeaning, ""),
		}
		q.Options = MakeOptions(e.rng, q.Correct,
			GenerateDistractors(e.rng, q.Correct, columnValues(ds, dataset.FieldMeaning), MeaningFallback))
		return q

	default: // ModeVocabulary
		q := Question{
			Mode:    it.mode,
			Key:     rowKey(ds, it.row, dataset.FieldWord, dataset.FieldMeaning),
			Prompt:  ds.ValueOr(it.row, dataset.FieldWord, "N/A"),
			Reading: ds.ValueOr(it.row, dataset.FieldReading, ""),
			Example: exampleLine(ds, it.row, dataset.FieldKanjiExample),
			Text:    meaningText,
			Correct: ds.ValueOr(it.row, dataset.FieldMeaning, ""),
		}
		q.Options = MakeOptions(e.rng, q.Correct,
			GenerateDistractors(e.rng, q.Correct, columnValues(ds, dataset.FieldMeaning), MeaningFallback))
		return q
	}
}

// collectSentences parses the example column of every row.
func collectSentences(ds *dataset.Dataset, field dataset.Field) []SentencePair {
	if ds.Len() == 0 {
		return nil
	}
	col, ok := ds.Column(field)
	if !ok {
		return nil
	}
	var out []SentencePair
	for i := 0; i < ds.Len(); i++ {
		out = append(out, ParseSentences(ds.Cell(i, col))...)
	}
	return out
}

// exampleLine returns the first line of the first usable example cell of
// row i. Every column matching the field's aliases is tried in priority
// order. A missing column yields an empty example.
func exampleLine(ds *dataset.Dataset, i int, field dataset.Field) string {
	for _, col := range ds.Candidates(field) {
		if cell := ds.Cell(i, col); !dataset.IsPlaceholder(cell) {
			return firstLine(cell)
		}
	}
	return ""
}

// columnValues returns every trimmed, non-placeholder value of field.
func columnValues(ds *dataset.Dataset, field dataset.Field) []string {
	var out []string
	for i := 0; i < ds.Len(); i++ {
		if v := ds.ValueOr(i, field, ""); v != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
