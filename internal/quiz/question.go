package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/jlptquiz/internal/dataset"
)

// Mode selects which kind of question is asked.
type Mode string

const (
	// ModeGrammar asks for the meaning of a grammar point.
	ModeGrammar Mode = "grammar"

	// ModeSentence asks for the translation of a grammar example sentence.
	ModeSentence Mode = "sentence"

	// ModeKanji asks for the meaning of a kanji character.
	ModeKanji Mode = "kanji"

	// ModeKanjiSentence asks for a free-text translation of a kanji
	// example sentence.
	ModeKanjiSentence Mode = "kanji_sentence"

	// ModeKanjiMixed picks ModeKanji or ModeKanjiSentence per question.
	ModeKanjiMixed Mode = "kanji_mixed"

	// ModeVocabulary asks for the meaning of a vocabulary word.
	ModeVocabulary Mode = "vocabulary"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeGrammar, ModeSentence, ModeKanjiMixed, ModeKanji, ModeKanjiSentence, ModeVocabulary}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown quiz mode %q", s)
}

// Kind returns the sheet a mode draws from.
func (m Mode) Kind() dataset.Kind {
	switch m {
	case ModeKanji, ModeKanjiSentence, ModeKanjiMixed:
		return dataset.KindKanji
	case ModeVocabulary:
		return dataset.KindVocabulary
	default:
		return dataset.KindGrammar
	}
}

// Label is the human-readable mode name.
func (m Mode) Label() string {
	switch m {
	case ModeGrammar:
		return "Grammar"
	case ModeSentence:
		return "Sentences"
	case ModeKanji:
		return "Kanji"
	case ModeKanjiSentence:
		return "Kanji sentences"
	case ModeKanjiMixed:
		return "Kanji (mixed)"
	case ModeVocabulary:
		return "Vocabulary"
	}
	return string(m)
}

// Question is a single quiz item ready for display.
type Question struct {
	// Mode is the concrete mode this question was built for. It is never
	// ModeKanjiMixed.
	Mode Mode `json:"mode"`

	// Key identifies the underlying item for knowledge labels: the grammar
	// term, kanji character or vocabulary word. Sentence questions use the
	// source sentence.
	Key string `json:"key"`

	// Prompt is the item shown to the learner.
	Prompt string `json:"prompt"`

	// Native is the grammar point written in Japanese.
	Native string `json:"native,omitempty"`

	// Example is the first line of the item's example sentence, if any.
	Example string `json:"example,omitempty"`

	Onyomi  string `json:"onyomi,omitempty"`
	Kunyomi string `json:"kunyomi,omitempty"`
	Reading string `json:"reading,omitempty"`

	// Text is the question asked, e.g. "What does the kanji 日 mean?".
	Text string `json:"question"`

	// Correct is the single correct answer.
	Correct string `json:"correct"`

	// Options holds four shuffled, distinct choices including Correct.
	// Empty for free-text questions.
	Options []string `json:"options,omitempty"`

	// FreeText is set when the learner types the answer instead of
	// choosing one.
	FreeText bool `json:"free_text"`
}

// Check reports whether answer is correct. Free-text questions use
// CheckAnswer. Multiple-choice answers must equal the correct option
// exactly after trimming. An answer that is not itself an option's text
// may be a letter A-D or a number 1-4 selecting one.
func (q *Question) Check(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	if q.FreeText {
		return CheckAnswer(answer, q.Correct)
	}
	if !q.hasOption(answer) {
		if opt, ok := q.optionAt(answer); ok {
			answer = opt
		}
	}
	return answer == strings.TrimSpace(q.Correct)
}

// hasOption reports whether answer is the text of one of the options.
// Option text wins over reading answer as a letter or number.
func (q *Question) hasOption(answer string) bool {
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == answer {
			return true
		}
	}
	return false
}

// optionAt resolves a letter or 1-based number to an option.
func (q *Question) optionAt(sel string) (string, bool) {
	idx := -1
	if len(sel) == 1 {
		if c := sel[0] | 0x20; c >= 'a' && c <= 'z' {
			idx = int(c - 'a')
		}
	}
	if n, err := strconv.Atoi(sel); err == nil {
		idx = n - 1
	}
	if idx < 0 || idx >= len(q.Options) {
		return "", false
	}
	return q.Options[idx], true
}

// OptionLetter returns the display letter for option i.
func OptionLetter(i int) string {
	return string(rune('A' + i))
}
