package quiz

import (
	"strings"

	"github.com/abhisek/jlptquiz/internal/dataset"
)

// SentencePair is one example sentence with its translation.
type SentencePair struct {
	Source      string `json:"japanese"`
	Translation string `json:"english"`
}

// ParseSentences splits an example cell into pairs. Lines alternate
// source, translation. A pair is kept only when both trimmed lines are
// non-empty, and a dangling last line is dropped. Placeholder cells give
// no pairs.
func ParseSentences(cell string) []SentencePair {
	if dataset.IsPlaceholder(cell) {
		return nil
	}

	lines := strings.Split(cell, "\n")
	var pairs []SentencePair
	for i := 0; i+1 < len(lines); i += 2 {
		src := strings.TrimSpace(lines[i])
		dst := strings.TrimSpace(lines[i+1])
		if src != "" && dst != "" {
			pairs = append(pairs, SentencePair{Source: src, Translation: dst})
		}
	}
	return pairs
}

// firstLine returns the first line of an example cell, trimmed. When the
// first line is blank the whole trimmed cell is returned.
func firstLine(cell string) string {
	line, _, _ := strings.Cut(cell, "\n")
	if line = strings.TrimSpace(line); line != "" {
		return line
	}
	return strings.TrimSpace(cell)
}
