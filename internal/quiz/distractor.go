package quiz

import (
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/jlptquiz/internal/dataset"
)

// distractorCount is the number of wrong options per question.
const distractorCount = 3

// Generic phrases used when a sheet cannot supply enough real
// alternatives.
var (
	SentenceFallback = []string{"I don't know", "It's difficult", "Please help me", "I understand"}
	GrammarFallback  = []string{"to do something", "because of", "in order to", "while doing"}
	MeaningFallback  = []string{"I don't know", "It's difficult", "Please help me", "That's correct"}
)

// GenerateDistractors returns exactly three wrong answers for correct.
// Real candidates are preferred: placeholders, case-insensitive
// duplicates and the correct answer itself are dropped, and three are
// drawn at random when available. Otherwise the fallback pool is shuffled
// once and consumed in order. Repeating a phrase is the last resort and is
// logged as a data-quality warning.
func GenerateDistractors(rng *rand.Rand, correct string, candidates, fallback []string) []string {
	seen := map[string]bool{fold(correct): true}

	var eligible []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if dataset.IsPlaceholder(c) || seen[fold(c)] {
			continue
		}
		seen[fold(c)] = true
		eligible = append(eligible, c)
	}

	if len(eligible) >= distractorCount {
		out, _ := SampleSet(rng, eligible, distractorCount)
		return out
	}

	out := eligible
	shuffled := append([]string(nil), fallback...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for _, f := range shuffled {
		if len(out) == distractorCount {
			break
		}
		if dataset.IsPlaceholder(f) || seen[fold(f)] {
			continue
		}
		seen[fold(f)] = true
		out = append(out, f)
	}

	if len(out) < distractorCount {
		slog.Warn("distractor pool exhausted, repeating options",
			"correct", correct, "candidates", len(eligible), "fallback", len(fallback))
		filler := append([]string(nil), out...)
		if len(filler) == 0 {
			for _, f := range MeaningFallback {
				if fold(f) != fold(correct) {
					filler = append(filler, f)
				}
			}
		}
		for i := 0; len(out) < distractorCount; i++ {
			out = append(out, filler[i%len(filler)])
		}
	}
	return out
}

// MakeOptions combines the correct answer with its distractors and
// shuffles them. Case-insensitive duplicates are removed first, so the
// correct answer appears exactly once.
func MakeOptions(rng *rand.Rand, correct string, distractors []string) []string {
	correct = strings.TrimSpace(correct)
	seen := map[string]bool{fold(correct): true}
	opts := []string{correct}
	for _, d := range distractors {
		d = strings.TrimSpace(d)
		if seen[fold(d)] {
			continue
		}
		seen[fold(d)] = true
		opts = append(opts, d)
	}
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
