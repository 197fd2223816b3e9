package quiz

import "strings"

// stopWords carry no meaning of their own and are ignored when comparing
// translations.
var stopWords = toSet(
	"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "can", "of", "in", "on", "at", "to", "for",
	"with", "by", "from", "up", "down", "out", "off", "over", "under",
	"and", "or", "but", "so", "because", "if", "then", "else", "when",
	"where", "why", "how", "what", "which", "who", "whom", "whose",
)

// CheckAnswer is a loose free-text comparison for translations. It
// accepts an exact case-insensitive match, or a user answer containing at
// least half of the correct answer's key words. When the correct answer
// is made only of stop words, substring containment either way is
// accepted. This is a heuristic, not semantic similarity.
func CheckAnswer(user, correct string) bool {
	u := strings.ToLower(strings.TrimSpace(user))
	c := strings.ToLower(strings.TrimSpace(correct))
	if u == "" || c == "" {
		return false
	}
	if u == c {
		return true
	}

	want := keyWords(c)
	if len(want) > 0 {
		got := keyWords(u)
		match := 0
		for w := range want {
			if got[w] {
				match++
			}
		}
		return float64(match)/float64(len(want)) >= 0.5
	}

	return strings.Contains(c, u) || strings.Contains(u, c)
}

func keyWords(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if !stopWords[w] {
			out[w] = true
		}
	}
	return out
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
