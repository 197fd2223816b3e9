package knowledge

import (
	"fmt"
	"strings"
)

// Label is the learner's self-assessed mastery of one item. The zero
// value None means no label has been recorded and is never stored.
type Label int

const (
	None Label = iota
	DontKnow
	Medium
	Good
)

var labelNames = [...]string{
	None:     "none",
	DontKnow: "dont_know",
	Medium:   "medium",
	Good:     "good",
}

// Labels lists the storable labels, weakest first.
var Labels = []Label{DontKnow, Medium, Good}

func (l Label) String() string {
	if l < None || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// Valid reports whether l is one of the storable variants.
func (l Label) Valid() bool {
	return l == DontKnow || l == Medium || l == Good
}

// ParseLabel parses the text form of a label. "none" and the empty string
// parse to None.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "dont_know", "dontknow", "don't know":
		return DontKnow, nil
	case "medium":
		return Medium, nil
	case "good":
		return Good, nil
	}
	return None, fmt.Errorf("unknown knowledge label %q", s)
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(b []byte) error {
	parsed, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Set maps item keys to labels for one kind.
type Set map[string]Label

// Get returns the label for key, or None.
func (s Set) Get(key string) Label {
	if s == nil {
		return None
	}
	return s[key]
}

// Known reports whether key is labeled Good and should leave the active
// question pool.
func (s Set) Known(key string) bool {
	return s.Get(key) == Good
}

// Counts tallies labels by variant.
func (s Set) Counts() map[Label]int {
	out := make(map[Label]int, len(Labels))
	for _, l := range s {
		out[l]++
	}
	return out
}
