package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestScoreAccuracy(t *testing.T) {
	if (Score{}).Accuracy() != 0 {
		t.Fatal("no answers is zero accuracy")
	}
	if got := (Score{Correct: 3, Answered: 4, Total: 10}).Accuracy(); got != 0.75 {
		t.Fatalf("accuracy = %v", got)
	}
}

func TestSizeChecks(t *testing.T) {
	if !TooSmall(79, 40) || !TooSmall(120, 23) || TooSmall(80, 24) {
		t.Fatal("TooSmall thresholds")
	}
	if !Compact(90, 30) || !Compact(120, 20) || Compact(120, 30) {
		t.Fatal("Compact thresholds")
	}
}

func TestHeader(t *testing.T) {
	h := Header("Kanji", &Score{Correct: 2, Answered: 3, Total: 10}, 100)
	for _, want := range []string{"JLPT Quiz", "Kanji", "✓ 2/3", "Q 4/10", "67%"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(Header("Home", nil, 100), "✓") {
		t.Error("nil score must leave the right side empty")
	}
	last := Header("x", &Score{Correct: 10, Answered: 10, Total: 10}, 100)
	if !strings.Contains(last, "Q 10/10") {
		t.Error("question counter is capped at total")
	}
}

func TestFrame(t *testing.T) {
	header := Header("Home", nil, 90)
	footer := Footer([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}, 90)
	if !strings.Contains(footer, "Enter") || !strings.Contains(footer, "Back") {
		t.Fatalf("footer = %q", footer)
	}

	frame := Frame(header, "body", footer, 90, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Fatalf("frame height = %d, want 30", got)
	}
	if BodyHeight(header, footer, 2) != 0 {
		t.Fatal("body height never goes negative")
	}
}
