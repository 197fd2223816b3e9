package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

const systemPrompt = `You are a concise Japanese tutor helping an adult learner prepare for the JLPT. Answer in English. Quote Japanese in its original script and add a kana reading for any kanji you mention.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s\n", in.Mode.Label())
	fmt.Fprintf(&b, "Item: %s\n", in.Prompt)
	if in.Example != "" {
		fmt.Fprintf(&b, "Example: %s\n", in.Example)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", in.Correct)
	if strings.TrimSpace(in.Given) == "" {
		b.WriteString("Learner's answer: (none)\n")
	} else {
		fmt.Fprintf(&b, "Learner's answer: %s\n", in.Given)
	}

	b.WriteString("\nInstructions:\n")
	switch in.Mode {
	case quiz.ModeSentence, quiz.ModeKanjiSentence:
		b.WriteString("Break the sentence into its parts and show how they produce the correct translation.\n")
	case quiz.ModeGrammar:
		b.WriteString("Explain the grammar point, how it attaches to words, and the nuance that separates it from the learner's choice.\n")
	default:
		b.WriteString("Explain the meaning and a common word that uses it. Point out any look-alike that may have caused the mistake.\n")
	}
	b.WriteString("Keep it short. Plain text only, no markdown.")

	return b.String()
}
