package explain

import "github.com/abhisek/jlptquiz/internal/llm"

// Schema is the structured output requested for an answer explanation.
var Schema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Why the learner's answer was wrong and how to remember the right one",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "2-4 sentences on what the item means and why the given answer does not fit",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One short memory aid or usage hint (under 20 words)",
			},
		},
		"required":             []any{"explanation", "tip"},
		"additionalProperties": false,
	},
}
