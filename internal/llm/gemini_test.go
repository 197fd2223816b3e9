package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kanji":   map[string]any{"type": "string", "description": "the character"},
			"strokes": map[string]any{"type": "integer"},
			"level":   map[string]any{"type": "string", "enum": []any{"N5", "N4", "N3"}},
			"readings": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"odd": map[string]any{"type": "null"},
		},
		"required": []string{"kanji", "strokes"},
	}

	s := geminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(s.Properties))
	}
	if s.Properties["kanji"].Description != "the character" {
		t.Errorf("description not carried over")
	}
	if s.Properties["strokes"].Type != genai.TypeInteger {
		t.Errorf("strokes type = %s", s.Properties["strokes"].Type)
	}
	if len(s.Properties["level"].Enum) != 3 {
		t.Errorf("expected 3 enum values, got %d", len(s.Properties["level"].Enum))
	}
	if s.Properties["readings"].Items.Type != genai.TypeString {
		t.Errorf("items type = %s", s.Properties["readings"].Items.Type)
	}
	if s.Properties["odd"].Type != genai.TypeString {
		t.Errorf("unknown types should fall back to STRING, got %s", s.Properties["odd"].Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("expected 2 required fields from []string, got %d", len(s.Required))
	}
}
