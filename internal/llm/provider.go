package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is JSON that passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Explanations are single-turn, so
	// this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// the response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, e.g. "answer-explanation". It is also
	// the key under which the compiled validator is cached.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when the request
	// carried a Schema, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// GenerateJSON runs req and decodes the response content into T.
func GenerateJSON[T any](ctx context.Context, p Provider, req Request) (T, *Response, error) {
	var out T
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return out, nil, err
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, resp, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode %T: %w", out, err),
		}
	}
	return out, resp, nil
}

// completion is what a vendor adapter extracts from its SDK response
// before the shared checks in settle run.
type completion struct {
	text      string
	truncated bool
	usage     Usage
	model     string
}

// settle validates a completion against the request and builds the
// Response. A structured answer cut off at MaxTokens is an error since
// the JSON cannot be complete.
func settle(req Request, c completion) (*Response, error) {
	content := json.RawMessage(c.text)
	if c.truncated && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	stop := "end"
	if c.truncated {
		stop = "max_tokens"
	}
	return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a vendor ID. Unknown names
// are used as IDs directly.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
