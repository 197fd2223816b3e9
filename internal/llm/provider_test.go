package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jlptquiz/internal/store"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{System: "sys", Messages: UserMessage("first")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)

	_, err = mock.Generate(ctx, Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))

	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "empty queue")

	mock.Fallback = json.RawMessage(`{"explanation":"x","tip":"y"}`)
	_, err = mock.Generate(ctx, Request{Schema: testSchema()})
	assert.NoError(t, err)

	assert.Equal(t, 4, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestGenerateJSON(t *testing.T) {
	type card struct {
		Explanation string `json:"explanation"`
		Tip         string `json:"tip"`
	}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"explanation":"e","tip":"t"}`)},
		MockResponse{Content: json.RawMessage(`[1,2]`)},
	)

	got, resp, err := GenerateJSON[card](context.Background(), mock, Request{})
	require.NoError(t, err)
	assert.Equal(t, card{"e", "t"}, got)
	assert.NotNil(t, resp)

	_, _, err = GenerateJSON[card](context.Background(), mock, Request{})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeExplain, PurposeFrom(WithPurpose(ctx, PurposeExplain)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"anthropic without key", Config{Provider: "anthropic", Retry: RetryConfig{MaxAttempts: 1}}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}, Retry: RetryConfig{MaxAttempts: 1}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk"}, Retry: RetryConfig{MaxAttempts: 3}}, false},
		{"mock needs no key", Config{Provider: "mock", Retry: RetryConfig{MaxAttempts: 1}}, false},
		{"zero attempts", Config{Provider: "mock"}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Discover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	assert.False(t, cfg.Discover())

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg = DefaultConfig()
	require.True(t, cfg.Discover())
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)

	t.Setenv("GEMINI_API_KEY", "g")
	cfg = DefaultConfig()
	require.True(t, cfg.Discover())
	assert.Equal(t, "gemini", cfg.Provider, "gemini is probed first")

	cfg = DefaultConfig()
	cfg.Provider = "mock"
	require.True(t, cfg.Discover())
	assert.Equal(t, "mock", cfg.Provider, "explicit provider wins")
}

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"explanation":"e","tip":"t"}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), PurposeExplain)

	_, err := p.Generate(ctx, Request{System: "be brief", Messages: UserMessage("why 日?"), Schema: testSchema()})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{Messages: UserMessage("again")})
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")

	assert.True(t, ok.Success)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, PurposeExplain, ok.Purpose)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nbe brief")
	assert.Contains(t, ok.RequestBody, "[schema: test-explanation]")
	assert.JSONEq(t, `{"explanation":"e","tip":"t"}`, ok.ResponseBody)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(context.Background(), Config{Provider: "bogus"}, nil)
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), Config{Provider: "openai"}, nil)
	assert.Error(t, err, "missing key")

	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, openEventRepo(t))
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
	_, isRetry := p.(*RetryProvider)
	assert.True(t, isRetry, "outermost decorator is retry")
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-haiku")
	require.NotNil(t, c, "friendly names resolve")
	assert.InDelta(t, 1.0+5.0, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.NotNil(t, LookupCost("gpt-4o-mini"))
	assert.Nil(t, LookupCost("no-such-model"))
}
