package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "quiz.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	ctx := context.Background()
	require.NoError(t, s.LabelRepo().SetLabel(ctx, dataset.KindKanji, "日", knowledge.Good))
	require.NoError(t, s.Close())

	// Reopening runs migration again and keeps the data.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	set, err := s.LabelRepo().ReadLabels(ctx, dataset.KindKanji)
	require.NoError(t, err)
	assert.Equal(t, knowledge.Good, set.Get("日"))
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("JLPTQUIZ_DB", filepath.Join(dir, "env", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "x.db"), p)

	t.Setenv("JLPTQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jlptquiz", "jlptquiz.db"), p)
}

func TestLabelRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.LabelRepo()
	ctx := context.Background()

	set, err := repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Empty(t, set)

	require.NoError(t, repo.SetLabel(ctx, dataset.KindGrammar, "〜ている", knowledge.Medium))
	require.NoError(t, repo.SetLabel(ctx, dataset.KindGrammar, "〜ている", knowledge.Good))
	require.NoError(t, repo.SetLabel(ctx, dataset.KindGrammar, "〜たい", knowledge.DontKnow))
	require.NoError(t, repo.SetLabel(ctx, dataset.KindKanji, "〜ている", knowledge.DontKnow))

	set, err = repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Equal(t, knowledge.Set{"〜ている": knowledge.Good, "〜たい": knowledge.DontKnow}, set)

	// Namespaces are independent.
	kanji, err := repo.ReadLabels(ctx, dataset.KindKanji)
	require.NoError(t, err)
	assert.Equal(t, knowledge.Set{"〜ている": knowledge.DontKnow}, kanji)

	// None removes the key.
	require.NoError(t, repo.SetLabel(ctx, dataset.KindGrammar, "〜たい", knowledge.None))
	set, err = repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Equal(t, knowledge.Set{"〜ている": knowledge.Good}, set)

	require.NoError(t, repo.WriteLabels(ctx, dataset.KindGrammar, knowledge.Set{
		"〜ている": knowledge.None,
		"〜ば":   knowledge.Medium,
		"〜なら":  knowledge.Good,
	}))
	set, err = repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Equal(t, knowledge.Set{"〜ば": knowledge.Medium, "〜なら": knowledge.Good}, set)

	require.NoError(t, repo.ResetLabels(ctx, dataset.KindGrammar))
	set, err = repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Empty(t, set)

	kanji, err = repo.ReadLabels(ctx, dataset.KindKanji)
	require.NoError(t, err)
	assert.Len(t, kanji, 1, "reset must only touch its own kind")
}

func TestLabelRepo_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	repo := s.LabelRepo()
	ctx := context.Background()

	assert.Error(t, repo.SetLabel(ctx, dataset.KindGrammar, "", knowledge.Good))
	assert.Error(t, repo.SetLabel(ctx, dataset.KindGrammar, "x", knowledge.Label(42)))
	assert.Error(t, repo.WriteLabels(ctx, dataset.KindGrammar, knowledge.Set{"ok": knowledge.Good, "": knowledge.Good}))

	set, err := repo.ReadLabels(ctx, dataset.KindGrammar)
	require.NoError(t, err)
	assert.Empty(t, set, "a rejected batch must write nothing")
}

func TestLabelRepo_ConcurrentWrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.LabelRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := repo.SetLabel(ctx, dataset.KindVocabulary, fmt.Sprintf("w%d", i), knowledge.Medium); err != nil {
				t.Errorf("SetLabel %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	set, err := repo.ReadLabels(ctx, dataset.KindVocabulary)
	require.NoError(t, err)
	assert.Len(t, set, 20)
}

func TestSequenceIsGlobal(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStart, Mode: "kanji"}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", Mode: "kanji", ItemKey: "日", CorrectAnswer: "sun", GivenAnswer: "sun", Correct: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "explain", Success: true}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", Mode: "kanji", ItemKey: "月", CorrectAnswer: "moon", GivenAnswer: "sun",
	}))

	answers, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, int64(4), answers[0].Sequence, "newest first")
	assert.Equal(t, int64(2), answers[1].Sequence)
	assert.False(t, answers[0].Correct)
	assert.True(t, answers[1].Correct)

	after, err := repo.QueryAnswerEvents(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "月", after[0].ItemKey)
}

func TestSessionSummariesAndAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, tc := range []struct {
		mode    string
		correct bool
	}{
		{"grammar", true}, {"grammar", false}, {"grammar", true}, {"kanji", false},
	} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s", Mode: tc.mode, ItemKey: fmt.Sprint(i), Correct: tc.correct,
		}))
	}
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: SessionStart, Mode: "grammar"}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "a", Action: SessionEnd, Mode: "grammar", QuestionsServed: 3, CorrectAnswers: 2, DurationSecs: 40,
	}))
	assert.Error(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: "pause"}))

	acc, err := repo.AccuracyByMode(ctx)
	require.NoError(t, err)
	require.Len(t, acc, 2)
	assert.Equal(t, ModeAccuracy{Mode: "grammar", Answered: 3, Correct: 2}, acc[0])
	assert.Equal(t, ModeAccuracy{Mode: "kanji", Answered: 1, Correct: 0}, acc[1])
	assert.InDelta(t, 0.667, acc[0].Accuracy(), 0.001)
	assert.Zero(t, ModeAccuracy{}.Accuracy())

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "a", sums[0].SessionID)
	assert.Equal(t, 2, sums[0].CorrectAnswers)
	assert.False(t, sums[0].Timestamp.IsZero())
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "explain", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"q":1}`},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "explain", InputTokens: 120, OutputTokens: 30, LatencyMs: 400, Success: false, ErrorMessage: "boom"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "gpt-4o-mini", list[0].Model)

	first, err := repo.GetLLMEvent(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"q":1}`, first.RequestBody)
	assert.True(t, first.Success)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "explain", Calls: 2, InputTokens: 220, OutputTokens: 80, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-haiku-4-5-20251001", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
}
