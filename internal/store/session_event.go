package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.Action != SessionStart && data.Action != SessionEnd {
		return fmt.Errorf("unknown session action %q", data.Action)
	}
	return r.appendEvent(ctx, tableSessionEvents,
		[]string{"session_id", "action", "mode", "questions_served", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Mode, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, tableAnswerEvents,
		[]string{"session_id", "mode", "item_key", "prompt", "correct_answer", "given_answer", "correct", "time_ms"},
		[]any{data.SessionID, data.Mode, data.ItemKey, data.Prompt, data.CorrectAnswer, data.GivenAnswer, data.Correct, data.TimeMs},
	)
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "mode", "item_key", "prompt",
			"correct_answer", "given_answer", "correct", "time_ms").
		From(entsql.Table(tableAnswerEvents))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var e AnswerEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Mode, &e.ItemKey,
			&e.Prompt, &e.CorrectAnswer, &e.GivenAnswer, &e.Correct, &e.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "timestamp", "mode", "questions_served", "correct_answers", "duration_secs").
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.EQ("action", SessionEnd))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummaryRecord
	for rows.Next() {
		var s SessionSummaryRecord
		if err := rows.Scan(&s.SessionID, &s.Timestamp, &s.Mode, &s.QuestionsServed,
			&s.CorrectAnswers, &s.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) AccuracyByMode(ctx context.Context) ([]ModeAccuracy, error) {
	query, args := builder().
		Select("mode", entsql.As(entsql.Count("*"), "answered"), entsql.As(entsql.Sum("correct"), "correct_count")).
		From(entsql.Table(tableAnswerEvents)).
		GroupBy("mode").
		OrderBy("mode").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accuracy by mode: %w", err)
	}
	defer rows.Close()

	var out []ModeAccuracy
	for rows.Next() {
		var (
			m       ModeAccuracy
			correct sql.NullInt64
		)
		if err := rows.Scan(&m.Mode, &m.Answered, &correct); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		m.Correct = int(correct.Int64)
		out = append(out, m)
	}
	return out, rows.Err()
}
