package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableLabels         = "labels"
	tableAnswerEvents   = "answer_events"
	tableSessionEvents  = "session_events"
	tableLLMRequestEvts = "llm_request_events"
)

// eventColumns are shared by every event table: an auto-increment id,
// the global sequence number and the UTC wall-clock time.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

func eventIndexes(prefix string, cols []*schema.Column) []*schema.Index {
	return []*schema.Index{
		{Name: prefix + "_sequence", Columns: []*schema.Column{cols[1]}},
		{Name: prefix + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
}

var (
	labelsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "kind", Type: field.TypeString},
		{Name: "key", Type: field.TypeString},
		{Name: "label", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeTime},
	}
	labelsTable = &schema.Table{
		Name:       tableLabels,
		Columns:    labelsColumns,
		PrimaryKey: []*schema.Column{labelsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "label_kind_key", Unique: true, Columns: []*schema.Column{labelsColumns[1], labelsColumns[2]}},
		},
	}

	answerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "item_key", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "prompt", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "given_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	answerEventsTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: append(eventIndexes("answerevent", answerEventsColumns),
			&schema.Index{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventsColumns[3]}},
			&schema.Index{Name: "answerevent_mode", Columns: []*schema.Column{answerEventsColumns[4]}},
		),
	}

	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	sessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: append(eventIndexes("sessionevent", sessionEventsColumns),
			&schema.Index{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
		),
	}

	llmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvts,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: append(eventIndexes("llmrequestevent", llmRequestEventsColumns),
			&schema.Index{Name: "llmrequestevent_provider", Columns: []*schema.Column{llmRequestEventsColumns[3]}},
			&schema.Index{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
		),
	}

	// tables lists every table managed by auto-migration.
	tables = []*schema.Table{
		labelsTable,
		answerEventsTable,
		sessionEventsTable,
		llmRequestEventsTable,
	}
)
