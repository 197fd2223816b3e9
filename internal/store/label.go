package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

// LabelRepo persists knowledge labels in SQLite. It implements
// knowledge.Store. Each key is written with a single UPSERT, so writes
// to different keys never conflict and the last write wins.
type LabelRepo struct {
	db *sql.DB
}

var _ knowledge.Store = (*LabelRepo)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *LabelRepo) ReadLabels(ctx context.Context, kind dataset.Kind) (knowledge.Set, error) {
	query, args := builder().Select("key", "label").
		From(entsql.Table(tableLabels)).
		Where(entsql.EQ("kind", string(kind))).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read %s labels: %w", kind, err)
	}
	defer rows.Close()

	set := make(knowledge.Set)
	for rows.Next() {
		var key, name string
		if err := rows.Scan(&key, &name); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		l, err := knowledge.ParseLabel(name)
		if err != nil {
			return nil, fmt.Errorf("label for %q: %w", key, err)
		}
		set[key] = l
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s labels: %w", kind, err)
	}
	return set, nil
}

func (r *LabelRepo) SetLabel(ctx context.Context, kind dataset.Kind, key string, label knowledge.Label) error {
	if err := validEntry(key, label); err != nil {
		return err
	}
	return writeLabel(ctx, r.db, kind, key, label)
}

func (r *LabelRepo) WriteLabels(ctx context.Context, kind dataset.Kind, labels knowledge.Set) error {
	for key, l := range labels {
		if err := validEntry(key, l); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin label write: %w", err)
	}
	for key, l := range labels {
		if err := writeLabel(ctx, tx, kind, key, l); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit label write: %w", err)
	}
	return nil
}

func (r *LabelRepo) ResetLabels(ctx context.Context, kind dataset.Kind) error {
	query, args := builder().Delete(tableLabels).
		Where(entsql.EQ("kind", string(kind))).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset %s labels: %w", kind, err)
	}
	return nil
}

func validEntry(key string, l knowledge.Label) error {
	if key == "" {
		return fmt.Errorf("empty item key")
	}
	if l != knowledge.None && !l.Valid() {
		return fmt.Errorf("invalid label %v for %q", l, key)
	}
	return nil
}

// writeLabel upserts one key. None deletes the row.
func writeLabel(ctx context.Context, ex execer, kind dataset.Kind, key string, l knowledge.Label) error {
	var (
		query string
		args  []any
	)
	if l == knowledge.None {
		query, args = builder().Delete(tableLabels).
			Where(entsql.And(entsql.EQ("kind", string(kind)), entsql.EQ("key", key))).
			Query()
	} else {
		query, args = builder().Insert(tableLabels).
			Columns("kind", "key", "label", "updated_at").
			Values(string(kind), key, l.String(), time.Now().UTC()).
			OnConflict(
				entsql.ConflictColumns("kind", "key"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.SetExcluded("label")
					u.SetExcluded("updated_at")
				}),
			).
			Query()
	}
	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write label %q: %w", key, err)
	}
	return nil
}
