package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrills/internal/session"
)

// Entry describes one stored session value, without the value itself.
type Entry struct {
	LearnerID string
	Key       string
	Size      int
	UpdatedAt time.Time
	ExpiresAt time.Time // zero when the value never expires
}

// Scope returns a KV view of one learner's values.
func (s *Store) Scope(learnerID string) session.KV {
	return &kv{s: s, learner: learnerID}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// live matches rows that have not expired at now.
func live(now time.Time) *entsql.Predicate {
	return entsql.Or(
		entsql.IsNull(colExpiresAt),
		entsql.GT(colExpiresAt, now.Unix()),
	)
}

type kv struct {
	s       *Store
	learner string
}

func (k *kv) match(key string) *entsql.Predicate {
	return entsql.And(entsql.EQ(colLearnerID, k.learner), entsql.EQ(colKey, key))
}

func (k *kv) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := builder().Select(colValue).
		From(entsql.Table(tableSessionValues)).
		Where(entsql.And(k.match(key), live(k.s.now()))).
		Query()

	var value []byte
	err := k.s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (k *kv) Set(ctx context.Context, key string, value []byte) error {
	now := k.s.now()
	var expires any
	if k.s.ttl > 0 {
		expires = now.Add(k.s.ttl).Unix()
	}

	query, args := builder().Insert(tableSessionValues).
		Columns(colLearnerID, colKey, colValue, colUpdatedAt, colExpiresAt).
		Values(k.learner, key, value, now.Unix(), expires).
		OnConflict(
			entsql.ConflictColumns(colLearnerID, colKey),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := k.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (k *kv) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(tableSessionValues).Where(k.match(key)).Query()
	if _, err := k.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (k *kv) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := k.Get(ctx, key)
	return ok, err
}

// Entries lists live values, most recently updated first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	query, args := builder().Select(colLearnerID, colKey, "length("+colValue+")", colUpdatedAt, colExpiresAt).
		From(entsql.Table(tableSessionValues)).
		Where(live(s.now())).
		OrderBy(entsql.Desc(colUpdatedAt), colLearnerID, colKey).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
			expires sql.NullInt64
		)
		if err := rows.Scan(&e.LearnerID, &e.Key, &e.Size, &updated, &expires); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.UpdatedAt = time.Unix(updated, 0)
		if expires.Valid {
			e.ExpiresAt = time.Unix(expires.Int64, 0)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

// Purge deletes every value of one learner. It returns ErrNotFound when the
// learner has none.
func (s *Store) Purge(ctx context.Context, learnerID string) (int, error) {
	query, args := builder().Delete(tableSessionValues).Where(entsql.EQ(colLearnerID, learnerID)).Query()
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("purge %q: %w", learnerID, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("learner %q: %w", learnerID, ErrNotFound)
	}
	return n, nil
}

// Sweep deletes expired values and returns how many it removed.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	query, args := builder().Delete(tableSessionValues).
		Where(entsql.And(
			entsql.NotNull(colExpiresAt),
			entsql.LTE(colExpiresAt, s.now().Unix()),
		)).
		Query()
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}
	return n, nil
}

func (s *Store) exec(ctx context.Context, query string, args []any) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
