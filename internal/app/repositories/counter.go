package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/db"
	"github.com/mindforge/mindforge-api/internal/pkg/dberrors"
)

// boundedCounter names a derived count column that must never pass a limit column on the same row
type boundedCounter struct {
	table   string
	counter string
	limit   string
}

var bootcampSeats = boundedCounter{table: "bootcamps", counter: "enrollment_count", limit: "capacity"}

// incrementBounded adds one to the counter of row id in a single conditional UPDATE.
// The row lock taken by the UPDATE serializes concurrent callers, and the predicate
// (counter < limit AND extra) is re-evaluated against the committed row, so the
// counter can never pass its limit. ErrBoundReached is returned when no row qualified.
func incrementBounded(ctx context.Context, q db.DBTX, c boundedCounter, id uuid.UUID, extra squirrel.Sqlizer) (int, error) {
	where := squirrel.And{
		squirrel.Eq{"id": id},
		squirrel.Expr(fmt.Sprintf("%s < %s", c.counter, c.limit)),
	}
	if extra != nil {
		where = append(where, extra)
	}

	query, args, err := squirrel.Update(c.table).
		Set(c.counter, squirrel.Expr(c.counter+" + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Suffix("RETURNING " + c.counter).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build increment query: %w", err)
	}

	var value int
	if err := q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if dberrors.IsNotFound(err) {
			return 0, ErrBoundReached
		}
		return 0, fmt.Errorf("failed to increment %s.%s: %w", c.table, c.counter, err)
	}
	return value, nil
}
