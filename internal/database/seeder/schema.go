package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"jobboard/internal/database"
)

// ErrSchemaMismatch means the migrations that a seeder depends on have not run.
var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureTableColumns checks that table has every named column and reports all
// of the missing ones at once.
func EnsureTableColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	if q == nil {
		return errors.New("nil db")
	}
	if strings.TrimSpace(table) == "" {
		return errors.New("empty table")
	}

	existing, err := tableColumns(ctx, q, table)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, "missing column "+table+"."+col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(missing, ", "))
}

func tableColumns(ctx context.Context, q database.Querier, table string) (map[string]struct{}, error) {
	rows, err := q.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out[c] = struct{}{}
	}
	return out, rows.Err()
}
