package postgres

import (
	"context"
	"time"

	"jobboard/internal/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const slowQueryThreshold = 500 * time.Millisecond

type traceKey struct{}

type traceStart struct {
	sql   string
	began time.Time
}

// slowQueryTracer logs queries that fail or run longer than threshold.
type slowQueryTracer struct {
	logger    *zap.Logger
	threshold time.Duration
	now       func() time.Time
}

var _ pgx.QueryTracer = (*slowQueryTracer)(nil)

func newSlowQueryTracer(logger *zap.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{logger: logger, threshold: threshold, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, began: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.began)

	fields := []zap.Field{
		zap.String("sql", logger.Truncate(start.sql, 200)),
		zap.Duration("elapsed", elapsed),
	}
	switch {
	case data.Err != nil:
		t.logger.Warn("query failed", append(fields, zap.Error(data.Err))...)
	case elapsed >= t.threshold:
		t.logger.Warn("slow query", append(fields, zap.Int64("rows", data.CommandTag.RowsAffected()))...)
	}
}
