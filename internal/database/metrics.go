package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lightbnb_db_query_duration_seconds",
			Help:    "Duration of database statements",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	queryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightbnb_db_query_errors_total",
			Help: "Database statements that returned an error",
		},
		[]string{"operation"},
	)
)

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	operation string
}

// metricsTracer records statement latency into prometheus.
type metricsTracer struct{}

func newMetricsTracer() *metricsTracer {
	return &metricsTracer{}
}

func (t *metricsTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		at:        time.Now(),
		operation: statementOperation(data.SQL),
	})
}

func (t *metricsTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	status := "ok"
	if data.Err != nil {
		status = "error"
		queryErrors.WithLabelValues(start.operation).Inc()
	}

	queryDuration.WithLabelValues(start.operation, status).Observe(time.Since(start.at).Seconds())
}

// statementOperation returns the lower-cased leading keyword of sql
// ("select", "insert", ...), keeping label cardinality bounded.
func statementOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}

	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "with":
		return op
	default:
		return "other"
	}
}
