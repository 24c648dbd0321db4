package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// TimeOperation runs fn and records how it went: a duration and a count
// tagged with the operation, plus an error count when fn fails. A context
// cancellation (Ctrl+C, worker shutdown) is logged but not counted as an
// error. logger and metrics may be nil.
func TimeOperation(ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	cancelled := err != nil && errors.Is(err, context.Canceled)
	if logger != nil {
		attrs := []any{DurationKey, duration.Milliseconds()}
		if OperationFromContext(ctx) != operation {
			attrs = append(attrs, OperationKey, operation)
		}
		switch {
		case cancelled:
			logger.InfoContext(ctx, "operation cancelled", attrs...)
		case err != nil:
			logger.ErrorContext(ctx, "operation failed", append(attrs, ErrorKey, err.Error())...)
		default:
			logger.DebugContext(ctx, "operation completed", attrs...)
		}
	}

	if metrics != nil {
		tag := T(OperationKey, operation)
		metrics.Timing(MetricOperationDuration, duration, tag)
		metrics.Counter(MetricOperationTotal, 1, tag)
		if err != nil && !cancelled {
			metrics.Counter(MetricOperationErrors, 1, tag)
		}
	}
	return err
}
