package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Standard attribute keys used in logs and metrics.
const (
	CorrelationIDKey = "correlation_id"
	UserIDKey        = "user_id"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

type scopeKey struct{}

// scope is what Pulse knows about the command a context belongs to.
type scope struct {
	correlationID string
	userID        string
	operation     string
}

func scopeFrom(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// NewCommandContext starts the scope of one command: a fresh correlation
// id, the acting user and the operation name (the command path).
func NewCommandContext(ctx context.Context, userID, operation string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope{
		correlationID: uuid.NewString(),
		userID:        userID,
		operation:     operation,
	})
}

// WithCorrelationID replaces the correlation id, generating one when id is
// empty. Events consumed from the broker keep the id of the command that
// produced them this way.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	s := scopeFrom(ctx)
	s.correlationID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).correlationID
}

// UserIDFromContext returns the acting user, or "".
func UserIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).userID
}

// OperationFromContext returns the operation name, or "".
func OperationFromContext(ctx context.Context) string {
	return scopeFrom(ctx).operation
}

// contextAttrs returns the scope as log attributes, skipping empty values.
func contextAttrs(ctx context.Context) []slog.Attr {
	s := scopeFrom(ctx)
	attrs := make([]slog.Attr, 0, 3)
	if s.correlationID != "" {
		attrs = append(attrs, slog.String(CorrelationIDKey, s.correlationID))
	}
	if s.userID != "" {
		attrs = append(attrs, slog.String(UserIDKey, s.userID))
	}
	if s.operation != "" {
		attrs = append(attrs, slog.String(OperationKey, s.operation))
	}
	return attrs
}
