package logging

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ContextKey defines the context key type.
type ContextKey string

// ContextIDKey holds the key of the context ID.
const ContextIDKey ContextKey = "ctx_id"

// NewContextWithID returns a context holding a new random context ID.
// The ID ties together the log entries of one logical operation.
func NewContextWithID(ctx context.Context) (context.Context, error) {
	ctxID, err := uuid.NewV4()
	if err != nil {
		return ctx, errors.Wrap(err, "new uuid error")
	}
	return context.WithValue(ctx, ContextIDKey, ctxID), nil
}

// Fields returns the log fields for the given context.
func Fields(ctx context.Context) log.Fields {
	fields := log.Fields{}
	if ctxID, ok := ctx.Value(ContextIDKey).(uuid.UUID); ok {
		fields["ctx_id"] = ctxID
	}
	return fields
}
