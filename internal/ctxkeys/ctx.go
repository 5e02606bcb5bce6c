package ctxkeys

import (
	"context"

	"github.com/taskpilot/taskpilot/internal/identity"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// Identity returns the verified caller identity, or nil when the request is
// unauthenticated.
func Identity(ctx context.Context) *identity.Identity {
	id, _ := ctx.Value(IdentityKey).(*identity.Identity)
	return id
}

func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}
