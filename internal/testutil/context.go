package testutil

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/types"
)

// SetupContext creates a context with a request ID for tests
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
	return ctx
}

// ContextWithUser returns ctx with a user and optional org identity set,
// the way the auth middleware would for a valid token
func ContextWithUser(ctx context.Context, userID, orgID string) context.Context {
	ctx = types.SetUserID(ctx, userID)
	if orgID != "" {
		ctx = types.SetOrgID(ctx, orgID)
	}
	return ctx
}
