package auth

import (
	"context"

	"github.com/fdg312/diet-hub/internal/userctx"
)

// WithUserID кладёт subject токена в контекст запроса.
func WithUserID(ctx context.Context, userID string) context.Context {
	return userctx.WithCaller(ctx, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	return userctx.Caller(ctx)
}
