// Package userctx carries the caller of a diet request through the context.
// auth puts the token subject there; diets reads it for its solve log lines.
package userctx

import "context"

// Anonymous is reported for requests that passed without a token.
const Anonymous = "anonymous"

type callerKey struct{}

// WithCaller stores the token subject. An empty subject leaves ctx as is.
func WithCaller(ctx context.Context, subject string) context.Context {
	if subject == "" {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, subject)
}

func Caller(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(callerKey{}).(string)
	return subject, ok
}

// CallerName — субъект токена или Anonymous.
func CallerName(ctx context.Context) string {
	if subject, ok := Caller(ctx); ok {
		return subject
	}
	return Anonymous
}
