package goSession

import "context"

type requestOriginContextKey struct{}

// WithRequestOrigin attaches the path of the view being requested to ctx.
// The gate records it in audit metadata on denials, and the middleware
// uses it for the post-login bounce-back location.
func WithRequestOrigin(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, requestOriginContextKey{}, path)
}

func requestOriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	origin, _ := ctx.Value(requestOriginContextKey{}).(string)
	return origin
}
