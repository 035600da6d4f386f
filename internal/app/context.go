package app

import "context"

type contextKey struct{}

// GetAppFromContext returns the App stored by SetAppInContext, or nil.
func GetAppFromContext(ctx context.Context) *App {
	a, _ := ctx.Value(contextKey{}).(*App)
	return a
}

// SetAppInContext stores the App so cobra subcommands can reach it through cmd.Context().
func SetAppInContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}
