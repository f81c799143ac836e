package authctx

import "context"

type sessionIDKey struct{}

// WithSessionID кладёт идентификатор сессии в контекст
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionID достаёт идентификатор сессии из контекста.
// Возвращает пустую строку, если сессии нет.
func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return v
	}
	return ""
}
