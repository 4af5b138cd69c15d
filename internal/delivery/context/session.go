// Package context carries request-scoped values between the delivery layer
// and the usecase layer over context.Context.
package context

import (
	"context"
	"log/slog"

	"souq/internal/domain/entity"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeySessionID is the key for the visitor's opaque session identifier.
	KeySessionID ContextKey = "session_id"

	// KeyAuthSession is the key for the authenticated-visitor state.
	KeyAuthSession ContextKey = "auth_session"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"
)

// WithSessionID returns a new context carrying the visitor's session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, KeySessionID, sessionID)
}

// GetSessionID extracts the session id from the context, or "" when absent.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(KeySessionID).(string); ok {
		return id
	}

	return ""
}

// WithAuthSession returns a new context carrying the authenticated session.
func WithAuthSession(ctx context.Context, auth *entity.AuthSession) context.Context {
	return context.WithValue(ctx, KeyAuthSession, auth)
}

// GetAuthSession extracts the authenticated session, or nil when the visitor
// is not logged in.
func GetAuthSession(ctx context.Context) *entity.AuthSession {
	if auth, ok := ctx.Value(KeyAuthSession).(*entity.AuthSession); ok {
		return auth
	}

	return nil
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
