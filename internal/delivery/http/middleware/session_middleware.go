package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"souq/config"
	deliveryctx "souq/internal/delivery/context"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName carries the opaque session identifier.
const SessionCookieName = "souq_session"

// SessionMiddleware ensures every visitor has an opaque session id cookie and
// resolves the authenticated state, if any, behind it.
type SessionMiddleware struct {
	verification usecase.VerificationUsecase
	cfg          *config.Config
	logger       *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(verification usecase.VerificationUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{verification: verification, cfg: cfg, logger: logger}
}

// Attach assigns a session id cookie when missing and, when the session store
// knows the visitor, puts the authenticated state on the request context.
func (m *SessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := m.sessionID(c)

		ctx := deliveryctx.WithSessionID(c.Request().Context(), sessionID)
		ctx = deliveryctx.WithLogger(ctx, m.logger.With(slog.String("sessionId", sessionID)))

		auth, err := m.verification.CurrentSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if auth != nil {
			ctx = deliveryctx.WithAuthSession(ctx, auth)
		}

		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireLogin rejects visitors without an authenticated session.
// It must be used AFTER Attach.
func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliveryctx.GetAuthSession(c.Request().Context()) == nil {
			return response.Unauthorized(c, "LOGIN_REQUIRED", "You must be logged in to perform this action")
		}

		return next(c)
	}
}

// RequireAdmin rejects sessions that do not carry the admin flag.
// It must be used AFTER Attach.
func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := deliveryctx.GetAuthSession(c.Request().Context())
		if auth == nil {
			return response.Unauthorized(c, "LOGIN_REQUIRED", "You must be logged in to perform this action")
		}
		if !auth.IsAdmin {
			return response.Forbidden(c, "FORBIDDEN", "Access denied")
		}

		return next(c)
	}
}

// sessionID reads the cookie, minting and setting a fresh id when the visitor
// arrives without one or with a malformed value.
func (m *SessionMiddleware) sessionID(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return cookie.Value
		}
	}

	sessionID := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.cfg.Session.IdleTimeout),
	})

	return sessionID
}
