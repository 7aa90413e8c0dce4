package http_auth_middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	"github.com/cinemind/gateway/internal/model"
)

const sessionContextKey = "gateway.session"

type SessionResolver interface {
	Resolve(ctx context.Context, sid model.SessionID) (model.Session, error)
}

type Middleware struct {
	sessions SessionResolver
	logger   *slog.Logger
}

func New(sessions SessionResolver) *Middleware {
	return &Middleware{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

// WithSession resolves the caller's session once per request and stashes
// it in the gin context. A request without the auth flag cookie is a
// guest and causes no verification traffic at all.
func (m *Middleware) WithSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sid, _ := ctx.Cookie(http_common.SessionCookie)
		flag, _ := ctx.Cookie(http_common.AuthFlagCookie)

		if sid == "" || flag != http_common.AuthFlagValue {
			ctx.Set(sessionContextKey, model.Session{ID: sid})
			ctx.Next()
			return
		}

		session, err := m.sessions.Resolve(ctx.Request.Context(), sid)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrUnauthorized):
				// The store already cleared the record; stop the client
				// from presenting the dead marker again.
				http_common.ClearAuthCookies(ctx)
			default:
				// Transient. The last known session flows on unchanged.
				m.logger.Warn("session revalidation degraded",
					slog.String("sid", sid),
					slog.String("error", err.Error()))
			}
		}

		ctx.Set(sessionContextKey, session)
		ctx.Next()
	}
}

// AuthRequired gates a route on a resolved identity. Guests get a login
// redirect hint; WithSession must run first.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if SessionFrom(ctx).Guest() {
			http_common.AbortUnauthorized(ctx, "authentication required")
			return
		}
		ctx.Next()
	}
}

// EnsureSession mints a session id cookie for first-time visitors so
// per-session state (chat transcripts) has a key before any login.
func (m *Middleware) EnsureSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if sid, err := ctx.Cookie(http_common.SessionCookie); err != nil || sid == "" {
			sid = uuid.New().String()
			ctx.SetCookie(http_common.SessionCookie, sid, 0, "/", "", false, true)

			session := SessionFrom(ctx)
			session.ID = sid
			ctx.Set(sessionContextKey, session)
		}
		ctx.Next()
	}
}

// SessionFrom returns the session resolved by WithSession, or a guest
// session when the middleware did not run.
func SessionFrom(ctx *gin.Context) model.Session {
	if v, ok := ctx.Get(sessionContextKey); ok {
		if session, ok := v.(model.Session); ok {
			return session
		}
	}
	return model.Session{}
}
