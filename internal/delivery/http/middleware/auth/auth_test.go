//go:build !integration
// +build !integration

package http_auth_middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	"github.com/cinemind/gateway/internal/model"
)

type resolverFunc func(ctx context.Context, sid model.SessionID) (model.Session, error)

func (f resolverFunc) Resolve(ctx context.Context, sid model.SessionID) (model.Session, error) {
	return f(ctx, sid)
}

type SessionMiddlewareSuite struct {
	suite.Suite
}

func newRouter(resolver SessionResolver) (*gin.Engine, *model.Session) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := New(resolver)
	var seen model.Session
	router.GET("/open", m.WithSession(), func(ctx *gin.Context) {
		seen = SessionFrom(ctx)
		ctx.Status(http.StatusOK)
	})
	router.GET("/gated", m.WithSession(), m.AuthRequired(), func(ctx *gin.Context) {
		seen = SessionFrom(ctx)
		ctx.Status(http.StatusOK)
	})
	return router, &seen
}

func request(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func sessionCookie(sid string) *http.Cookie {
	return &http.Cookie{Name: http_common.SessionCookie, Value: sid}
}

func flagCookie() *http.Cookie {
	return &http.Cookie{Name: http_common.AuthFlagCookie, Value: http_common.AuthFlagValue}
}

func (s *SessionMiddlewareSuite) TestWithSession(t provider.T) {
	t.Parallel()

	t.Run("Should treat a request without the flag cookie as guest with zero resolver calls", func(t provider.T) {
		resolved := false
		router, seen := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			resolved = true
			return model.Session{}, nil
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/open", sessionCookie("sid-1")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resolved, "no verification traffic for obvious guests")
		assert.True(t, seen.Guest())
		assert.Equal(t, "sid-1", seen.ID)
	})

	t.Run("Should resolve a flagged session", func(t provider.T) {
		user := model.User{ID: 42, Username: "viewer"}
		router, seen := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			return model.Session{ID: sid, Identity: &user, CredentialPresent: true}, nil
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/open", sessionCookie("sid-1"), flagCookie()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, seen.Guest())
		assert.Equal(t, int64(42), seen.Identity.ID)
	})

	t.Run("Should clear cookies when the session was rejected", func(t provider.T) {
		router, seen := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			return model.Session{ID: sid}, model.ErrUnauthorized
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/open", sessionCookie("sid-1"), flagCookie()))

		assert.Equal(t, http.StatusOK, w.Code, "an open route still renders for the now-guest caller")
		assert.True(t, seen.Guest())

		cleared := 0
		for _, c := range w.Result().Cookies() {
			if (c.Name == http_common.SessionCookie || c.Name == http_common.AuthFlagCookie) && c.MaxAge < 0 {
				cleared++
			}
		}
		assert.Equal(t, 2, cleared, "both auth cookies must be dropped")
	})

	t.Run("Should keep the last known identity on transient failures", func(t provider.T) {
		user := model.User{ID: 42}
		router, seen := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			return model.Session{ID: sid, Identity: &user, CredentialPresent: true}, model.ErrTransient
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/open", sessionCookie("sid-1"), flagCookie()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, seen.Guest(), "a network blip must not log the user out")

		for _, c := range w.Result().Cookies() {
			assert.GreaterOrEqual(t, c.MaxAge, 0, "no cookie is cleared on a transient failure")
		}
	})
}

func (s *SessionMiddlewareSuite) TestAuthRequired(t provider.T) {
	t.Parallel()

	t.Run("Should abort guests with a login redirect hint", func(t provider.T) {
		router, _ := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			return model.Session{ID: sid}, nil
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/gated", sessionCookie("sid-1")))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), http_common.LoginRoute)
	})

	t.Run("Should pass authenticated users through", func(t provider.T) {
		user := model.User{ID: 42}
		router, _ := newRouter(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
			return model.Session{ID: sid, Identity: &user, CredentialPresent: true}, nil
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/gated", sessionCookie("sid-1"), flagCookie()))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func (s *SessionMiddlewareSuite) TestEnsureSession(t provider.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := New(resolverFunc(func(ctx context.Context, sid model.SessionID) (model.Session, error) {
		return model.Session{ID: sid}, nil
	}))

	var seen model.Session
	router.GET("/chatty", m.WithSession(), m.EnsureSession(), func(ctx *gin.Context) {
		seen = SessionFrom(ctx)
		ctx.Status(http.StatusOK)
	})

	t.Run("Should mint a session id for first-time visitors", func(t provider.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/chatty"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, seen.ID)

		minted := false
		for _, c := range w.Result().Cookies() {
			if c.Name == http_common.SessionCookie && c.Value != "" {
				minted = true
				assert.True(t, strings.EqualFold(c.Value, seen.ID))
			}
		}
		assert.True(t, minted)
	})

	t.Run("Should keep an existing session id", func(t provider.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, request("/chatty", sessionCookie("sid-keep")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sid-keep", seen.ID)
		for _, c := range w.Result().Cookies() {
			assert.NotEqual(t, http_common.SessionCookie, c.Name, "no new cookie for returning visitors")
		}
	})
}

func TestSessionMiddlewareSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionMiddlewareSuite))
}
