package http_common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the opaque session id.
	SessionCookie = "csid"

	// AuthFlagCookie is the non-secret "was logged in" marker. It only
	// exists to let route gating skip upstream calls for obvious guests;
	// it proves nothing.
	AuthFlagCookie = "cm_auth"
	AuthFlagValue  = "authenticated"

	LoginRoute = "/login"
)

type ErrorResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func SetAuthCookies(ctx *gin.Context, sid string, maxAge time.Duration) {
	seconds := int(maxAge / time.Second)
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, sid, seconds, "/", "", false, true)
	ctx.SetCookie(AuthFlagCookie, AuthFlagValue, seconds, "/", "", false, false)
}

func ClearAuthCookies(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	ctx.SetCookie(AuthFlagCookie, "", -1, "/", "", false, false)
}

// AbortUnauthorized ends the request with a login redirect hint and
// drops the auth cookies so the client stops presenting a dead marker.
func AbortUnauthorized(ctx *gin.Context, message string) {
	ClearAuthCookies(ctx)
	ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Message:  message,
		Redirect: LoginRoute,
	})
	ctx.Abort()
}
