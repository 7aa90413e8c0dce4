package http_auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	http_auth_middleware "github.com/cinemind/gateway/internal/delivery/http/middleware/auth"
	remote_auth "github.com/cinemind/gateway/internal/infra/remote/auth"
	"github.com/cinemind/gateway/internal/model"
	service_session "github.com/cinemind/gateway/internal/service/session"
)

type Controller struct {
	auth       *remote_auth.Client
	sessions   *service_session.Store
	middleware *http_auth_middleware.Middleware
	flagMaxAge time.Duration
	logger     *slog.Logger
}

func New(
	auth *remote_auth.Client,
	sessions *service_session.Store,
	middleware *http_auth_middleware.Middleware,
	flagMaxAge time.Duration,
) *Controller {
	return &Controller{
		auth:       auth,
		sessions:   sessions,
		middleware: middleware,
		flagMaxAge: flagMaxAge,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/login", c.login)
	auth.POST("/register", c.register)

	auth.Use(c.middleware.WithSession())
	auth.POST("/logout", c.logout)

	gated := auth.Group("")
	gated.Use(c.middleware.AuthRequired())
	gated.GET("/profile", c.profile)
	gated.PATCH("/profile", c.updateProfile)
	gated.POST("/change-password", c.changePassword)
}

type LoginRequestDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequestDTO struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type UserResponseDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func toUserResponse(u model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}

// Login authenticates against the upstream and opens a local session
// @Summary Login
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body LoginRequestDTO true "Credentials"
// @Success 200 {object} UserResponseDTO
// @Failure 401 {object} http_common.ErrorResponse "Invalid credentials"
// @Failure 502 {object} http_common.ErrorResponse "Upstream unavailable"
// @Router /auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	user, credential, err := c.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.failAuthAttempt(ctx, "login failed", err)
		return
	}

	c.openSession(ctx, user, credential, http.StatusOK)
}

func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	user, credential, err := c.auth.Register(ctx.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		c.failAuthAttempt(ctx, "registration failed", err)
		return
	}

	c.openSession(ctx, user, credential, http.StatusCreated)
}

// openSession binds the fresh identity to a session id. An existing sid
// cookie is reused so pre-login state (chat transcript) survives login.
func (c *Controller) openSession(ctx *gin.Context, user model.User, credential string, status int) {
	sid, _ := ctx.Cookie(http_common.SessionCookie)
	if sid == "" {
		sid = uuid.New().String()
	}

	if _, err := c.sessions.SetIdentity(ctx.Request.Context(), sid, user, credential); err != nil {
		c.logger.Error("failed to open session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	http_common.SetAuthCookies(ctx, sid, c.flagMaxAge)
	ctx.JSON(status, toUserResponse(user))
}

func (c *Controller) failAuthAttempt(ctx *gin.Context, action string, err error) {
	c.logger.Warn(action, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrMutationRejected):
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "invalid email or password"})
	default:
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
	}
}

// Logout clears the local session and best-effort revokes the upstream
// credential. It succeeds even when the upstream is down.
func (c *Controller) logout(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)

	if session.Credential != "" {
		_ = c.auth.Logout(ctx.Request.Context(), session.Credential)
	}
	if session.ID != model.EmptySessionID {
		if err := c.sessions.Clear(ctx.Request.Context(), session.ID); err != nil {
			c.logger.Error("failed to clear session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
			return
		}
	}

	http_common.ClearAuthCookies(ctx)
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) profile(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)
	ctx.JSON(http.StatusOK, toUserResponse(*session.Identity))
}

type UpdateProfileRequestDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *Controller) updateProfile(ctx *gin.Context) {
	var req UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	user, err := c.auth.UpdateProfile(ctx.Request.Context(), session.Credential, remote_auth.ProfilePatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		c.failMutation(ctx, session.ID, "profile update failed", err)
		return
	}

	// The upstream returned the updated identity; make it the canonical
	// one so every consumer sees it immediately.
	if _, err := c.sessions.SetIdentity(ctx.Request.Context(), session.ID, user, session.Credential); err != nil {
		c.logger.Error("failed to refresh session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (c *Controller) changePassword(ctx *gin.Context) {
	var req ChangePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	if err := c.auth.ChangePassword(ctx.Request.Context(), session.Credential, req.CurrentPassword, req.NewPassword); err != nil {
		c.failMutation(ctx, session.ID, "password change failed", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// failMutation maps a mutation failure. Only an Unauthorized rejection
// touches session state.
func (c *Controller) failMutation(ctx *gin.Context, sid model.SessionID, action string, err error) {
	c.logger.Warn(action, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		if cerr := c.sessions.Clear(ctx.Request.Context(), sid); cerr != nil {
			c.logger.Error("failed to clear rejected session", slog.String("error", cerr.Error()))
		}
		http_common.AbortUnauthorized(ctx, "session expired")
	case errors.Is(err, model.ErrMutationRejected):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: action})
	default:
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
	}
}
