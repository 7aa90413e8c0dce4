package http_chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	http_auth_middleware "github.com/cinemind/gateway/internal/delivery/http/middleware/auth"
	"github.com/cinemind/gateway/internal/model"
	usecase_chat "github.com/cinemind/gateway/internal/usecase/chat"
)

type Controller struct {
	usecase    *usecase_chat.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_chat.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	chat.Use(c.middleware.WithSession(), c.middleware.EnsureSession())
	{
		chat.POST("", c.send)
		chat.GET("/history", c.history)
		chat.DELETE("", c.reset)
	}
}

type SendRequestDTO struct {
	Message string `json:"message" binding:"required"`
}

type RecommendationDTO struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path,omitempty"`
	Overview   string `json:"overview,omitempty"`
}

type MessageResponseDTO struct {
	Content string              `json:"content"`
	Sender  string              `json:"sender"`
	Movies  []RecommendationDTO `json:"movies,omitempty"`
}

func toMessageResponse(m model.ChatMessage) MessageResponseDTO {
	resp := MessageResponseDTO{
		Content: m.Content,
		Sender:  string(m.Sender),
	}
	for _, r := range m.Movies {
		resp.Movies = append(resp.Movies, RecommendationDTO{
			ID:         r.ID,
			Title:      r.Title,
			PosterPath: r.PosterPath,
			Overview:   r.Overview,
		})
	}
	return resp
}

// Send relays one message to the assistant
// @Summary Chat with the recommendation assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body SendRequestDTO true "Message"
// @Success 200 {object} MessageResponseDTO
// @Failure 502 {object} http_common.ErrorResponse "Assistant unavailable"
// @Router /chat [post]
func (c *Controller) send(ctx *gin.Context) {
	var req SendRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	reply, err := c.usecase.Send(ctx.Request.Context(), session.ID, req.Message)
	if err != nil {
		if errors.Is(err, model.ErrMutationRejected) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "request rejected"})
			return
		}
		c.logger.Error("chat send failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "assistant unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, toMessageResponse(reply))
}

func (c *Controller) history(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)
	messages, err := c.usecase.History(ctx.Request.Context(), session.ID)
	if err != nil {
		c.logger.Error("history load failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := make([]MessageResponseDTO, len(messages))
	for i, m := range messages {
		resp[i] = toMessageResponse(m)
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": resp})
}

func (c *Controller) reset(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)
	if err := c.usecase.Reset(ctx.Request.Context(), session.ID); err != nil {
		c.logger.Error("history reset failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
