package http_search

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	"github.com/cinemind/gateway/internal/model"
	usecase_catalog "github.com/cinemind/gateway/internal/usecase/catalog"
)

type Controller struct {
	usecase *usecase_catalog.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_catalog.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	search := router.Group("/search")
	{
		search.POST("/update", c.update)
		search.GET("/top", c.top)
	}
}

type UpdateRequestDTO struct {
	SearchTerm string `json:"searchTerm" binding:"required"`
	Movie      struct {
		ID         int64  `json:"id" binding:"required"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"movie" binding:"required"`
}

func (c *Controller) update(ctx *gin.Context) {
	var req UpdateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	err := c.usecase.RecordSearch(ctx.Request.Context(), req.SearchTerm, model.Movie{
		ID:         req.Movie.ID,
		Title:      req.Movie.Title,
		PosterPath: req.Movie.PosterPath,
	})
	if err != nil {
		c.logger.Error("failed to record search", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

type SearchStatDTO struct {
	Term       string `json:"term"`
	Count      int64  `json:"count"`
	MovieID    int64  `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	PosterPath string `json:"poster_path,omitempty"`
}

func (c *Controller) top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	stats, err := c.usecase.TopSearches(ctx.Request.Context(), limit)
	if err != nil {
		c.logger.Error("failed to load search stats", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := make([]SearchStatDTO, len(stats))
	for i, s := range stats {
		resp[i] = SearchStatDTO{
			Term:       s.Term,
			Count:      s.Count,
			MovieID:    s.MovieID,
			MovieTitle: s.MovieTitle,
			PosterPath: s.PosterPath,
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"terms": resp})
}
