package http_interaction

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/cinemind/gateway/internal/delivery/http/common"
	http_auth_middleware "github.com/cinemind/gateway/internal/delivery/http/middleware/auth"
	http_movie "github.com/cinemind/gateway/internal/delivery/http/movie"
	"github.com/cinemind/gateway/internal/model"
	usecase_interaction "github.com/cinemind/gateway/internal/usecase/interaction"
)

type SessionCleaner interface {
	Clear(ctx context.Context, sid model.SessionID) error
}

type Controller struct {
	usecase    *usecase_interaction.Usecase
	sessions   SessionCleaner
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(
	usecase *usecase_interaction.Usecase,
	sessions SessionCleaner,
	middleware *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		usecase:    usecase,
		sessions:   sessions,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.Use(c.middleware.WithSession())
	{
		movies.GET("/:movie_id/interaction", c.interaction)

		gated := movies.Group("")
		gated.Use(c.middleware.AuthRequired())
		gated.POST("/:movie_id/save", c.toggleSave)
		gated.PUT("/:movie_id/rating", c.rate)
	}

	saved := router.Group("/saved")
	saved.Use(c.middleware.WithSession(), c.middleware.AuthRequired())
	saved.GET("", c.saved)
}

type SaveResponseDTO struct {
	IsSaved bool `json:"is_saved"`
}

// ToggleSave flips the saved state of a movie for the current user
// @Summary Save or unsave a movie
// @Tags Interactions
// @Produce json
// @Success 200 {object} SaveResponseDTO
// @Failure 401 {object} http_common.ErrorResponse "Login required"
// @Router /movies/{movie_id}/save [post]
func (c *Controller) toggleSave(ctx *gin.Context) {
	movieID, ok := c.movieID(ctx)
	if !ok {
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	saved, err := c.usecase.ToggleSave(ctx.Request.Context(), session, movieID)
	if err != nil {
		c.failInteraction(ctx, session.ID, "please login to save movies", err)
		return
	}
	ctx.JSON(http.StatusOK, SaveResponseDTO{IsSaved: saved})
}

type RateRequestDTO struct {
	Rating int `json:"rating" binding:"required,min=1,max=10"`
}

type RateResponseDTO struct {
	Rating int `json:"rating"`
}

func (c *Controller) rate(ctx *gin.Context) {
	movieID, ok := c.movieID(ctx)
	if !ok {
		return
	}

	var req RateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "Invalid request format"})
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	applied, err := c.usecase.Rate(ctx.Request.Context(), session, movieID, req.Rating)
	if err != nil {
		c.failInteraction(ctx, session.ID, "please login to rate movies", err)
		return
	}
	ctx.JSON(http.StatusOK, RateResponseDTO{Rating: applied})
}

type InteractionResponseDTO struct {
	IsSaved bool `json:"is_saved"`
	Rating  int  `json:"rating"`
}

// interaction is readable by guests; they just get the zero state.
func (c *Controller) interaction(ctx *gin.Context) {
	movieID, ok := c.movieID(ctx)
	if !ok {
		return
	}

	session := http_auth_middleware.SessionFrom(ctx)
	relation, err := c.usecase.Interaction(ctx.Request.Context(), session, movieID)
	if err != nil {
		c.failInteraction(ctx, session.ID, "authentication required", err)
		return
	}
	ctx.JSON(http.StatusOK, InteractionResponseDTO{
		IsSaved: relation.IsSaved,
		Rating:  relation.Rating,
	})
}

func (c *Controller) saved(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)
	movies, err := c.usecase.Saved(ctx.Request.Context(), session)
	if err != nil {
		c.failInteraction(ctx, session.ID, "please login to view saved movies", err)
		return
	}

	resp := make([]http_movie.MovieDetailResponseDTO, len(movies))
	for i := range movies {
		resp[i] = toSavedMovieResponse(movies[i])
	}
	ctx.JSON(http.StatusOK, gin.H{"movies": resp, "total": len(resp)})
}

func toSavedMovieResponse(d model.MovieDetail) http_movie.MovieDetailResponseDTO {
	resp := http_movie.MovieDetailResponseDTO{
		MovieResponseDTO: http_movie.MovieResponseDTO{
			ID:               d.ID,
			Title:            d.Title,
			PosterPath:       d.PosterPath,
			VoteAverage:      d.VoteAverage,
			ReleaseDate:      d.ReleaseDate,
			OriginalLanguage: d.OriginalLanguage,
		},
		BackdropPath: d.BackdropPath,
		Overview:     d.Overview,
		Runtime:      d.Runtime,
		Status:       d.Status,
	}
	for _, g := range d.Genres {
		resp.Genres = append(resp.Genres, http_movie.GenreDTO{ID: g.ID, Name: g.Name})
	}
	return resp
}

func (c *Controller) movieID(ctx *gin.Context) (model.MovieID, bool) {
	id, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid movie id"})
		return 0, false
	}
	return id, true
}

// failInteraction maps usecase failures. An Unauthorized rejection kills
// the session; a missing credential only redirects; anything else stays
// with this request.
func (c *Controller) failInteraction(ctx *gin.Context, sid model.SessionID, unauthorizedMessage string, err error) {
	switch {
	case errors.Is(err, model.ErrNoCredential):
		http_common.AbortUnauthorized(ctx, unauthorizedMessage)
	case errors.Is(err, model.ErrUnauthorized):
		if sid != model.EmptySessionID {
			if cerr := c.sessions.Clear(ctx.Request.Context(), sid); cerr != nil {
				c.logger.Error("failed to clear rejected session", slog.String("error", cerr.Error()))
			}
		}
		http_common.AbortUnauthorized(ctx, unauthorizedMessage)
	case errors.Is(err, model.ErrMutationRejected):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "request rejected"})
	default:
		c.logger.Error("interaction failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
	}
}
