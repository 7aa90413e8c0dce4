package http_movie

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
	movies := router.Group("/movies")
	{
		movies.GET("", c.search)
		movies.GET("/trending", c.trending)
		movies.GET("/:movie_id", c.detail)
	}
}

type MovieResponseDTO struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
}

func toMovieResponse(m model.Movie) MovieResponseDTO {
	return MovieResponseDTO{
		ID:               m.ID,
		Title:            m.Title,
		PosterPath:       m.PosterPath,
		VoteAverage:      m.VoteAverage,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
	}
}

type SearchResponseDTO struct {
	Results    []MovieResponseDTO `json:"results"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// Search proxies catalog search
// @Summary Search movies
// @Tags Movies
// @Produce json
// @Param q query string false "Search query"
// @Param page query int false "Page number"
// @Success 200 {object} SearchResponseDTO
// @Failure 502 {object} http_common.ErrorResponse "Upstream unavailable"
// @Router /movies [get]
func (c *Controller) search(ctx *gin.Context) {
	query := ctx.Query("q")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	result, err := c.usecase.Search(ctx.Request.Context(), query, page)
	if err != nil {
		c.logger.Error("search failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
		return
	}

	resp := SearchResponseDTO{
		Results:    make([]MovieResponseDTO, len(result.Results)),
		Page:       result.Page,
		TotalPages: result.TotalPages,
	}
	for i, m := range result.Results {
		resp.Results[i] = toMovieResponse(m)
	}
	ctx.JSON(http.StatusOK, resp)
}

type GenreDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMemberDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

type CrewMemberDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type VideoDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type MovieDetailResponseDTO struct {
	MovieResponseDTO

	BackdropPath    string             `json:"backdrop_path,omitempty"`
	Overview        string             `json:"overview"`
	Runtime         int                `json:"runtime"`
	Status          string             `json:"status"`
	Genres          []GenreDTO         `json:"genres"`
	Cast            []CastMemberDTO    `json:"cast"`
	Crew            []CrewMemberDTO    `json:"crew"`
	Videos          []VideoDTO         `json:"videos"`
	Recommendations []MovieResponseDTO `json:"recommendations"`
}

func toMovieDetailResponse(d model.MovieDetail) MovieDetailResponseDTO {
	resp := MovieDetailResponseDTO{
		MovieResponseDTO: toMovieResponse(d.Movie),
		BackdropPath:     d.BackdropPath,
		Overview:         d.Overview,
		Runtime:          d.Runtime,
		Status:           d.Status,
	}
	for _, g := range d.Genres {
		resp.Genres = append(resp.Genres, GenreDTO{ID: g.ID, Name: g.Name})
	}
	for _, m := range d.Cast {
		resp.Cast = append(resp.Cast, CastMemberDTO{
			ID: m.ID, Name: m.Name, Character: m.Character, ProfilePath: m.ProfilePath,
		})
	}
	for _, m := range d.Crew {
		resp.Crew = append(resp.Crew, CrewMemberDTO{
			ID: m.ID, Name: m.Name, Job: m.Job, Department: m.Department,
		})
	}
	for _, v := range d.Videos {
		resp.Videos = append(resp.Videos, VideoDTO{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	for _, r := range d.Recommendations {
		resp.Recommendations = append(resp.Recommendations, toMovieResponse(r))
	}
	return resp
}

func (c *Controller) detail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid movie id"})
		return
	}

	detail, err := c.usecase.Detail(ctx.Request.Context(), id)
	if err != nil {
		c.logger.Error("detail lookup failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, toMovieDetailResponse(detail))
}

func (c *Controller) trending(ctx *gin.Context) {
	movies, err := c.usecase.Trending(ctx.Request.Context())
	if err != nil {
		c.logger.Error("trending lookup failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "upstream unavailable"})
		return
	}

	resp := make([]MovieResponseDTO, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	ctx.JSON(http.StatusOK, gin.H{"results": resp})
}
