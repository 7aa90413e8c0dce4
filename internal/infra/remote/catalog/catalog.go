package remote_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cinemind/gateway/internal/infra/remote"
	"github.com/cinemind/gateway/internal/model"
)

// Client proxies the movie catalog (a TMDB-backed upstream). Page bounds
// are the upstream's call: an out-of-range page is forwarded, not
// rejected here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: remote.NewHTTPClient(),
		logger:     slog.Default(),
	}
}

type movieDTO struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	PosterPath       *string `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
}

func (d movieDTO) ToDomain() model.Movie {
	m := model.Movie{
		ID:               d.ID,
		Title:            d.Title,
		VoteAverage:      d.VoteAverage,
		ReleaseDate:      d.ReleaseDate,
		OriginalLanguage: d.OriginalLanguage,
	}
	if d.PosterPath != nil {
		m.PosterPath = *d.PosterPath
	}
	return m
}

type searchPageDTO struct {
	Results    []movieDTO `json:"results"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

func (c *Client) Search(ctx context.Context, query string, page int) (model.SearchPage, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	u := c.baseURL + "/movies/"
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	var dto searchPageDTO
	if err := c.getJSON(ctx, u, &dto); err != nil {
		return model.SearchPage{}, err
	}

	results := make([]model.Movie, len(dto.Results))
	for i, r := range dto.Results {
		results[i] = r.ToDomain()
	}
	return model.SearchPage{
		Results:    results,
		Page:       dto.Page,
		TotalPages: dto.TotalPages,
	}, nil
}

type movieDetailDTO struct {
	movieDTO

	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	Runtime      int     `json:"runtime"`
	Status       string  `json:"status"`
	Genres       []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			ID          int64   `json:"id"`
			Name        string  `json:"name"`
			Character   string  `json:"character"`
			ProfilePath *string `json:"profile_path"`
		} `json:"cast"`
		Crew []struct {
			ID         int64  `json:"id"`
			Name       string `json:"name"`
			Job        string `json:"job"`
			Department string `json:"department"`
		} `json:"crew"`
	} `json:"credits"`
	Recommendations struct {
		Results []movieDTO `json:"results"`
	} `json:"recommendations"`
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
			Site string `json:"site"`
			Type string `json:"type"`
		} `json:"results"`
	} `json:"videos"`
}

func (d movieDetailDTO) ToDomain() model.MovieDetail {
	detail := model.MovieDetail{
		Movie:    d.movieDTO.ToDomain(),
		Overview: d.Overview,
		Runtime:  d.Runtime,
		Status:   d.Status,
	}
	if d.BackdropPath != nil {
		detail.BackdropPath = *d.BackdropPath
	}
	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	for _, c := range d.Credits.Cast {
		member := model.CastMember{ID: c.ID, Name: c.Name, Character: c.Character}
		if c.ProfilePath != nil {
			member.ProfilePath = *c.ProfilePath
		}
		detail.Cast = append(detail.Cast, member)
	}
	for _, c := range d.Credits.Crew {
		detail.Crew = append(detail.Crew, model.CrewMember{
			ID: c.ID, Name: c.Name, Job: c.Job, Department: c.Department,
		})
	}
	for _, r := range d.Recommendations.Results {
		detail.Recommendations = append(detail.Recommendations, r.ToDomain())
	}
	for _, v := range d.Videos.Results {
		detail.Videos = append(detail.Videos, model.Video{
			Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type,
		})
	}
	return detail
}

func (c *Client) Detail(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	var dto movieDetailDTO
	u := fmt.Sprintf("%s/movies/%d/", c.baseURL, id)
	if err := c.getJSON(ctx, u, &dto); err != nil {
		return model.MovieDetail{}, err
	}
	return dto.ToDomain(), nil
}

func (c *Client) Trending(ctx context.Context) ([]model.Movie, error) {
	var dto struct {
		Results []movieDTO `json:"results"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/movies/trending/", &dto); err != nil {
		return nil, err
	}

	movies := make([]model.Movie, len(dto.Results))
	for i, r := range dto.Results {
		movies[i] = r.ToDomain()
	}
	return movies, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransient, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := remote.ClassifyQuery(resp.StatusCode); err != nil {
		return err
	}
	return remote.DecodeJSON(resp, v)
}
