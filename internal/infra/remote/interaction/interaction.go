package remote_interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cinemind/gateway/internal/infra/remote"
	"github.com/cinemind/gateway/internal/model"
)

// Client covers the save/rate endpoints. Every call carries the user's
// credential; the upstream answers 401 for dead credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: remote.NewHTTPClient(),
	}
}

func (c *Client) ToggleSave(ctx context.Context, credential string, movieID model.MovieID) (bool, error) {
	var out struct {
		IsSaved bool `json:"is_saved"`
	}
	u := fmt.Sprintf("%s/movies/%d/save/", c.baseURL, movieID)
	if err := c.do(ctx, http.MethodPost, u, credential, nil, &out); err != nil {
		return false, err
	}
	return out.IsSaved, nil
}

func (c *Client) Rate(ctx context.Context, credential string, movieID model.MovieID, rating int) (int, error) {
	body := map[string]int{"rating": rating}
	var out struct {
		Rating int `json:"rating"`
	}
	u := fmt.Sprintf("%s/movies/%d/rating/", c.baseURL, movieID)
	if err := c.do(ctx, http.MethodPut, u, credential, body, &out); err != nil {
		return 0, err
	}
	return out.Rating, nil
}

func (c *Client) Interaction(ctx context.Context, credential string, movieID model.MovieID) (model.Interaction, error) {
	var out struct {
		IsSaved bool `json:"is_saved"`
		Rating  int  `json:"rating"`
	}
	u := fmt.Sprintf("%s/movies/%d/interaction/", c.baseURL, movieID)
	if err := c.do(ctx, http.MethodGet, u, credential, nil, &out); err != nil {
		return model.Interaction{}, err
	}
	return model.Interaction{IsSaved: out.IsSaved, Rating: out.Rating}, nil
}

func (c *Client) SavedMovieIDs(ctx context.Context, credential string) ([]model.MovieID, error) {
	var out struct {
		MovieIDs []model.MovieID `json:"movie_ids"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/movies/saved/", credential, nil, &out); err != nil {
		return nil, err
	}
	return out.MovieIDs, nil
}

func (c *Client) do(ctx context.Context, method, url, credential string, body, out any) error {
	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")
	remote.Authorize(req, credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if method == http.MethodGet {
		err = remote.ClassifyQuery(resp.StatusCode)
	} else {
		err = remote.ClassifyMutation(resp.StatusCode)
	}
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	return remote.DecodeJSON(resp, out)
}
