package remote_auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cinemind/gateway/internal/infra/remote"
	"github.com/cinemind/gateway/internal/model"
)

// Client talks to the remote authentication endpoint. Credentials are
// opaque tokens minted and validated upstream.
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

type userDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

func (d userDTO) ToDomain() model.User {
	return model.User{
		ID:        d.ID,
		Email:     d.Email,
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		AvatarURL: d.AvatarURL,
	}
}

type credentialedResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (model.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.postJSON(ctx, "/auth/login/", "", body)
	if err != nil {
		return model.User{}, "", err
	}
	defer resp.Body.Close()

	if err := remote.ClassifyMutation(resp.StatusCode); err != nil {
		return model.User{}, "", err
	}

	var out credentialedResponse
	if err := remote.DecodeJSON(resp, &out); err != nil {
		return model.User{}, "", err
	}
	return out.User.ToDomain(), out.Token, nil
}

func (c *Client) Register(ctx context.Context, email, username, password string) (model.User, string, error) {
	body := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}
	resp, err := c.postJSON(ctx, "/auth/register/", "", body)
	if err != nil {
		return model.User{}, "", err
	}
	defer resp.Body.Close()

	if err := remote.ClassifyMutation(resp.StatusCode); err != nil {
		return model.User{}, "", err
	}

	var out credentialedResponse
	if err := remote.DecodeJSON(resp, &out); err != nil {
		return model.User{}, "", err
	}
	return out.User.ToDomain(), out.Token, nil
}

// Profile is the authoritative "who am I" lookup. A 401 here means the
// credential is dead; anything else is transient and must not kill the
// cached identity.
func (c *Client) Profile(ctx context.Context, credential string) (model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/profile/", nil)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	remote.Authorize(req, credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := remote.ClassifyQuery(resp.StatusCode); err != nil {
		return model.User{}, err
	}

	var out struct {
		User userDTO `json:"user"`
	}
	if err := remote.DecodeJSON(resp, &out); err != nil {
		return model.User{}, err
	}
	return out.User.ToDomain(), nil
}

type ProfilePatch struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, credential string, patch ProfilePatch) (model.User, error) {
	jsonBody, err := json.Marshal(patch)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/auth/profile/update/", bytes.NewBuffer(jsonBody))
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")
	remote.Authorize(req, credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := remote.ClassifyMutation(resp.StatusCode); err != nil {
		return model.User{}, err
	}

	var out struct {
		User userDTO `json:"user"`
	}
	if err := remote.DecodeJSON(resp, &out); err != nil {
		return model.User{}, err
	}
	return out.User.ToDomain(), nil
}

func (c *Client) ChangePassword(ctx context.Context, credential, current, next string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	resp, err := c.postJSON(ctx, "/auth/change-password/", credential, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return remote.ClassifyMutation(resp.StatusCode)
}

// Logout invalidates the server-side credential. Failure is logged and
// swallowed: the local session dies either way.
func (c *Client) Logout(ctx context.Context, credential string) error {
	resp, err := c.postJSON(ctx, "/auth/logout/", credential, struct{}{})
	if err != nil {
		c.logger.Warn("upstream logout failed", slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if err := remote.ClassifyMutation(resp.StatusCode); err != nil {
		c.logger.Warn("upstream logout failed", slog.String("error", err.Error()))
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, credential string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")
	remote.Authorize(req, credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	return resp, nil
}
