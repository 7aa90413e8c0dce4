package remote_chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cinemind/gateway/internal/infra/remote"
	"github.com/cinemind/gateway/internal/model"
)

// Client fronts the recommendation assistant. All the intelligence lives
// upstream; the gateway only carries text and history back and forth.
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

type historyItemDTO struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

type sendRequestDTO struct {
	Message string           `json:"message"`
	History []historyItemDTO `json:"history"`
}

type recommendationDTO struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	PosterPath *string `json:"poster_path"`
	Overview   string  `json:"overview"`
}

type sendResponseDTO struct {
	ResponseText string              `json:"response_text"`
	Movies       []recommendationDTO `json:"movies"`
}

func (c *Client) Send(ctx context.Context, text string, history []model.ChatMessage) (model.ChatMessage, error) {
	reqDTO := sendRequestDTO{
		Message: text,
		History: make([]historyItemDTO, len(history)),
	}
	for i, m := range history {
		reqDTO.History[i] = historyItemDTO{
			Content: m.Content,
			Sender:  string(m.Sender),
		}
	}

	jsonBody, err := json.Marshal(reqDTO)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/", bytes.NewBuffer(jsonBody))
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := remote.ClassifyMutation(resp.StatusCode); err != nil {
		return model.ChatMessage{}, err
	}

	var out sendResponseDTO
	if err := remote.DecodeJSON(resp, &out); err != nil {
		return model.ChatMessage{}, err
	}

	reply := model.ChatMessage{
		Content: out.ResponseText,
		Sender:  model.SenderAssistant,
	}
	for _, r := range out.Movies {
		rec := model.Recommendation{
			ID:       r.ID,
			Title:    r.Title,
			Overview: r.Overview,
		}
		if r.PosterPath != nil {
			rec.PosterPath = *r.PosterPath
		}
		reply.Movies = append(reply.Movies, rec)
	}
	return reply, nil
}
