package infra_chat_history

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"

	"github.com/cinemind/gateway/internal/model"
)

// History keeps a rolling per-session transcript of assistant exchanges.
// The original client held this in browser storage; server-side it lives
// in a capped redis list.
type History struct {
	client *redis.Client
	prefix string
	limit  int
}

func New(client *redis.Client, prefix string, limit int) *History {
	return &History{
		client: client,
		prefix: prefix,
		limit:  limit,
	}
}

type messageDTO struct {
	Content string                 `json:"content"`
	Sender  string                 `json:"sender"`
	Movies  []model.Recommendation `json:"movies,omitempty"`
}

func (h *History) Append(sid model.SessionID, messages ...model.ChatMessage) error {
	key := h.fullKey(sid)
	for _, m := range messages {
		raw, err := json.Marshal(messageDTO{
			Content: m.Content,
			Sender:  string(m.Sender),
			Movies:  m.Movies,
		})
		if err != nil {
			return fmt.Errorf("failed to encode chat message: %w", err)
		}
		if err := h.client.RPush(key, string(raw)).Err(); err != nil {
			return fmt.Errorf("failed to append chat message: %w", err)
		}
	}

	if err := h.client.LTrim(key, int64(-h.limit), -1).Err(); err != nil {
		return fmt.Errorf("failed to trim chat history: %w", err)
	}
	return nil
}

func (h *History) Load(sid model.SessionID) ([]model.ChatMessage, error) {
	raws, err := h.client.LRange(h.fullKey(sid), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	messages := make([]model.ChatMessage, 0, len(raws))
	for _, raw := range raws {
		var dto messageDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		messages = append(messages, model.ChatMessage{
			Content: dto.Content,
			Sender:  model.ChatSender(dto.Sender),
			Movies:  dto.Movies,
		})
	}
	return messages, nil
}

func (h *History) Clear(sid model.SessionID) error {
	if err := h.client.Del(h.fullKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

func (h *History) fullKey(sid model.SessionID) string {
	if h.prefix != "" {
		return h.prefix + ":" + sid
	}
	return sid
}
