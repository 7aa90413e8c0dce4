package usecase_chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinemind/gateway/internal/model"
)

var (
	ErrFailedToSend        = errors.New("failed to send chat message")
	ErrFailedToLoadHistory = errors.New("failed to load chat history")
)

type AssistantClient interface {
	Send(ctx context.Context, text string, history []model.ChatMessage) (model.ChatMessage, error)
}

type HistoryRepository interface {
	Append(sid model.SessionID, messages ...model.ChatMessage) error
	Load(sid model.SessionID) ([]model.ChatMessage, error)
	Clear(sid model.SessionID) error
}

// Usecase relays assistant exchanges. Recommendations are produced
// upstream; this side only keeps the transcript.
type Usecase struct {
	client  AssistantClient
	history HistoryRepository
	logger  *slog.Logger
}

func New(client AssistantClient, history HistoryRepository) *Usecase {
	return &Usecase{
		client:  client,
		history: history,
		logger:  slog.Default(),
	}
}

func (u *Usecase) Send(ctx context.Context, sid model.SessionID, text string) (model.ChatMessage, error) {
	history, err := u.history.Load(sid)
	if err != nil {
		// A lost transcript degrades the answer, it does not block it.
		u.logger.Warn("chat history unavailable", slog.String("sid", sid), slog.String("error", err.Error()))
		history = nil
	}

	reply, err := u.client.Send(ctx, text, history)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return model.ChatMessage{}, err
		}
		return model.ChatMessage{}, fmt.Errorf("%w: %w", ErrFailedToSend, err)
	}

	userMessage := model.ChatMessage{Content: text, Sender: model.SenderUser}
	if err := u.history.Append(sid, userMessage, reply); err != nil {
		u.logger.Warn("failed to persist chat history", slog.String("sid", sid), slog.String("error", err.Error()))
	}
	return reply, nil
}

func (u *Usecase) History(ctx context.Context, sid model.SessionID) ([]model.ChatMessage, error) {
	history, err := u.history.Load(sid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadHistory, err)
	}
	return history, nil
}

func (u *Usecase) Reset(ctx context.Context, sid model.SessionID) error {
	if err := u.history.Clear(sid); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToLoadHistory, err)
	}
	return nil
}
