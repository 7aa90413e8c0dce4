//go:build !integration
// +build !integration

package usecase_chat

import (
	"context"
	"errors"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cinemind/gateway/internal/model"
	mocks "github.com/cinemind/gateway/internal/usecase/chat/mocks"
)

type UsecaseChatSuite struct {
	suite.Suite

	client  *mocks.AssistantClient
	history *mocks.HistoryRepository
	usecase *Usecase
	ctx     context.Context
}

func (s *UsecaseChatSuite) BeforeEach(t provider.T) {
	s.client = mocks.NewAssistantClient(t)
	s.history = mocks.NewHistoryRepository(t)
	s.usecase = New(s.client, s.history)
	s.ctx = context.Background()
}

func assistantReply() model.ChatMessage {
	return model.ChatMessage{
		Content: "Try Dune.",
		Sender:  model.SenderAssistant,
		Movies: []model.Recommendation{
			{ID: 7, Title: "Dune"},
		},
	}
}

func (s *UsecaseChatSuite) TestSend(t provider.T) {
	t.Run("Should send with transcript and persist both sides", func(t provider.T) {
		transcript := []model.ChatMessage{{Content: "hi", Sender: model.SenderUser}}
		reply := assistantReply()

		s.history.On("Load", model.SessionID("sid-1")).Return(transcript, nil).Once()
		s.client.On("Send", s.ctx, "recommend sci-fi", transcript).Return(reply, nil).Once()
		s.history.On("Append", model.SessionID("sid-1"),
			model.ChatMessage{Content: "recommend sci-fi", Sender: model.SenderUser}, reply).
			Return(nil).Once()

		got, err := s.usecase.Send(s.ctx, "sid-1", "recommend sci-fi")

		assert.NoError(t, err)
		assert.Equal(t, reply, got)
	})

	t.Run("Should still answer when the transcript is unavailable", func(t provider.T) {
		reply := assistantReply()

		s.history.On("Load", model.SessionID("sid-1")).
			Return(nil, errors.New("redis gone")).Once()
		s.client.On("Send", s.ctx, "recommend sci-fi", []model.ChatMessage(nil)).
			Return(reply, nil).Once()
		s.history.On("Append", model.SessionID("sid-1"), mock.Anything, mock.Anything).
			Return(nil).Once()

		got, err := s.usecase.Send(s.ctx, "sid-1", "recommend sci-fi")

		assert.NoError(t, err)
		assert.Equal(t, reply, got)
	})

	t.Run("Should wrap assistant failures", func(t provider.T) {
		s.history.On("Load", model.SessionID("sid-1")).Return(nil, nil).Once()
		s.client.On("Send", s.ctx, "hello", []model.ChatMessage(nil)).
			Return(model.ChatMessage{}, model.ErrTransient).Once()

		_, err := s.usecase.Send(s.ctx, "sid-1", "hello")

		assert.ErrorIs(t, err, ErrFailedToSend)
		assert.ErrorIs(t, err, model.ErrTransient)
	})

	t.Run("Should not lose the reply when persisting fails", func(t provider.T) {
		reply := assistantReply()

		s.history.On("Load", model.SessionID("sid-1")).Return(nil, nil).Once()
		s.client.On("Send", s.ctx, "hello", []model.ChatMessage(nil)).Return(reply, nil).Once()
		s.history.On("Append", model.SessionID("sid-1"), mock.Anything, mock.Anything).
			Return(errors.New("redis gone")).Once()

		got, err := s.usecase.Send(s.ctx, "sid-1", "hello")

		assert.NoError(t, err)
		assert.Equal(t, reply, got)
	})
}

func (s *UsecaseChatSuite) TestHistory(t provider.T) {
	t.Run("Should load the transcript", func(t provider.T) {
		transcript := []model.ChatMessage{{Content: "hi", Sender: model.SenderUser}}
		s.history.On("Load", model.SessionID("sid-1")).Return(transcript, nil).Once()

		got, err := s.usecase.History(s.ctx, "sid-1")

		assert.NoError(t, err)
		assert.Equal(t, transcript, got)
	})

	t.Run("Should wrap load failures", func(t provider.T) {
		s.history.On("Load", model.SessionID("sid-1")).
			Return(nil, errors.New("redis gone")).Once()

		_, err := s.usecase.History(s.ctx, "sid-1")

		assert.ErrorIs(t, err, ErrFailedToLoadHistory)
	})
}

func (s *UsecaseChatSuite) TestReset(t provider.T) {
	s.history.On("Clear", model.SessionID("sid-1")).Return(nil).Once()

	err := s.usecase.Reset(s.ctx, "sid-1")

	assert.NoError(t, err)
}

func TestUsecaseChatSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseChatSuite))
}
