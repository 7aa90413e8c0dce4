package ws_chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cinemind/gateway/internal/model"
	usecase_chat "github.com/cinemind/gateway/internal/usecase/chat"
)

const (
	EventUserMessage    = "USER_MESSAGE"
	EventAssistantReply = "ASSISTANT_REPLY"
	EventError          = "ERROR"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
	sid  model.SessionID
}

type sessionEvent struct {
	sid   model.SessionID
	event Event
}

// Hub fans assistant replies out to every open tab of a session, so two
// windows of the same browser see one conversation.
type Hub struct {
	usecase    *usecase_chat.Usecase
	logger     *slog.Logger
	sessions   map[model.SessionID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan sessionEvent
	mu         sync.RWMutex
}

func NewHub(usecase *usecase_chat.Usecase) *Hub {
	return &Hub{
		usecase:    usecase,
		logger:     slog.Default(),
		sessions:   make(map[model.SessionID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan sessionEvent),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case se := <-h.broadcast:
			h.broadcastToSession(se.sid, se.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.sessions[client.sid]; !exists {
		h.sessions[client.sid] = make(map[*Client]bool)
	}
	h.sessions[client.sid][client] = true

	h.logger.Info("chat client registered", slog.String("sid", client.sid))
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.sessions[client.sid]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.sessions, client.sid)
			}
		}
	}

	h.logger.Info("chat client unregistered", slog.String("sid", client.sid))
}

func (h *Hub) broadcastToSession(sid model.SessionID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessions[sid] {
		select {
		case client.send <- event:
		default:
			// Slow consumer; drop it rather than stalling the session.
			close(client.send)
			delete(h.sessions[sid], client)
		}
	}
}

type messagePayload struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
	Movies  []any  `json:"movies,omitempty"`
}

func (h *Hub) handleMessage(ctx context.Context, sid model.SessionID, text string, from *Client) {
	reply, err := h.usecase.Send(ctx, sid, text)
	if err != nil {
		h.logger.Error("assistant exchange failed",
			slog.String("sid", sid),
			slog.String("error", err.Error()))
		select {
		case from.send <- Event{Type: EventError, Payload: "assistant unavailable"}:
		default:
		}
		return
	}

	// Echo the user message too so secondary tabs stay in sync.
	h.broadcast <- sessionEvent{sid: sid, event: Event{
		Type: EventUserMessage,
		Payload: messagePayload{Content: text, Sender: string(model.SenderUser)},
	}}
	h.broadcast <- sessionEvent{sid: sid, event: Event{
		Type:    EventAssistantReply,
		Payload: toPayload(reply),
	}}
}

func toPayload(m model.ChatMessage) messagePayload {
	p := messagePayload{
		Content: m.Content,
		Sender:  string(m.Sender),
	}
	for _, r := range m.Movies {
		p.Movies = append(p.Movies, r)
	}
	return p
}
