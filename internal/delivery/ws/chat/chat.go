package ws_chat

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	http_auth_middleware "github.com/cinemind/gateway/internal/delivery/http/middleware/auth"
)

type Controller struct {
	hub        *Hub
	middleware *http_auth_middleware.Middleware
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

func NewController(hub *Hub, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		hub:        hub,
		middleware: middleware,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // fronted by the reverse proxy
			},
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	ws := router.Group("/ws")
	ws.Use(c.middleware.WithSession(), c.middleware.EnsureSession())
	ws.GET("/chat", c.serve)
}

func (c *Controller) serve(ctx *gin.Context) {
	session := http_auth_middleware.SessionFrom(ctx)

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:  c.hub,
		conn: conn,
		send: make(chan Event, 8),
		sid:  session.ID,
	}
	c.hub.register <- client

	go client.writePump()
	client.readPump()
}

type inboundEvent struct {
	Type    string `json:"type"`
	Payload struct {
		Message string `json:"message"`
	} `json:"payload"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		var in inboundEvent
		if err := c.conn.ReadJSON(&in); err != nil {
			break
		}
		if in.Type != EventUserMessage || in.Payload.Message == "" {
			continue
		}
		// The exchange is tied to the connection's lifetime, not to a
		// single HTTP request.
		go c.hub.handleMessage(context.Background(), c.sid, in.Payload.Message, c)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
