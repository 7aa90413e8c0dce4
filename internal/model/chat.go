package model

type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "ai"
)

type Recommendation struct {
	ID         MovieID
	Title      string
	PosterPath string
	Overview   string
}

type ChatMessage struct {
	Content string
	Sender  ChatSender
	Movies  []Recommendation
}
