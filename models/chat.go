package models

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatContext selects one of the persisted chat-session collections.
type ChatContext string

const (
	ChatDarshan ChatContext = "darshan"
	ChatGuru    ChatContext = "guru"
)

func (c ChatContext) Valid() bool {
	return c == ChatDarshan || c == ChatGuru
}

type AiMessage struct {
	Sender   Sender `json:"sender"`
	Text     string `json:"text"`
	AuthorID string `json:"author_id,omitempty"`
}

type AiChatSession struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Messages []AiMessage `json:"messages"`
}

func (s AiChatSession) Clone() AiChatSession {
	c := s
	c.Messages = append([]AiMessage{}, s.Messages...)
	return c
}
