package state

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/storage"
)

const (
	defaultChatTitle = "New Chat"
	chatGreeting     = "प्रणाम! मैं आपका AI गुरु हूँ। आप धर्म, ग्रंथ या किसी अन्य विषय पर क्या जानना चाहेंगे?"
	chatTitleRunes   = 30
)

func newChatSession() models.AiChatSession {
	return models.AiChatSession{
		ID:       uuid.NewString(),
		Title:    defaultChatTitle,
		Messages: []models.AiMessage{{Sender: models.SenderAI, Text: chatGreeting}},
	}
}

func chatTitle(firstMessage string) string {
	r := []rune(firstMessage)
	if len(r) <= chatTitleRunes {
		return firstMessage
	}
	return string(r[:chatTitleRunes]) + "..."
}

func chatKey(c models.ChatContext, userID string) string {
	return string(c) + "/" + userID
}

func assistantFor(c models.ChatContext) services.Assistant {
	if c == models.ChatDarshan {
		return services.AssistantDarshan
	}
	return services.AssistantGuru
}

// chatsFor never returns an empty collection: a missing or emptied one is
// replaced by a fresh default session.
func (a *App) chatsFor(ctx context.Context, c models.ChatContext, userID string) []models.AiChatSession {
	key := chatKey(c, userID)
	sessions, ok := a.chats[key]
	if !ok {
		sessions = storage.Load(ctx, a.store, storage.ChatSessionsKey(c, userID), []models.AiChatSession{})
	}
	if len(sessions) == 0 {
		sessions = []models.AiChatSession{newChatSession()}
	}
	a.chats[key] = sessions
	return sessions
}

func (a *App) saveChats(ctx context.Context, c models.ChatContext, userID string, sessions []models.AiChatSession) {
	a.chats[chatKey(c, userID)] = sessions
	storage.Save(ctx, a.store, storage.ChatSessionsKey(c, userID), sessions)
}

func (a *App) activeChat(c models.ChatContext, userID string, sessions []models.AiChatSession) string {
	key := chatKey(c, userID)
	if id, ok := a.active[key]; ok && chatIndex(sessions, id) >= 0 {
		return id
	}
	a.active[key] = sessions[0].ID
	return sessions[0].ID
}

func chatIndex(sessions []models.AiChatSession, id string) int {
	for i, s := range sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) ChatSessions(ctx context.Context, userID string, c models.ChatContext) ([]models.AiChatSession, string, error) {
	if !c.Valid() {
		return nil, "", ErrNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := a.chatsFor(ctx, c, userID)
	return sessions, a.activeChat(c, userID, sessions), nil
}

// CreateChatSession adds a fresh session at the top and makes it active.
func (a *App) CreateChatSession(ctx context.Context, userID string, c models.ChatContext) (models.AiChatSession, error) {
	if !c.Valid() {
		return models.AiChatSession{}, ErrNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	current := a.chatsFor(ctx, c, userID)
	s := newChatSession()
	next := make([]models.AiChatSession, 0, len(current)+1)
	next = append(next, s)
	a.saveChats(ctx, c, userID, append(next, current...))
	a.active[chatKey(c, userID)] = s.ID
	return s, nil
}

func (a *App) SelectChatSession(ctx context.Context, userID string, c models.ChatContext, id string) error {
	if !c.Valid() {
		return ErrNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if chatIndex(a.chatsFor(ctx, c, userID), id) < 0 {
		return ErrNotFound
	}
	a.active[chatKey(c, userID)] = id
	return nil
}

// DeleteChatSession removes a session and returns the active session id
// afterwards. Deleting the active one falls back to the first remaining;
// deleting the last one leaves a fresh default behind.
func (a *App) DeleteChatSession(ctx context.Context, userID string, c models.ChatContext, id string, confirm bool) (string, error) {
	if !c.Valid() {
		return "", ErrNotFound
	}
	if !confirm {
		return "", ErrConfirmationRequired
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	current := a.chatsFor(ctx, c, userID)
	i := chatIndex(current, id)
	if i < 0 {
		return "", ErrNotFound
	}
	active := a.activeChat(c, userID, current)

	next := make([]models.AiChatSession, 0, len(current))
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	if len(next) == 0 {
		next = append(next, newChatSession())
	}
	a.saveChats(ctx, c, userID, next)

	if active == id {
		delete(a.active, chatKey(c, userID))
	}
	return a.activeChat(c, userID, next), nil
}

// ReplyEvent reports one change to the AI placeholder message. Text is the
// full placeholder text after the change.
type ReplyEvent struct {
	Fragment string `json:"fragment,omitempty"`
	Text     string `json:"text"`
	Failed   bool   `json:"failed,omitempty"`
}

// Reply is the handle of one in-flight answer. Events are delivered in the
// order they were applied; the channel closes when the answer is finished
// or the handle is detached.
type Reply struct {
	SessionID string
	slot      int
	events    chan ReplyEvent

	mu       sync.Mutex
	detached bool
	done     chan struct{}
}

func (r *Reply) Events() <-chan ReplyEvent {
	return r.events
}

func (r *Reply) Done() <-chan struct{} {
	return r.done
}

// Detach stops further fragments from reaching the stored session.
func (r *Reply) Detach() {
	r.mu.Lock()
	r.detached = true
	r.mu.Unlock()
}

func (r *Reply) isDetached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detached
}

// SendChatMessage records the user's message and an empty AI placeholder,
// then fills the placeholder in the background. Cancelling ctx detaches the
// reply; fragments arriving later are dropped.
func (a *App) SendChatMessage(ctx context.Context, userID string, c models.ChatContext, sessionID, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("Please type a question.")
	}
	if !c.Valid() {
		return nil, ErrNotFound
	}

	a.mu.Lock()
	current := a.chatsFor(ctx, c, userID)
	i := chatIndex(current, sessionID)
	if i < 0 {
		a.mu.Unlock()
		return nil, ErrNotFound
	}
	s := current[i].Clone()
	firstQuestion := true
	for _, m := range s.Messages {
		if m.Sender == models.SenderUser {
			firstQuestion = false
			break
		}
	}
	if firstQuestion {
		s.Title = chatTitle(text)
	}
	s.Messages = append(s.Messages,
		models.AiMessage{Sender: models.SenderUser, Text: text, AuthorID: userID},
		models.AiMessage{Sender: models.SenderAI, Text: ""},
	)
	next := make([]models.AiChatSession, len(current))
	copy(next, current)
	next[i] = s
	a.saveChats(ctx, c, userID, next)
	a.mu.Unlock()

	r := &Reply{
		SessionID: sessionID,
		slot:      len(s.Messages) - 1,
		events:    make(chan ReplyEvent),
		done:      make(chan struct{}),
	}
	go a.fillReply(ctx, userID, c, r, services.Question{Assistant: assistantFor(c), Text: text})
	return r, nil
}

func (a *App) fillReply(ctx context.Context, userID string, c models.ChatContext, r *Reply, q services.Question) {
	defer close(r.done)
	defer close(r.events)

	answer := services.Answer{Text: services.MissingKeyText}
	if a.asker != nil {
		answer = a.asker.Ask(ctx, q)
	}
	if !answer.Streaming() {
		a.applyReply(ctx, userID, c, r, answer.Text, true, false)
		return
	}
	for frag, err := range answer.Stream {
		if ctx.Err() != nil {
			r.Detach()
			return
		}
		if err != nil {
			a.applyReply(ctx, userID, c, r, services.StreamErrorText, true, true)
			return
		}
		if !a.applyReply(ctx, userID, c, r, frag, false, false) {
			return
		}
	}
}

// applyReply writes one change into the placeholder and publishes it. It
// reports false once the handle is detached or its target is gone.
func (a *App) applyReply(ctx context.Context, userID string, c models.ChatContext, r *Reply, text string, replace, failed bool) bool {
	if r.isDetached() {
		return false
	}
	persistCtx := context.WithoutCancel(ctx)

	a.mu.Lock()
	current := a.chatsFor(persistCtx, c, userID)
	i := chatIndex(current, r.SessionID)
	if i < 0 || r.slot >= len(current[i].Messages) {
		a.mu.Unlock()
		r.Detach()
		return false
	}
	s := current[i].Clone()
	if replace {
		s.Messages[r.slot].Text = text
	} else {
		s.Messages[r.slot].Text += text
	}
	next := make([]models.AiChatSession, len(current))
	copy(next, current)
	next[i] = s
	a.saveChats(persistCtx, c, userID, next)
	full := s.Messages[r.slot].Text
	a.mu.Unlock()

	ev := ReplyEvent{Text: full, Failed: failed}
	if !replace {
		ev.Fragment = text
	}
	select {
	case r.events <- ev:
		return true
	case <-ctx.Done():
		r.Detach()
		return false
	}
}
