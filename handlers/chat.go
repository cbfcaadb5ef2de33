package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/metrics"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/state"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func chatContext(w http.ResponseWriter, r *http.Request) (models.ChatContext, bool) {
	c := models.ChatContext(mux.Vars(r)["context"])
	if !c.Valid() {
		http.Error(w, "Unknown chat", http.StatusNotFound)
		return "", false
	}
	return c, true
}

type chatSessionsResponse struct {
	Sessions []models.AiChatSession `json:"sessions"`
	ActiveID string                 `json:"active_id"`
}

func GetChatSessions(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		sessions, active, err := app.ChatSessions(r.Context(), actor(r), c)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, chatSessionsResponse{Sessions: sessions, ActiveID: active})
	}
}

func CreateChatSession(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		s, err := app.CreateChatSession(r.Context(), actor(r), c)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func SelectChatSession(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		id := mux.Vars(r)["sessionId"]
		if err := app.SelectChatSession(r.Context(), actor(r), c, id); err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"active_id": id})
	}
}

func DeleteChatSession(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		active, err := app.DeleteChatSession(r.Context(), actor(r), c, mux.Vars(r)["sessionId"], confirmed(r))
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"active_id": active})
	}
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

type chatMessageResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Failed    bool   `json:"failed,omitempty"`
}

// SendChatMessage waits for the whole answer before responding. If the
// client goes away first the answer keeps what it had and stops growing.
func SendChatMessage(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		var req chatMessageRequest
		if !decode(w, r, &req) {
			return
		}
		reply, err := app.SendChatMessage(r.Context(), actor(r), c, mux.Vars(r)["sessionId"], req.Text)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		var last state.ReplyEvent
		for ev := range reply.Events() {
			last = ev
		}
		metrics.RecordAIAnswer(string(c), replyOutcome(last))
		writeJSON(w, http.StatusOK, chatMessageResponse{SessionID: reply.SessionID, Reply: last.Text, Failed: last.Failed})
	}
}

type streamFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Fragment  string `json:"fragment,omitempty"`
	Text      string `json:"text,omitempty"`
	Failed    bool   `json:"failed,omitempty"`
	Message   string `json:"message,omitempty"`
}

// StreamChat upgrades to a websocket. Every {"text": ...} frame the client
// sends is asked in the session and answered with fragment frames and a
// closing done frame. Closing the socket abandons the answer in flight.
func StreamChat(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := chatContext(w, r)
		if !ok {
			return
		}
		userID := actor(r)
		sessionID := mux.Vars(r)["sessionId"]

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warn("chat upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		defer cancel()
		questions := readFrames(ctx, cancel, conn)

		for {
			var req chatMessageRequest
			select {
			case <-ctx.Done():
				return
			case req, ok = <-questions:
				if !ok {
					return
				}
			}

			reply, err := app.SendChatMessage(ctx, userID, c, sessionID, req.Text)
			if err != nil {
				if writeFrame(conn, streamFrame{Type: "error", Message: err.Error()}) != nil {
					return
				}
				continue
			}
			var last state.ReplyEvent
			for ev := range reply.Events() {
				last = ev
				if err := writeFrame(conn, streamFrame{Type: "fragment", Fragment: ev.Fragment, Text: ev.Text, Failed: ev.Failed}); err != nil {
					cancel()
				}
			}
			metrics.RecordAIAnswer(string(c), replyOutcome(last))
			if writeFrame(conn, streamFrame{Type: "done", SessionID: reply.SessionID, Text: last.Text, Failed: last.Failed}) != nil {
				return
			}
		}
	}
}

// readFrames decodes client frames until the socket closes, then cancels.
func readFrames(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) <-chan chatMessageRequest {
	out := make(chan chatMessageRequest)
	go func() {
		defer cancel()
		defer close(out)
		for {
			var req chatMessageRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			select {
			case out <- req:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func writeFrame(conn *websocket.Conn, f streamFrame) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}

func replyOutcome(ev state.ReplyEvent) string {
	switch {
	case ev.Failed:
		return "stream_error"
	case ev.Text == services.MissingKeyText:
		return "missing_key"
	case ev.Text == services.RequestErrorText:
		return "request_error"
	}
	return "ok"
}

type granthQuestion struct {
	Question string `json:"question"`
}

type granthAnswer struct {
	PostID string `json:"post_id"`
	Answer string `json:"answer"`
}

// AskGranth answers a one-off question about a scripture post. Nothing is
// stored.
func AskGranth(app *state.App, asker state.Asker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.Post(mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		var req granthQuestion
		if !decode(w, r, &req) {
			return
		}
		req.Question = strings.TrimSpace(req.Question)
		if req.Question == "" {
			writeMessage(w, http.StatusBadRequest, "Please type a question.")
			return
		}

		answer := services.Answer{Text: services.MissingKeyText}
		if asker != nil {
			answer = asker.Ask(r.Context(), services.Question{
				Assistant: services.AssistantGranth,
				Context:   p.Title + "\n" + p.Description,
				Text:      req.Question,
			})
		}
		text := services.Collect(answer)
		metrics.RecordAIAnswer(string(services.AssistantGranth), replyOutcome(state.ReplyEvent{
			Text:   text,
			Failed: text == services.StreamErrorText,
		}))
		writeJSON(w, http.StatusOK, granthAnswer{PostID: p.ID, Answer: text})
	}
}
