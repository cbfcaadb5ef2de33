package services

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

type Assistant string

const (
	AssistantDarshan Assistant = "darshan"
	AssistantGranth  Assistant = "granth"
	AssistantGuru    Assistant = "guru"
)

func (a Assistant) Valid() bool {
	return a == AssistantDarshan || a == AssistantGranth || a == AssistantGuru
}

const (
	MissingKeyText   = "क्षमस्व, AI से जुड़ने के लिए API कुंजी की आवश्यकता है।"
	RequestErrorText = "क्षमस्व, AI से संपर्क करते समय एक त्रुटि हुई।"
	StreamErrorText  = "An error occurred while streaming the response."
)

type Question struct {
	Assistant Assistant
	// Context is the scripture text a granth question is asked against.
	Context string
	Text    string
}

// Answer is either a finished Text or a Stream of fragments. A Stream must
// be ranged over once; stopping early releases the request.
type Answer struct {
	Text   string
	Stream iter.Seq2[string, error]
}

func (a Answer) Streaming() bool {
	return a.Stream != nil
}

// Generator is the generative model boundary. Errors may surface on the
// first fragment or later.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string, image []byte, mimeType string) iter.Seq2[string, error]
}

type Image struct {
	Data     []byte
	MIMEType string
}

type Bridge struct {
	gen          Generator
	timeout      time.Duration
	darshanImage Image
}

// NewBridge returns a bridge that answers with MissingKeyText when gen is
// nil. A zero timeout leaves requests unbounded.
func NewBridge(gen Generator, timeout time.Duration, darshanImage Image) *Bridge {
	return &Bridge{gen: gen, timeout: timeout, darshanImage: darshanImage}
}

// Ask sends q to the model. It waits for the first fragment so that a
// request that fails outright becomes a RequestErrorText answer.
func (b *Bridge) Ask(ctx context.Context, q Question) Answer {
	if b.gen == nil {
		return Answer{Text: MissingKeyText}
	}

	cancel := context.CancelFunc(func() {})
	if b.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
	}

	prompt := BuildPrompt(q)
	var img Image
	if q.Assistant == AssistantDarshan {
		img = b.darshanImage
	}

	next, stop := iter.Pull2(b.gen.GenerateStream(ctx, prompt, img.Data, img.MIMEType))
	first, err, ok := next()
	if err != nil {
		stop()
		cancel()
		logger.Log.Error("ai request failed", zap.String("assistant", string(q.Assistant)), zap.Error(err))
		return Answer{Text: RequestErrorText}
	}
	if !ok {
		stop()
		cancel()
		return Answer{Text: ""}
	}

	return Answer{Stream: func(yield func(string, error) bool) {
		defer cancel()
		defer stop()
		if !yield(first, nil) {
			return
		}
		for {
			frag, err, ok := next()
			if !ok {
				return
			}
			if err != nil {
				logger.Log.Warn("ai stream interrupted", zap.String("assistant", string(q.Assistant)), zap.Error(err))
				yield("", err)
				return
			}
			if !yield(frag, nil) {
				return
			}
		}
	}}
}

// Collect drains an answer into one string, substituting StreamErrorText
// when the stream fails.
func Collect(a Answer) string {
	if !a.Streaming() {
		return a.Text
	}
	text := ""
	for frag, err := range a.Stream {
		if err != nil {
			return StreamErrorText
		}
		text += frag
	}
	return text
}
