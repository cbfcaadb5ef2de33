package services

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	parts   []string
	failAt  int
	err     error
	prompt  string
	image   []byte
	mime    string
	ctxDone func() <-chan struct{}
}

func (f *fakeGenerator) GenerateStream(ctx context.Context, prompt string, image []byte, mime string) iter.Seq2[string, error] {
	f.prompt, f.image, f.mime = prompt, image, mime
	f.ctxDone = ctx.Done
	return func(yield func(string, error) bool) {
		for i, p := range f.parts {
			if f.err != nil && i == f.failAt {
				yield("", f.err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if f.err != nil && f.failAt >= len(f.parts) {
			yield("", f.err)
		}
	}
}

func TestBridge_MissingKey(t *testing.T) {
	b := NewBridge(nil, 0, Image{})
	a := b.Ask(context.Background(), Question{Assistant: AssistantGuru, Text: "hi"})
	assert.False(t, a.Streaming())
	assert.Equal(t, MissingKeyText, a.Text)
}

func TestBridge_RequestError(t *testing.T) {
	gen := &fakeGenerator{parts: []string{"never"}, failAt: 0, err: errors.New("401 unauthorized")}
	a := NewBridge(gen, 0, Image{}).Ask(context.Background(), Question{Assistant: AssistantGuru, Text: "hi"})
	assert.False(t, a.Streaming())
	assert.Equal(t, RequestErrorText, a.Text)
}

func TestBridge_StreamsInOrder(t *testing.T) {
	gen := &fakeGenerator{parts: []string{"राम ", "सिया ", "राम"}}
	a := NewBridge(gen, time.Minute, Image{}).Ask(context.Background(), Question{Assistant: AssistantGuru, Text: "bhajan"})
	require.True(t, a.Streaming())
	assert.Equal(t, "राम सिया राम", Collect(a))
}

func TestBridge_MidStreamFailure(t *testing.T) {
	gen := &fakeGenerator{parts: []string{"one", "two"}, failAt: 1, err: errors.New("reset")}
	a := NewBridge(gen, 0, Image{}).Ask(context.Background(), Question{Assistant: AssistantGuru, Text: "x"})
	require.True(t, a.Streaming())
	assert.Equal(t, StreamErrorText, Collect(a))
}

func TestBridge_DarshanAttachesImage(t *testing.T) {
	img := Image{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"}

	gen := &fakeGenerator{parts: []string{"ok"}}
	Collect(NewBridge(gen, 0, img).Ask(context.Background(), Question{Assistant: AssistantDarshan, Text: "धनुष"}))
	assert.Equal(t, img.Data, gen.image)
	assert.Equal(t, "image/jpeg", gen.mime)
	assert.Contains(t, gen.prompt, "धनुष")

	gen = &fakeGenerator{parts: []string{"ok"}}
	Collect(NewBridge(gen, 0, img).Ask(context.Background(), Question{Assistant: AssistantGuru, Text: "x"}))
	assert.Nil(t, gen.image)
}

func TestBridge_TimeoutReleasedAfterStream(t *testing.T) {
	gen := &fakeGenerator{parts: []string{"a", "b"}}
	a := NewBridge(gen, time.Minute, Image{}).Ask(context.Background(), Question{Text: "x"})
	Collect(a)

	select {
	case <-gen.ctxDone():
	default:
		t.Fatal("request context still live after stream finished")
	}
}

func TestBuildPrompt(t *testing.T) {
	granth := BuildPrompt(Question{Assistant: AssistantGranth, Context: "Arjuna Vishada Yoga", Text: "Arjuna kyon dukhi the?"})
	assert.Contains(t, granth, "Arjuna Vishada Yoga")
	assert.Contains(t, granth, "Arjuna kyon dukhi the?")
	assert.True(t, strings.Index(granth, "Arjuna Vishada Yoga") < strings.Index(granth, "Arjuna kyon"))

	guru := BuildPrompt(Question{Assistant: AssistantGuru, Text: "Holi"})
	assert.Contains(t, guru, "रामोत्सव")
	assert.Contains(t, guru, `"Holi"`)
}
