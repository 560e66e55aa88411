package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/projeto-bia/bia-be/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ChatSession is a stateful conversation with a generative model.
type ChatSession interface {
	// SendStream forwards one message and returns the reply as a fragment
	// stream. The channel is closed on end-of-stream; a fragment carrying
	// Err terminates the stream.
	SendStream(ctx context.Context, message string) <-chan types.StreamFragment
}

// GeminiChat wraps one Gemini chat session created with a fixed system
// instruction. The session has two states: ready and disabled. Disabled is
// entered once, permanently, when construction fails; every later send then
// short-circuits to a fixed message without touching the network. There is
// no retry at this layer.
//
// The external turn history makes concurrent sends race, so sends are
// serialized with a mutex: one in-flight send per session.
type GeminiChat struct {
	mu       sync.Mutex
	session  *genai.ChatSession
	disabled bool
}

// NewGeminiChat starts the conversation. A construction failure is logged
// and yields a permanently disabled session, never an error.
func NewGeminiChat(ctx context.Context, apiKey, modelName, systemInstruction string) *GeminiChat {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Chat session initialization failed: %v", err)
		return &GeminiChat{disabled: true}
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return &GeminiChat{session: model.StartChat()}
}

func (c *GeminiChat) SendStream(ctx context.Context, message string) <-chan types.StreamFragment {
	out := make(chan types.StreamFragment)

	// Every send selects on ctx: a consumer that walks away mid-stream must
	// not leave this goroutine parked on a send while it holds the mutex,
	// or the session would be wedged for every later request.
	emit := func(fragment types.StreamFragment) bool {
		select {
		case out <- fragment:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if c.disabled {
		go func() {
			defer close(out)
			emit(types.StreamFragment{Text: SessionDisabledMessage})
		}()
		return out
	}

	go func() {
		defer close(out)
		c.mu.Lock()
		defer c.mu.Unlock()

		iter := c.session.SendMessageStream(ctx, genai.Text(message))
		for {
			resp, err := iter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				emit(types.StreamFragment{Err: err})
				return
			}
			for _, candidate := range resp.Candidates {
				if candidate.Content == nil {
					continue
				}
				for _, part := range candidate.Content.Parts {
					if text, ok := part.(genai.Text); ok {
						if !emit(types.StreamFragment{Text: string(text)}) {
							return
						}
					}
				}
			}
		}
	}()
	return out
}
