package service

import (
	"context"
	"log"
	"strings"

	"github.com/projeto-bia/bia-be/types"
)

// ChatService runs the full request pipeline: trim, safety check, context
// retrieval, room suggestion, prompt composition, model send. Both response
// modes (buffered and streaming) and the websocket endpoint consume the
// fragment stream it returns.
type ChatService struct {
	index     *IndexService
	session   ChatSession
	catalogue []types.SupportRoom
	contextK  int
}

func NewChatService(index *IndexService, session ChatSession, catalogue []types.SupportRoom) *ChatService {
	return &ChatService{
		index:     index,
		session:   session,
		catalogue: catalogue,
		contextK:  DefaultContextK,
	}
}

// Respond handles one user message. Collaborator failures never escape as
// errors: they surface as a single fixed-message fragment.
func (s *ChatService) Respond(ctx context.Context, message string) <-chan types.StreamFragment {
	input := strings.TrimSpace(message)

	if IsDisallowed(input) {
		return singleFragment(SafetyMessage)
	}

	ragContext, err := s.index.RelevantContext(ctx, input, s.contextK)
	if err != nil {
		log.Printf("Context retrieval failed: %v", err)
		return singleFragment(AnswerErrorMessage)
	}

	var rooms []types.SupportRoom
	if WantsSupportRoom(input) && len(s.catalogue) > 0 {
		rooms = SelectRooms(input, s.catalogue)
	}

	prompt := ComposePrompt(input, ragContext, rooms)
	return degradeErrors(ctx, s.session.SendStream(ctx, prompt))
}

// RespondBuffered collects the whole fragment stream into one reply string.
func (s *ChatService) RespondBuffered(ctx context.Context, message string) string {
	var b strings.Builder
	for fragment := range s.Respond(ctx, message) {
		b.WriteString(fragment.Text)
	}
	return b.String()
}

func singleFragment(text string) <-chan types.StreamFragment {
	out := make(chan types.StreamFragment, 1)
	out <- types.StreamFragment{Text: text}
	close(out)
	return out
}

// degradeErrors maps an error-terminated stream into a user-visible fixed
// message. The cause stays in the server log only. Sends select on ctx so
// an abandoned consumer does not strand the forwarding goroutine.
func degradeErrors(ctx context.Context, in <-chan types.StreamFragment) <-chan types.StreamFragment {
	out := make(chan types.StreamFragment)
	go func() {
		defer close(out)
		for fragment := range in {
			if fragment.Err != nil {
				log.Printf("Chat send failed: %v", fragment.Err)
				select {
				case out <- types.StreamFragment{Text: AnswerErrorMessage}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- fragment:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
