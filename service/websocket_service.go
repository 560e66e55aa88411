package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/projeto-bia/bia-be/types"
)

const wsReadDeadline = 60 * time.Second

// WebSocketService streams chat replies over a websocket connection using
// the same pipeline as the HTTP endpoints.
type WebSocketService struct {
	chat     *ChatService
	upgrader websocket.Upgrader
}

func NewWebSocketService(chat *ChatService) *WebSocketService {
	return &WebSocketService{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	for {
		var req types.WebsocketRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Websocket read error:", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			payload, err := decodeChatPayload(req.Payload)
			if err != nil {
				conn.WriteJSON(types.WebSocketResponse{
					Type:    types.TypeWebsocketError,
					Payload: "invalid chat payload",
				})
				continue
			}
			// The request context is not canceled when a hijacked connection
			// drops, so a write failure must cancel the pipeline itself and
			// drain it; otherwise the upstream send would block forever.
			ctx, cancel := context.WithCancel(r.Context())
			fragments := s.chat.Respond(ctx, payload.Message)
			for fragment := range fragments {
				err := conn.WriteJSON(types.WebSocketResponse{
					Type:    types.TypeWebsocketChat,
					Payload: types.WebSocketChatResponse{Response: fragment.Text},
				})
				if err != nil {
					log.Println("Websocket write error:", err)
					cancel()
					for range fragments {
					}
					return
				}
			}
			cancel()
			conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketDone})
		default:
			conn.WriteJSON(types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type",
			})
		}
	}
}

func decodeChatPayload(payload interface{}) (*types.WebSocketChatPayload, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var chat types.WebSocketChatPayload
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}
