package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projeto-bia/bia-be/service"
	"github.com/projeto-bia/bia-be/types"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
	}
}

// HandleChat answers POST /chat with the whole reply in one JSON body.
// Pipeline failures arrive as fixed-message fragments, so the status is
// always 200 once the request body parses.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var chatRequest types.ChatRequest
	if err := c.ShouldBindJSON(&chatRequest); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	response := h.chat.RespondBuffered(c.Request.Context(), chatRequest.Message)
	c.JSON(http.StatusOK, types.ChatResponse{Response: response})
}

// HandleChatStream answers POST /chat/stream as a server-sent-event stream,
// one event per fragment, in arrival order.
func (h *ChatHandler) HandleChatStream(c *gin.Context) {
	var chatRequest types.ChatRequest
	if err := c.ShouldBindJSON(&chatRequest); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	for fragment := range h.chat.Respond(c.Request.Context(), chatRequest.Message) {
		data, err := json.Marshal(types.ChatResponse{Response: fragment.Text})
		if err != nil {
			continue
		}
		c.Writer.WriteString("data: ")
		c.Writer.Write(data)
		c.Writer.WriteString("\n\n")
		c.Writer.Flush()
	}
}
