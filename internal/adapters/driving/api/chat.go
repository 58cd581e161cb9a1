package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuchat/docuchat/internal/core/domain"
)

type chatRequest struct {
	DocumentID     string `json:"document_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
	Stream         bool   `json:"stream"`
}

// handleChat runs one chat turn. Failures come back as a structured
// ChatResult with HTTP 200; the pipeline converts them at its boundary
// and this handler does not second-guess it. Streaming requests get an
// SSE stream of token events followed by a done event with the full
// result.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	if req.Stream {
		s.streamChat(c, req)
		return
	}

	var result domain.ChatResult
	if req.ConversationID != "" {
		result = s.chat.Converse(ctx, req.ConversationID, req.DocumentID, req.Message)
	} else {
		result = s.chat.SendMessage(ctx, req.DocumentID, req.Message)
	}
	c.JSON(http.StatusOK, result)
}

// streamChat forwards generation tokens as SSE events in order. The
// client going away cancels the request context, which aborts the
// upstream call.
func (s *Server) streamChat(c *gin.Context, req chatRequest) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)

	onToken := func(token string) error {
		c.SSEvent("token", token)
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	ctx := c.Request.Context()
	var result domain.ChatResult
	if req.ConversationID != "" {
		result = s.chat.ConverseStream(ctx, req.ConversationID, req.DocumentID, req.Message, onToken)
	} else {
		result = s.chat.SendMessageStream(ctx, req.DocumentID, req.Message, onToken)
	}

	c.SSEvent("done", result)
	if flusher != nil {
		flusher.Flush()
	}
}
