package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docuchat/docuchat/internal/core/domain"
)

type createConversationRequest struct {
	OwnerID    string `json:"owner_id" binding:"required"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
}

type conversationResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	DocumentID *string   `json:"document_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toConversationResponse(conv *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:         conv.ID,
		OwnerID:    conv.OwnerID,
		DocumentID: conv.DocumentID,
		Title:      conv.Title,
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
	}
}

// requireChatStore guards the conversation routes when persistence is
// not configured.
func (s *Server) requireChatStore(c *gin.Context) bool {
	if s.chatStore == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "conversation store not configured"})
		return false
	}
	return true
}

func (s *Server) handleCreateConversation(c *gin.Context) {
	if !s.requireChatStore(c) {
		return
	}

	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	now := time.Now()
	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		OwnerID:   req.OwnerID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.DocumentID != "" {
		conv.DocumentID = &req.DocumentID
	}

	if err := s.chatStore.SaveConversation(c.Request.Context(), conv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toConversationResponse(conv))
}

func (s *Server) handleListConversations(c *gin.Context) {
	if !s.requireChatStore(c) {
		return
	}

	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "owner_id query parameter is required"})
		return
	}

	convs, err := s.chatStore.ListConversations(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for i := range convs {
		out = append(out, toConversationResponse(&convs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

func (s *Server) handleListMessages(c *gin.Context) {
	if !s.requireChatStore(c) {
		return
	}

	id := c.Param("id")
	if _, err := s.chatStore.GetConversation(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	msgs, err := s.chatStore.ListMessages(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

func (s *Server) handleDeleteConversation(c *gin.Context) {
	if !s.requireChatStore(c) {
		return
	}

	if err := s.chatStore.DeleteConversation(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
