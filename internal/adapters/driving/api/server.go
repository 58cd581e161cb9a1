// Package api exposes the document and chat pipeline over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
)

// Server routes HTTP requests to the driving services. The chat store
// is optional; without it the conversation routes return 503.
type Server struct {
	documents driving.DocumentService
	chat      driving.ChatService
	chatStore driven.ChatStore
	engine    *gin.Engine
}

// NewServer creates the API server and registers its routes.
func NewServer(documents driving.DocumentService, chat driving.ChatService, chatStore driven.ChatStore) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		documents: documents,
		chat:      chat,
		chatStore: chatStore,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/api/health", s.handleHealth)

	docs := s.engine.Group("/api/documents")
	{
		docs.POST("", s.handleUploadDocument)
		docs.GET("", s.handleListDocuments)
		docs.GET("/:id", s.handleGetDocument)
		docs.PATCH("/:id", s.handleRenameDocument)
		docs.DELETE("/:id", s.handleDeleteDocument)
	}

	s.engine.POST("/api/chat", s.handleChat)

	convs := s.engine.Group("/api/conversations")
	{
		convs.POST("", s.handleCreateConversation)
		convs.GET("", s.handleListConversations)
		convs.GET("/:id/messages", s.handleListMessages)
		convs.DELETE("/:id", s.handleDeleteConversation)
	}
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorResponse is the JSON error body shared by all routes.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain sentinels to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstreamTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
