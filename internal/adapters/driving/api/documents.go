package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docuchat/docuchat/internal/core/domain"
)

type uploadDocumentRequest struct {
	OwnerID  string `json:"owner_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	FilePath string `json:"file_path" binding:"required"`
}

type renameDocumentRequest struct {
	Name string `json:"name" binding:"required"`
}

type documentResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Name:      doc.Name,
		FilePath:  doc.FilePath,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	var req uploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	doc, err := s.documents.Upload(c.Request.Context(), req.OwnerID, req.Name, req.FilePath)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

func (s *Server) handleListDocuments(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "owner_id query parameter is required"})
		return
	}

	docs, err := s.documents.List(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleRenameDocument(c *gin.Context) {
	var req renameDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.documents.Rename(c.Request.Context(), id, req.Name); err != nil {
		writeError(c, err)
		return
	}

	doc, err := s.documents.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	if err := s.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
