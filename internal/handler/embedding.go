package handler

import (
	"errors"
	"fmt"
	"net/http"

	"openkey/internal/model"
	"openkey/internal/repository"
	"openkey/internal/service"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles embedding-related HTTP requests
type EmbeddingHandler struct {
	searchService *service.SearchService
	dimensions    int
}

// NewEmbeddingHandler creates a new embedding handler. Vectors must have
// the given length; 0 accepts any length.
func NewEmbeddingHandler(searchService *service.SearchService, dimensions int) *EmbeddingHandler {
	return &EmbeddingHandler{
		searchService: searchService,
		dimensions:    dimensions,
	}
}

// BatchUpdate handles POST /api/v1/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	for i, item := range req.Embeddings {
		if item.ProjectID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing project_id at index %d", i)})
			return
		}
		if h.dimensions > 0 && len(item.Embedding) != h.dimensions {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid embedding dimension at index %d, expected %d", i, h.dimensions),
			})
			return
		}
	}

	success, errs, err := h.searchService.UpdateEmbeddings(c.Request.Context(), req.Embeddings)
	if err != nil {
		if errors.Is(err, repository.ErrUnsupported) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update embeddings: " + err.Error()})
		return
	}

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errs,
	}

	if len(errs) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}
