package handler

import (
	"errors"
	"net/http"
	"strconv"

	"openkey/internal/model"
	"openkey/internal/repository"
	"openkey/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
	logger        *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Parse handles POST /api/v1/parse
func (h *SearchHandler) Parse(c *gin.Context) {
	var req model.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	intent, err := h.searchService.ParseIntent(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ParseResponse{Intent: intent})
}

// GetProject handles GET /api/v1/projects/:id
func (h *SearchHandler) GetProject(c *gin.Context) {
	project, err := h.searchService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// SimilarProjects handles GET /api/v1/projects/:id/similar?limit=N
func (h *SearchHandler) SimilarProjects(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	similar, err := h.searchService.SimilarProjects(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnsupported):
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not embedded"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find similar projects: " + err.Error()})
		}
		return
	}

	if similar == nil {
		similar = []model.SimilarProject{}
	}
	c.JSON(http.StatusOK, gin.H{"project_id": c.Param("id"), "results": similar})
}
