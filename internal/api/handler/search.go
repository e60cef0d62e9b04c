package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles search endpoints.
type SearchHandler struct {
	index Index
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(index Index) *SearchHandler {
	return &SearchHandler{index: index}
}

// SearchRequest represents a text search request.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

// TextSearch handles POST /api/v1/search.
func (h *SearchHandler) TextSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	hits := h.index.SearchByText(c.Request.Context(), req.Query, req.TopK)
	c.JSON(http.StatusOK, gin.H{
		"results": hits,
		"total":   len(hits),
		"query":   req.Query,
	})
}

// TextSearchGet handles GET /api/v1/search for simple queries.
func (h *SearchHandler) TextSearchGet(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	topK := 0
	if v := c.Query("top_k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			topK = n
		}
	}

	hits := h.index.SearchByText(c.Request.Context(), query, topK)
	c.JSON(http.StatusOK, gin.H{
		"results": hits,
		"total":   len(hits),
		"query":   query,
	})
}
