package handler

import (
	"net/http"
	"strconv"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/gin-gonic/gin"
)

// CostHandler handles cost estimation endpoints.
type CostHandler struct {
	rate service.RateProvider
}

// NewCostHandler creates a new cost handler.
func NewCostHandler(rate service.RateProvider) *CostHandler {
	return &CostHandler{rate: rate}
}

// Estimate handles GET /api/v1/cost?photos=N&model=alias.
func (h *CostHandler) Estimate(c *gin.Context) {
	numPhotos, err := strconv.Atoi(c.DefaultQuery("photos", "1"))
	if err != nil || numPhotos < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'photos' must be a non-negative integer"})
		return
	}

	modelAlias := c.DefaultQuery("model", domain.ModelSimple)
	estimate := service.EstimateCost(c.Request.Context(), numPhotos, modelAlias, h.rate)
	c.JSON(http.StatusOK, estimate)
}

// Models handles GET /api/v1/models: the aliases callers may pick from.
func (h *CostHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"models":  domain.ModelAliases(),
		"default": domain.ModelSimple,
	})
}
