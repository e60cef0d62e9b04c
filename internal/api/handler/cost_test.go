package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCostRouter(rate service.RateProvider) *gin.Engine {
	r := gin.New()
	h := NewCostHandler(rate)
	r.GET("/cost", h.Estimate)
	r.GET("/models", h.Models)
	return r
}

func TestEstimate(t *testing.T) {
	router := newCostRouter(service.FixedRate(4.0))

	req := httptest.NewRequest(http.MethodGet, "/cost?photos=1000&model=advanced", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var est service.CostEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &est))
	assert.Equal(t, 44.03, est.TotalPLN)
	assert.Equal(t, 4.0, est.Breakdown.USDPLNRate)
}

func TestEstimateRejectsBadCount(t *testing.T) {
	router := newCostRouter(service.FixedRate(4.0))

	for _, q := range []string{"photos=-5", "photos=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/cost?"+q, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestModels(t *testing.T) {
	router := newCostRouter(service.FixedRate(4.0))

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Models  []string `json:"models"`
		Default string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"simple", "medium", "advanced"}, resp.Models)
	assert.Equal(t, "simple", resp.Default)
}
