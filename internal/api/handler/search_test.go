package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchRouter(index *fakeIndex) *gin.Engine {
	r := gin.New()
	h := NewSearchHandler(index)
	r.POST("/search", h.TextSearch)
	r.GET("/search", h.TextSearchGet)
	return r
}

type searchResponse struct {
	Results []domain.SearchHit `json:"results"`
	Total   int                `json:"total"`
	Query   string             `json:"query"`
}

func TestTextSearch(t *testing.T) {
	index := &fakeIndex{hits: []domain.SearchHit{
		{DisplayName: "cat.jpg", Description: "a cat", Similarity: 0.92},
		{DisplayName: "dog.jpg", Description: "a dog", Similarity: 0.41},
	}}
	router := newSearchRouter(index)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"cat","top_k":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "cat", resp.Query)
	assert.Equal(t, "cat.jpg", resp.Results[0].DisplayName)
}

func TestTextSearchRequiresQuery(t *testing.T) {
	router := newSearchRouter(&fakeIndex{})

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"top_k":3}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTextSearchEmptyResult(t *testing.T) {
	// A degraded or empty search still answers 200 with an empty list
	router := newSearchRouter(&fakeIndex{})

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}

func TestTextSearchGet(t *testing.T) {
	index := &fakeIndex{hits: []domain.SearchHit{
		{DisplayName: "cat.jpg", Similarity: 0.9},
	}}
	router := newSearchRouter(index)

	req := httptest.NewRequest(http.MethodGet, "/search?q=cat&top_k=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "cat", resp.Query)
}

func TestTextSearchGetRequiresQuery(t *testing.T) {
	router := newSearchRouter(&fakeIndex{})

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
