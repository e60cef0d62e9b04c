package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/gin-gonic/gin"
)

// Index is the caller-facing surface of the photo index consumed by the
// HTTP handlers.
type Index interface {
	EnsureCollection(ctx context.Context) error
	Exists(ctx context.Context, displayName string) bool
	IngestBatch(ctx context.Context, files []service.IncomingPhoto, modelAlias string) ([]service.FileResult, error)
	SearchByText(ctx context.Context, query string, k int) []domain.SearchHit
	ListAll(ctx context.Context) []domain.PhotoInfo
	DeleteByName(ctx context.Context, displayName string) error
	DeleteAll(ctx context.Context) error
}

// PhotoHandler handles photo upload, listing and deletion endpoints.
type PhotoHandler struct {
	index Index
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(index Index) *PhotoHandler {
	return &PhotoHandler{index: index}
}

// UploadResponse is the per-file batch outcome returned to the caller.
type UploadResponse struct {
	Results []service.FileResult `json:"results"`
	Skipped []string             `json:"skipped,omitempty"`
}

// Upload handles POST /api/v1/photos. Multipart form: one or more "files"
// parts, optional "model" alias and "rename_duplicates" flag. A file whose
// display name is already indexed is skipped unless rename_duplicates is
// set, in which case it is ingested as an intentional duplicate.
func (h *PhotoHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	modelAlias := c.PostForm("model")
	if modelAlias == "" {
		modelAlias = domain.ModelSimple
	}
	renameDuplicates, _ := strconv.ParseBool(c.PostForm("rename_duplicates"))

	ctx := c.Request.Context()
	var (
		files   []service.IncomingPhoto
		skipped []string
	)
	for _, fh := range fileHeaders {
		exists := h.index.Exists(ctx, fh.Filename)
		if exists && !renameDuplicates {
			skipped = append(skipped, fh.Filename)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read " + fh.Filename + ": " + err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read " + fh.Filename + ": " + err.Error()})
			return
		}

		files = append(files, service.IncomingPhoto{
			Data:             data,
			Filename:         fh.Filename,
			TreatAsDuplicate: exists,
		})
	}

	results, err := h.index.IngestBatch(ctx, files, modelAlias)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingest failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{Results: results, Skipped: skipped})
}

// List handles GET /api/v1/photos.
func (h *PhotoHandler) List(c *gin.Context) {
	photos := h.index.ListAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"photos": photos,
		"total":  len(photos),
	})
}

// Delete handles DELETE /api/v1/photos/:name.
func (h *PhotoHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.index.DeleteByName(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

// DeleteAll handles DELETE /api/v1/photos. Destructive: requires
// confirm=true so a stray request cannot wipe the index.
func (h *PhotoHandler) DeleteAll(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pass confirm=true to delete the entire index"})
		return
	}
	if err := h.index.DeleteAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Wipe failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "all"})
}
