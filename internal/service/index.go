package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/logger"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/repository"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/storage"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	// defaultTopK is the result count when the caller does not pick one.
	defaultTopK = 5

	// listScanLimit bounds dedup/list/delete scans.
	listScanLimit = 10000
)

// PhotoIndex orchestrates the ingest and search pipelines over injected
// vision, embedding, vector store and photo storage dependencies.
type PhotoIndex struct {
	store    VectorStore
	vision   VisionProvider
	embedder EmbeddingProvider
	photos   storage.PhotoStorage
	logger   *logger.Logger
}

// NewPhotoIndex creates the orchestrator. All dependencies are explicit;
// the index holds no package-level state.
func NewPhotoIndex(store VectorStore, vision VisionProvider, embedder EmbeddingProvider, photos storage.PhotoStorage, log *logger.Logger) *PhotoIndex {
	return &PhotoIndex{
		store:    store,
		vision:   vision,
		embedder: embedder,
		photos:   photos,
		logger:   log,
	}
}

// log returns a logger from context if available, otherwise the injected one.
func (x *PhotoIndex) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return x.logger
}

// EnsureCollection makes sure the collection exists with the configured
// dimensionality and metric. Fatal when it fails: nothing else can succeed.
func (x *PhotoIndex) EnsureCollection(ctx context.Context) error {
	return x.store.EnsureCollection(ctx)
}

// Exists reports whether a photo with this display name is already indexed.
// An inconclusive check (scan failure) returns false, not an error, so it
// never blocks ingestion.
func (x *PhotoIndex) Exists(ctx context.Context, displayName string) bool {
	if err := x.store.EnsureCollection(ctx); err != nil {
		x.log(ctx).WithError(err).Warn("Duplicate check inconclusive: collection unavailable")
		return false
	}

	points, err := x.store.ScrollAll(ctx, listScanLimit)
	if err != nil {
		x.log(ctx).WithError(err).Warn("Duplicate check inconclusive: scan failed")
		return false
	}

	for _, p := range points {
		if p.Payload != nil && p.Payload.DisplayName == displayName {
			return true
		}
	}
	return false
}

// IncomingPhoto is one file submitted for ingestion. TreatAsDuplicate is
// the caller's decision, made before ingest, that this file should coexist
// with an already-indexed photo of the same name.
type IncomingPhoto struct {
	Data             []byte
	Filename         string
	TreatAsDuplicate bool
}

// FileStatus is the per-file outcome of a batch.
type FileStatus string

const (
	FileStatusOK     FileStatus = "ok"
	FileStatusFailed FileStatus = "failed"
)

// FileResult is the structured per-file outcome of an ingest batch.
type FileResult struct {
	Filename    string     `json:"filename"`
	DisplayName string     `json:"display_name,omitempty"`
	StoredPath  string     `json:"stored_path,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      FileStatus `json:"status"`
	Reason      string     `json:"reason,omitempty"`
}

// IngestResult is the success-only view of one processed file.
type IngestResult struct {
	Description string `json:"description"`
	StoredPath  string `json:"stored_path"`
}

// Successes filters a batch result down to the successful entries.
func Successes(results []FileResult) []IngestResult {
	out := make([]IngestResult, 0, len(results))
	for _, r := range results {
		if r.Status == FileStatusOK {
			out = append(out, IngestResult{Description: r.Description, StoredPath: r.StoredPath})
		}
	}
	return out
}

// IngestBatch processes files sequentially in submission order. A failure
// on one file is recorded and the batch continues; only a collection
// provisioning failure aborts the whole batch.
func (x *PhotoIndex) IngestBatch(ctx context.Context, files []IncomingPhoto, modelAlias string) ([]FileResult, error) {
	if err := x.store.EnsureCollection(ctx); err != nil {
		return nil, err
	}

	ctx = x.log(ctx).WithField(logger.FieldBatchID, uuid.New().String()).WithContext(ctx)

	start := time.Now()
	results := make([]FileResult, 0, len(files))
	failed := 0

	for i, file := range files {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		x.log(ctx).WithFields(logger.Fields{
			logger.FieldPhoto: file.Filename,
			"index":           fmt.Sprintf("%d/%d", i+1, len(files)),
		}).Info("Processing photo")

		result := x.ingestOne(ctx, &file, modelAlias)
		if result.Status == FileStatusFailed {
			failed++
			x.log(ctx).WithFields(logger.Fields{
				logger.FieldPhoto: file.Filename,
			}).Error("Failed to process photo: " + result.Reason)
		}
		results = append(results, result)
	}

	x.log(ctx).WithFields(logger.Fields{
		"total":                 len(files),
		"failed":                failed,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info("Batch ingest completed")

	return results, nil
}

func (x *PhotoIndex) ingestOne(ctx context.Context, file *IncomingPhoto, modelAlias string) FileResult {
	result := FileResult{Filename: file.Filename, Status: FileStatusFailed}

	storedName, err := x.resolveStoredName(ctx, file.Filename, file.TreatAsDuplicate)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to resolve stored name: %v", err)
		return result
	}
	result.DisplayName = storedName

	if width, height, err := imageDimensions(file.Data); err == nil {
		x.log(ctx).WithFields(logger.Fields{
			logger.FieldPhoto: storedName,
			"width":           width,
			"height":          height,
		}).Debug("Decoded image dimensions")
	}

	// Vision call first: it is the most likely to fail and nothing has
	// been persisted yet.
	description, err := x.vision.Describe(ctx, file.Data, file.Filename, modelAlias)
	if err != nil {
		result.Reason = err.Error()
		return result
	}
	result.Description = description

	storedPath, err := x.photos.Save(ctx, storedName, file.Data)
	if err != nil {
		result.Reason = err.Error()
		return result
	}
	result.StoredPath = storedPath

	vector, err := x.embedder.Embed(ctx, description)
	if err != nil {
		result.Reason = err.Error()
		return result
	}

	id := domain.RecordID(description, storedName)
	payload := &repository.PhotoPayload{
		Description: description,
		SourcePath:  storedPath,
		DisplayName: storedName,
	}
	if err := x.store.Upsert(ctx, id, vector, payload); err != nil {
		result.Reason = err.Error()
		return result
	}

	result.Status = FileStatusOK
	return result
}

// resolveStoredName picks the filename the photo is stored under. A file
// the caller marked as an intentional duplicate gets a numeric suffix
// (a.jpg -> a_1.jpg); whenever the candidate already exists in storage the
// counter keeps climbing from 2 (a_2.jpg, a_3.jpg, ...) until a free name
// is found.
func (x *PhotoIndex) resolveStoredName(ctx context.Context, filename string, treatAsDuplicate bool) (string, error) {
	base, ext := splitExt(filename)

	name := filename
	if treatAsDuplicate {
		name = fmt.Sprintf("%s_1%s", base, ext)
	}

	for counter := 2; ; counter++ {
		exists, err := x.photos.Exists(ctx, name)
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
}

func splitExt(filename string) (string, string) {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx], filename[idx:]
	}
	return filename, ""
}

func imageDimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// SearchByText embeds the query and returns the k nearest photos with
// their similarity scores in the backend's descending order. Any failure
// degrades to an empty result list; search never surfaces an error to the
// caller layer.
func (x *PhotoIndex) SearchByText(ctx context.Context, query string, k int) []domain.SearchHit {
	if k <= 0 {
		k = defaultTopK
	}

	if err := x.store.EnsureCollection(ctx); err != nil {
		x.log(ctx).WithError(err).Error("Search unavailable: collection provisioning failed")
		return []domain.SearchHit{}
	}

	vector, err := x.embedder.Embed(ctx, query)
	if err != nil {
		x.log(ctx).WithError(err).Error("Search degraded: query embedding failed")
		return []domain.SearchHit{}
	}

	scored, err := x.store.Search(ctx, vector, k)
	if err != nil {
		x.log(ctx).WithError(err).Error("Search degraded: vector search failed")
		return []domain.SearchHit{}
	}

	hits := make([]domain.SearchHit, 0, len(scored))
	for _, s := range scored {
		if s.Payload == nil {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Description: s.Payload.Description,
			SourcePath:  s.Payload.SourcePath,
			DisplayName: s.Payload.DisplayName,
			Similarity:  s.Score,
		})
	}

	x.log(ctx).WithFields(logger.Fields{
		"query":           query,
		logger.FieldCount: len(hits),
	}).Info("Search completed")

	return hits
}

// ListAll returns one entry per distinct display name, first seen wins, in
// the backend's scan order. Scan failure degrades to an empty list.
func (x *PhotoIndex) ListAll(ctx context.Context) []domain.PhotoInfo {
	if err := x.store.EnsureCollection(ctx); err != nil {
		x.log(ctx).WithError(err).Error("Listing unavailable: collection provisioning failed")
		return []domain.PhotoInfo{}
	}

	points, err := x.store.ScrollAll(ctx, listScanLimit)
	if err != nil {
		x.log(ctx).WithError(err).Error("Listing degraded: scan failed")
		return []domain.PhotoInfo{}
	}

	seen := make(map[string]struct{}, len(points))
	photos := make([]domain.PhotoInfo, 0, len(points))
	for _, p := range points {
		if p.Payload == nil || p.Payload.DisplayName == "" {
			continue
		}
		if _, ok := seen[p.Payload.DisplayName]; ok {
			continue
		}
		seen[p.Payload.DisplayName] = struct{}{}
		photos = append(photos, domain.PhotoInfo{
			DisplayName: p.Payload.DisplayName,
			Description: p.Payload.Description,
			SourcePath:  p.Payload.SourcePath,
			ID:          p.ID,
		})
	}
	return photos
}

// DeleteByName removes every record whose display name matches, covering
// the duplicate-tolerant storage model where one logical photo may have
// several records.
func (x *PhotoIndex) DeleteByName(ctx context.Context, displayName string) error {
	if err := x.store.EnsureCollection(ctx); err != nil {
		return err
	}

	points, err := x.store.ScrollAll(ctx, listScanLimit)
	if err != nil {
		return fmt.Errorf("failed to scan for %q: %w", displayName, err)
	}

	var ids []uint64
	for _, p := range points {
		if p.Payload != nil && p.Payload.DisplayName == displayName {
			ids = append(ids, p.ID)
		}
	}

	if len(ids) == 0 {
		x.log(ctx).WithField(logger.FieldPhoto, displayName).Info("No records to delete")
		return nil
	}

	if err := x.store.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete records for %q: %w", displayName, err)
	}

	x.log(ctx).WithFields(logger.Fields{
		logger.FieldPhoto: displayName,
		logger.FieldCount: len(ids),
	}).Info("Deleted records")
	return nil
}

// DeleteAll drops the entire collection. Irreversible; the caller layer is
// expected to confirm first.
func (x *PhotoIndex) DeleteAll(ctx context.Context) error {
	if err := x.store.DropCollection(ctx); err != nil {
		return err
	}
	x.log(ctx).Info("Collection dropped")
	return nil
}
