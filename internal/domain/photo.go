package domain

import (
	"hash/fnv"
	"path"
	"strings"
)

// PhotoRecord is one indexed photo: a vector plus the metadata payload
// stored alongside it in the collection.
type PhotoRecord struct {
	ID          uint64    `json:"id"`
	Vector      []float32 `json:"-"`
	Description string    `json:"description"`
	SourcePath  string    `json:"source_path,omitempty"`
	DisplayName string    `json:"display_name"`
}

// SearchHit is a single ranked search result with its cosine similarity.
type SearchHit struct {
	Description string  `json:"description"`
	SourcePath  string  `json:"source_path,omitempty"`
	DisplayName string  `json:"display_name"`
	Similarity  float32 `json:"similarity"`
}

// PhotoInfo is one listing entry, deduplicated by display name.
type PhotoInfo struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	SourcePath  string `json:"source_path,omitempty"`
	ID          uint64 `json:"id"`
}

// RecordID derives the stable point id for a record from its description
// and display name. FNV-64a over both fields keeps re-ingestion of the same
// photo an upsert while two photos with identical descriptions but different
// stored names get distinct ids.
func RecordID(description, displayName string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(description))
	h.Write([]byte{0})
	h.Write([]byte(displayName))
	return h.Sum64()
}

// DisplayName extracts the base filename from a stored path. Returns ""
// for an empty path. Both slash styles are handled since source paths may
// have been recorded on another platform.
func DisplayName(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	normalized := strings.ReplaceAll(sourcePath, "\\", "/")
	return path.Base(normalized)
}
