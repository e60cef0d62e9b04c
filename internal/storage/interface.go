package storage

import "context"

// PhotoStorage stores processed photo files under flat names. The stored
// path returned by Save is what gets recorded as the record's source path.
type PhotoStorage interface {
	// Save writes the photo bytes under name and returns the stored path.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Exists reports whether a photo with this name is already stored.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes a stored photo. Deleting a missing name is not an
	// error.
	Delete(ctx context.Context, name string) error
}
