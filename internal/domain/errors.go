package domain

import "errors"

// Sentinel error kinds. Callers classify with errors.Is; the wrapped error
// carries the backend detail.
var (
	// ErrMissingCredential means no API key is configured. Fatal: no
	// capability call can succeed without it.
	ErrMissingCredential = errors.New("missing API key")

	// ErrCollectionAccessDenied means the vector store refused access to
	// the collection (bad URL or API key). Fatal for any collection
	// operation.
	ErrCollectionAccessDenied = errors.New("collection access denied")

	// ErrCollectionCreationFailed means the collection did not exist and
	// could not be created.
	ErrCollectionCreationFailed = errors.New("collection creation failed")
)
