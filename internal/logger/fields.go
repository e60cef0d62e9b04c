package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields carried through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID).
	FieldRequestID = "request_id"

	// FieldBatchID identifies one ingest batch.
	FieldBatchID = "batch_id"

	// FieldComponent is the component/module name.
	FieldComponent = "component"

	// FieldPhoto is the display name of the photo being processed.
	FieldPhoto = "photo"
)

// Metric fields attached to individual entries.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldStatus     = "status"
)
