package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldErrorKind  = "error_kind"
	FieldCacheState = "cache_state"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldAgeSeconds = "age_seconds"
)
