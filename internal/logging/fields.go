package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for per-invocation identifiers.
	FieldRunID = "run_id"
	// FieldSeries is the standardized structured logging key for series titles.
	FieldSeries = "series"
	// FieldASIN is the standardized structured logging key for catalog identifiers.
	FieldASIN = "asin"
	// FieldEventType labels the kind of event behind a warning or error.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)
