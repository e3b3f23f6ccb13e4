package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldCategory    = "category"
	FieldProduct     = "product"
	FieldCost        = "cost"
	FieldRecordCount = "record_count"
	FieldExportKind  = "export_kind"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentLedger     = "ledger"
	ComponentProjection = "projection"
	ComponentExport     = "export"
	ComponentAMQP       = "amqp"
	ComponentSheets     = "sheets"
	ComponentBackend    = "backend"
)
