package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldDate       = "date"
	FieldWindowDays = "window_days"
	FieldSlotCount  = "slot_count"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentHistory = "history"
	ComponentRecord  = "record"
)

// Operations defines standard operation names
const (
	OpGet      = "get"
	OpSave     = "save"
	OpHistory  = "history"
	OpTotals   = "totals"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
