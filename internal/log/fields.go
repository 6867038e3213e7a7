package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldDay         = "day"
	FieldSection     = "section"
	FieldAmountCents = "amount_cents"
	FieldSortOrder   = "sort_order"
	FieldChartType   = "chart_type"
	FieldWeek        = "week"
	FieldZoom        = "zoom"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentTracker  = "tracker"
	ComponentSections = "sections"
	ComponentHistory  = "history"
	ComponentChart    = "chart"
	ComponentUI       = "ui"
)
