package log

// Attribute keys shared across packages.
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldPerson      = "person"
	FieldLevel       = "level"
	FieldRate        = "rate"
	FieldPeriod      = "period"
	FieldSettlement  = "settlement_period"
	FieldCode        = "code"
	FieldSpreadsheet = "spreadsheet"
	FieldSheetID     = "sheet_id"
	FieldRows        = "rows"
	FieldMatched     = "matched"
	FieldDriver      = "driver"
)

// Component names.
const (
	ComponentApp        = "app"
	ComponentSheets     = "sheets"
	ComponentStorage    = "storage"
	ComponentCache      = "cache"
	ComponentCommission = "commission"
	ComponentBackend    = "backend"
)
