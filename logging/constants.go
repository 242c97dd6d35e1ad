package logging

// Field names shared by every log entry.
const (
	FieldOperation = "operation"
	FieldStrategy  = "strategy"
	FieldDebtID    = "debt_id"
	FieldCount     = "count"
	FieldMonths    = "months"
	FieldCacheKey  = "cache_key"
	FieldCacheHit  = "cache_hit"
	FieldDuration  = "duration_ms"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldRemote    = "remote_addr"
	FieldDriver    = "driver"
	FieldAddr      = "addr"
)
