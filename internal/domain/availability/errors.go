package availability

// Business error codes shared by use cases and handlers.
const (
	CodeInvalidTime     = "invalid_time"
	CodeInvalidRange    = "invalid_time_range"
	CodeInvalidDate     = "invalid_date"
	CodeInvalidWeekday  = "invalid_weekday"
	CodeInvalidMonth    = "invalid_month"
	CodeTimeConflict    = "time_conflict"
	CodePatternNotFound = "pattern_not_found"
	CodeReasonRequired  = "reason_required"
	CodeBlockNotFound   = "block_not_found"
	CodeSlotUnavailable = "slot_unavailable"
	CodeEmptyRequest    = "empty_request"
)
