package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DayEntry is one worker's submitted status for the day being saved.
type DayEntry struct {
	WorkerID uint   `json:"workerId"`
	Status   string `json:"status"`
}

// SaveDayRequest replaces the whole attendance roster for Date. Entries that
// are missing a workerId or carry an unknown status are dropped, not errored.
type SaveDayRequest struct {
	Date    string     `json:"date"    validate:"required"`
	Entries []DayEntry `json:"entries"`
}

// AttendanceFilter carries the optional query filters for record listing.
// An empty field means unconstrained.
type AttendanceFilter struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	WorkerID uint   `form:"workerId"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AttendanceRecordResponse is an attendance row joined with the worker's
// current name/role (or the stored snapshot when the worker was deleted).
type AttendanceRecordResponse struct {
	ID         uint   `json:"id"`
	Date       string `json:"date"`
	WorkerID   uint   `json:"workerId"`
	Status     string `json:"status"`
	WorkerName string `json:"workerName"`
	WorkerRole string `json:"workerRole"`
	CreatedAt  string `json:"createdAt"`
}

// AttendanceSummary are the aggregate counts over a filtered record listing.
type AttendanceSummary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

// DayStatusResponse maps every registered worker to present/absent/unmarked
// for one date.
type DayStatusResponse struct {
	Date     string          `json:"date"`
	Statuses map[uint]string `json:"statuses"`
}
