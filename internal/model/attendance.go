package model

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// ValidStatus reports whether s is one of the two persisted statuses.
// "unmarked" is never stored — it is the absence of a row for a
// (date, worker) pair.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one worker's status on one calendar date. At most one row
// exists per (date, worker) pair; rows are only ever written in bulk by the
// day-save operation, never updated in place.
//
// WorkerName and WorkerRole are captured from the worker at insert time so
// that history stays labelled after the worker is removed from the registry.
// There is deliberately no foreign key to workers: deleting a worker must not
// cascade into the ledger.
type Attendance struct {
	ID         uint      `gorm:"primaryKey"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_date_worker,priority:1"`
	WorkerID   uint      `gorm:"not null;index;uniqueIndex:idx_attendance_date_worker,priority:2"`
	Status     string    `gorm:"not null"`
	WorkerName string    `gorm:"not null"`
	WorkerRole string    `gorm:"not null;default:''"`
	CreatedAt  time.Time
}

func (Attendance) TableName() string { return "attendance" }
