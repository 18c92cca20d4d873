package repository

import (
	"context"
	"time"

	"wagebook/internal/model"

	"gorm.io/gorm"
)

// AttendanceRow is an attendance record joined with the worker's current
// name/role. For workers no longer in the registry the snapshot columns
// stored on the record itself are used, so history stays labelled.
type AttendanceRow struct {
	ID         uint
	Date       time.Time
	WorkerID   uint
	Status     string
	WorkerName string
	WorkerRole string
	CreatedAt  time.Time
}

// RangeFilter narrows QueryRange. Nil fields are unconstrained.
type RangeFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	WorkerID *uint
}

type AttendanceRepository interface {
	DeleteByDate(ctx context.Context, tx *gorm.DB, date time.Time) error
	Insert(ctx context.Context, tx *gorm.DB, a *model.Attendance) error
	QueryByDate(ctx context.Context, date time.Time) ([]AttendanceRow, error)
	QueryRange(ctx context.Context, f RangeFilter) ([]AttendanceRow, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) DB() *gorm.DB { return r.db }

func (r *attendanceRepo) DeleteByDate(ctx context.Context, tx *gorm.DB, date time.Time) error {
	// Idempotent: deleting a date with no records is a no-op.
	return tx.WithContext(ctx).Where("date = ?", date).Delete(&model.Attendance{}).Error
}

func (r *attendanceRepo) Insert(ctx context.Context, tx *gorm.DB, a *model.Attendance) error {
	return tx.WithContext(ctx).Create(a).Error
}

const joinedSelect = `attendance.id, attendance.date, attendance.worker_id, attendance.status, attendance.created_at,
	COALESCE(workers.name, attendance.worker_name) AS worker_name,
	COALESCE(workers.role, attendance.worker_role) AS worker_role`

func (r *attendanceRepo) QueryByDate(ctx context.Context, date time.Time) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Select(joinedSelect).
		Joins("LEFT JOIN workers ON workers.id = attendance.worker_id").
		Where("attendance.date = ?", date).
		Order("worker_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *attendanceRepo) QueryRange(ctx context.Context, f RangeFilter) ([]AttendanceRow, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Select(joinedSelect).
		Joins("LEFT JOIN workers ON workers.id = attendance.worker_id")

	if f.DateFrom != nil {
		q = q.Where("attendance.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("attendance.date <= ?", *f.DateTo)
	}
	if f.WorkerID != nil {
		q = q.Where("attendance.worker_id = ?", *f.WorkerID)
	}

	var rows []AttendanceRow
	err := q.Order("attendance.date DESC, worker_name ASC").Scan(&rows).Error
	return rows, err
}
