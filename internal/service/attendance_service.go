package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagebook/internal/dto"
	"wagebook/internal/model"
	"wagebook/internal/repository"

	"gorm.io/gorm"
)

// DateLayout is the wire format for calendar dates (day granularity).
const DateLayout = "2006-01-02"

// StatusUnmarked is the synthetic status for workers with no record on a
// date. It is never persisted.
const StatusUnmarked = "unmarked"

type AttendanceService interface {
	// SaveDay atomically replaces the whole roster for one date and returns
	// the resulting day, ordered by worker name.
	SaveDay(ctx context.Context, req dto.SaveDayRequest) ([]dto.AttendanceRecordResponse, error)
	// GetDay returns the stored records for one date, joined with worker
	// identity, ordered by worker name.
	GetDay(ctx context.Context, date string) ([]dto.AttendanceRecordResponse, error)
	// DayStatus maps every registered worker to present/absent/unmarked for
	// one date.
	DayStatus(ctx context.Context, date string) (*dto.DayStatusResponse, error)
	// ListRecords returns records matching the optional filters, ordered by
	// date descending then worker name.
	ListRecords(ctx context.Context, filter dto.AttendanceFilter) ([]dto.AttendanceRecordResponse, error)
}

type attendanceService struct {
	repo       repository.AttendanceRepository
	workerRepo repository.WorkerRepository
}

func NewAttendanceService(repo repository.AttendanceRepository, workerRepo repository.WorkerRepository) AttendanceService {
	return &attendanceService{repo: repo, workerRepo: workerRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── SaveDay ───────────────────────────────────────────────────────────────────
// Replace-day semantics:
//  1. Drop entries with no workerId or an unknown status (tolerant save —
//     invalid entries are skipped, not errored). Duplicate workerIds collapse
//     to the last occurrence.
//  2. Resolve every referenced worker up front; an unknown worker rejects the
//     whole call before any mutation.
//  3. In one transaction: delete all records for the date, insert the
//     filtered entries. A concurrent reader never observes a half-written day.
//  4. Re-query and return the full roster.
//
// Idempotent: saving the same payload twice yields identical stored state.
// An empty entries list clears the date.

func (s *attendanceService) SaveDay(ctx context.Context, req dto.SaveDayRequest) ([]dto.AttendanceRecordResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Entries == nil {
		return nil, validationErrorf("date and entries array required")
	}

	entries := filterEntries(req.Entries)

	// Snapshot lookup doubles as the referential check; it happens before the
	// delete so a bad payload cannot leave the day half-cleared.
	records := make([]*model.Attendance, 0, len(entries))
	for _, e := range entries {
		w, err := s.workerRepo.FindByID(ctx, e.WorkerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationErrorf("worker %d does not exist", e.WorkerID)
			}
			return nil, err
		}
		records = append(records, &model.Attendance{
			Date:       date,
			WorkerID:   w.ID,
			Status:     e.Status,
			WorkerName: w.Name,
			WorkerRole: w.Role,
		})
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteByDate(ctx, tx, date); err != nil {
			return err
		}
		for _, rec := range records {
			if err := s.repo.Insert(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: "duplicate attendance record for date and worker"}
		}
		return nil, err
	}

	return s.GetDay(ctx, req.Date)
}

// filterEntries drops malformed entries and collapses duplicate workerIds,
// keeping the last occurrence (the row the user touched most recently).
func filterEntries(entries []dto.DayEntry) []dto.DayEntry {
	byWorker := make(map[uint]int, len(entries))
	out := make([]dto.DayEntry, 0, len(entries))
	for _, e := range entries {
		if e.WorkerID == 0 || !model.ValidStatus(e.Status) {
			continue
		}
		if i, seen := byWorker[e.WorkerID]; seen {
			out[i] = e
			continue
		}
		byWorker[e.WorkerID] = len(out)
		out = append(out, e)
	}
	return out
}

// ── GetDay / DayStatus ────────────────────────────────────────────────────────

func (s *attendanceService) GetDay(ctx context.Context, date string) ([]dto.AttendanceRecordResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.QueryByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return rowsToResponses(rows), nil
}

func (s *attendanceService) DayStatus(ctx context.Context, date string) (*dto.DayStatusResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	workers, err := s.workerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.QueryByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return &dto.DayStatusResponse{
		Date:     date,
		Statuses: Overlay(workers, rows),
	}, nil
}

// Overlay defaults every registered worker to unmarked, then applies the
// date's stored records on top. Pure function: recomputed on demand, no
// module state. Workers registered after the day was saved appear unmarked;
// records of deleted workers are not part of the mapping.
func Overlay(workers []model.Worker, rows []repository.AttendanceRow) map[uint]string {
	statuses := make(map[uint]string, len(workers))
	for _, w := range workers {
		statuses[w.ID] = StatusUnmarked
	}
	for _, r := range rows {
		if _, registered := statuses[r.WorkerID]; registered {
			statuses[r.WorkerID] = r.Status
		}
	}
	return statuses
}

// ── ListRecords ───────────────────────────────────────────────────────────────

func (s *attendanceService) ListRecords(ctx context.Context, filter dto.AttendanceFilter) ([]dto.AttendanceRecordResponse, error) {
	var f repository.RangeFilter
	if filter.DateFrom != "" {
		d, err := parseDate(filter.DateFrom)
		if err != nil {
			return nil, err
		}
		f.DateFrom = &d
	}
	if filter.DateTo != "" {
		d, err := parseDate(filter.DateTo)
		if err != nil {
			return nil, err
		}
		f.DateTo = &d
	}
	if filter.WorkerID != 0 {
		id := filter.WorkerID
		f.WorkerID = &id
	}

	rows, err := s.repo.QueryRange(ctx, f)
	if err != nil {
		return nil, err
	}
	return rowsToResponses(rows), nil
}

// Summarize computes the aggregate counts over a record listing.
func Summarize(records []dto.AttendanceRecordResponse) dto.AttendanceSummary {
	sum := dto.AttendanceSummary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			sum.Present++
		case model.StatusAbsent:
			sum.Absent++
		}
	}
	return sum
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, validationErrorf("date is required")
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, validationErrorf("date must be YYYY-MM-DD")
	}
	return d, nil
}

func rowsToResponses(rows []repository.AttendanceRow) []dto.AttendanceRecordResponse {
	out := make([]dto.AttendanceRecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AttendanceRecordResponse{
			ID:         r.ID,
			Date:       r.Date.Format(DateLayout),
			WorkerID:   r.WorkerID,
			Status:     r.Status,
			WorkerName: r.WorkerName,
			WorkerRole: r.WorkerRole,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
