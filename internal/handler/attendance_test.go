package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"wagebook/internal/dto"
	"wagebook/internal/handler"
	"wagebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub AttendanceService ───────────────────────────────────────────────────

type stubAttendanceService struct {
	records  []dto.AttendanceRecordResponse
	listErr  error
	saveErr  error
	savedReq *dto.SaveDayRequest
}

func (s *stubAttendanceService) SaveDay(_ context.Context, req dto.SaveDayRequest) ([]dto.AttendanceRecordResponse, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.savedReq = &req
	return s.records, nil
}

func (s *stubAttendanceService) GetDay(_ context.Context, date string) ([]dto.AttendanceRecordResponse, error) {
	return s.records, s.listErr
}

func (s *stubAttendanceService) DayStatus(_ context.Context, date string) (*dto.DayStatusResponse, error) {
	return &dto.DayStatusResponse{Date: date, Statuses: map[uint]string{1: "present"}}, nil
}

func (s *stubAttendanceService) ListRecords(_ context.Context, _ dto.AttendanceFilter) ([]dto.AttendanceRecordResponse, error) {
	return s.records, s.listErr
}

var _ service.AttendanceService = (*stubAttendanceService)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func attendanceRouter(svc service.AttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAttendanceHandler(svc, nil, 0) // no cache in unit tests
	r.GET("/api/attendance", h.List)
	r.GET("/api/attendance/summary", h.Summary)
	r.GET("/api/attendance/by-date/:date", h.ByDate)
	r.GET("/api/attendance/by-date/:date/status", h.DayStatus)
	r.POST("/api/attendance/save", h.SaveDay)
	return r
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAttendanceSave(t *testing.T) {
	svc := &stubAttendanceService{records: []dto.AttendanceRecordResponse{
		{ID: 1, Date: "2024-01-10", WorkerID: 1, Status: "present", WorkerName: "Ravi"},
	}}
	r := attendanceRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/attendance/save", gin.H{
		"date":    "2024-01-10",
		"entries": []gin.H{{"workerId": 1, "status": "present"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.savedReq)
	assert.Equal(t, "2024-01-10", svc.savedReq.Date)
	require.Len(t, svc.savedReq.Entries, 1)
	assert.Equal(t, uint(1), svc.savedReq.Entries[0].WorkerID)
}

func TestAttendanceSave_MissingDate(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{})

	w := doJSON(t, r, http.MethodPost, "/api/attendance/save", gin.H{
		"entries": []gin.H{},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAttendanceSave_EntriesNotAnArray(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{})

	w := doJSON(t, r, http.MethodPost, "/api/attendance/save", gin.H{
		"date":    "2024-01-10",
		"entries": "present",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceSave_ServiceValidationError(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{
		saveErr: &service.ValidationError{Msg: "worker 999 does not exist"},
	})

	w := doJSON(t, r, http.MethodPost, "/api/attendance/save", gin.H{
		"date":    "2024-01-10",
		"entries": []gin.H{{"workerId": 999, "status": "present"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceList(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{records: []dto.AttendanceRecordResponse{
		{ID: 1, Date: "2024-01-10", Status: "present"},
	}})

	w := doJSON(t, r, http.MethodGet, "/api/attendance?dateFrom=2024-01-01&dateTo=2024-01-31", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []dto.AttendanceRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestAttendanceList_DegradesToEmptyOnFailure(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{listErr: errors.New("connection refused")})

	w := doJSON(t, r, http.MethodGet, "/api/attendance", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAttendanceList_BadDateFilter(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{
		listErr: &service.ValidationError{Msg: "date must be YYYY-MM-DD"},
	})

	w := doJSON(t, r, http.MethodGet, "/api/attendance?dateFrom=nonsense", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceSummary(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{records: []dto.AttendanceRecordResponse{
		{Status: "present"},
		{Status: "absent"},
		{Status: "present"},
	}})

	w := doJSON(t, r, http.MethodGet, "/api/attendance/summary", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var sum dto.AttendanceSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Present)
	assert.Equal(t, 1, sum.Absent)
}

func TestAttendanceByDate(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{records: []dto.AttendanceRecordResponse{
		{ID: 1, Date: "2024-01-10", Status: "present", WorkerName: "Ravi"},
	}})

	w := doJSON(t, r, http.MethodGet, "/api/attendance/by-date/2024-01-10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []dto.AttendanceRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Ravi", got[0].WorkerName)
}

func TestAttendanceDayStatus(t *testing.T) {
	r := attendanceRouter(&stubAttendanceService{})

	w := doJSON(t, r, http.MethodGet, "/api/attendance/by-date/2024-01-10/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got dto.DayStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2024-01-10", got.Date)
	assert.Equal(t, "present", got.Statuses[1])
}
