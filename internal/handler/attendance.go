package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wagebook/internal/dto"
	"wagebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AttendanceHandler serves the attendance ledger endpoints. The day roster
// for GET by-date is cached in Redis and invalidated on every day save.
type AttendanceHandler struct {
	svc      service.AttendanceService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewAttendanceHandler(svc service.AttendanceService, rdb *redis.Client, cacheTTL time.Duration) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

// List godoc
// @Summary List attendance records, optionally filtered by date range and worker
// @Tags attendance
// @Produce json
// @Param dateFrom query string false "Lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Upper date bound (YYYY-MM-DD)"
// @Param workerId query int false "Worker filter"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Router /api/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	records, err := h.svc.ListRecords(c.Request.Context(), filter)
	if err != nil {
		if isValidation(err) {
			respondError(c, err)
			return
		}
		// Degrade to empty on read failures so the records view never crashes.
		log.Warn().Err(err).Msg("attendance list failed, returning empty result")
		c.JSON(http.StatusOK, []dto.AttendanceRecordResponse{})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Summary godoc
// @Summary Aggregate counts over the filtered record listing
// @Tags attendance
// @Produce json
// @Param dateFrom query string false "Lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Upper date bound (YYYY-MM-DD)"
// @Param workerId query int false "Worker filter"
// @Success 200 {object} dto.AttendanceSummary
// @Router /api/attendance/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	records, err := h.svc.ListRecords(c.Request.Context(), filter)
	if err != nil {
		if isValidation(err) {
			respondError(c, err)
			return
		}
		log.Warn().Err(err).Msg("attendance summary failed, returning zero counts")
		c.JSON(http.StatusOK, dto.AttendanceSummary{})
		return
	}
	c.JSON(http.StatusOK, service.Summarize(records))
}

// ByDate godoc
// @Summary Stored records for one date, ordered by worker name
// @Tags attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Router /api/attendance/by-date/{date} [get]
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	date := c.Param("date")
	ctx := c.Request.Context()
	cacheKey := "day:" + date

	if h.rdb != nil && h.cacheTTL > 0 {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var records []dto.AttendanceRecordResponse
			if jsonErr := json.Unmarshal(cached, &records); jsonErr == nil {
				c.JSON(http.StatusOK, records)
				return
			}
		}
	}

	records, err := h.svc.GetDay(ctx, date)
	if err != nil {
		if isValidation(err) {
			respondError(c, err)
			return
		}
		log.Warn().Err(err).Str("date", date).Msg("day query failed, returning empty result")
		c.JSON(http.StatusOK, []dto.AttendanceRecordResponse{})
		return
	}

	// Populate cache — best effort, ignore errors
	if h.rdb != nil && h.cacheTTL > 0 {
		if b, jsonErr := json.Marshal(records); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, records)
}

// DayStatus godoc
// @Summary Every registered worker's status for one date (unmarked when no record exists)
// @Tags attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayStatusResponse
// @Router /api/attendance/by-date/{date}/status [get]
func (h *AttendanceHandler) DayStatus(c *gin.Context) {
	resp, err := h.svc.DayStatus(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveDay godoc
// @Summary Replace the whole attendance roster for one date
// @Tags attendance
// @Accept json
// @Produce json
// @Param body body dto.SaveDayRequest true "Date and entries"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/attendance/save [post]
func (h *AttendanceHandler) SaveDay(c *gin.Context) {
	var req dto.SaveDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	records, err := h.svc.SaveDay(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The stored day changed — drop the cached roster.
	if h.rdb != nil {
		_ = h.rdb.Del(c.Request.Context(), "day:"+req.Date).Err()
	}

	c.JSON(http.StatusOK, records)
}

func bindFilter(c *gin.Context) (dto.AttendanceFilter, bool) {
	var filter dto.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, &service.ValidationError{Msg: "invalid query parameters"})
		return filter, false
	}
	return filter, true
}

func isValidation(err error) bool {
	var ve *service.ValidationError
	return errors.As(err, &ve)
}
