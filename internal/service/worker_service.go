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

type WorkerService interface {
	List(ctx context.Context) ([]dto.WorkerResponse, error)
	Get(ctx context.Context, id uint) (*dto.WorkerResponse, error)
	Create(ctx context.Context, req dto.CreateWorkerRequest) (*dto.WorkerResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateWorkerRequest) (*dto.WorkerResponse, error)
	Delete(ctx context.Context, id uint) error
}

type workerService struct {
	repo repository.WorkerRepository
}

func NewWorkerService(repo repository.WorkerRepository) WorkerService {
	return &workerService{repo: repo}
}

func (s *workerService) List(ctx context.Context) ([]dto.WorkerResponse, error) {
	workers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, *workerToResponse(&workers[i]))
	}
	return out, nil
}

func (s *workerService) Get(ctx context.Context, id uint) (*dto.WorkerResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return workerToResponse(w), nil
}

func (s *workerService) Create(ctx context.Context, req dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationErrorf("name is required")
	}

	role := ""
	if req.Role != nil {
		role = strings.TrimSpace(*req.Role)
	}

	w := &model.Worker{
		Name:      name,
		Role:      role,
		DailyWage: req.DailyWage,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return workerToResponse(w), nil
}

// Update applies a partial update: nil Name/Role keep the stored value.
// DailyWage is always overwritten with the submitted value, including nil —
// omitting the field clears the wage.
func (s *workerService) Update(ctx context.Context, id uint, req dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationErrorf("name must not be empty")
		}
		w.Name = name
	}
	if req.Role != nil {
		w.Role = strings.TrimSpace(*req.Role)
	}
	w.DailyWage = req.DailyWage

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return workerToResponse(w), nil
}

func (s *workerService) Delete(ctx context.Context, id uint) error {
	// Deletes the registry row only. Historical attendance rows keep their
	// name/role snapshot and remain queryable.
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return err
	}
	return nil
}

func workerToResponse(w *model.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Role:      w.Role,
		DailyWage: w.DailyWage,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}
