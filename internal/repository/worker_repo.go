package repository

import (
	"context"

	"wagebook/internal/model"

	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *model.Worker) error
	FindByID(ctx context.Context, id uint) (*model.Worker, error)
	List(ctx context.Context) ([]model.Worker, error)
	Update(ctx context.Context, w *model.Worker) error
	Delete(ctx context.Context, id uint) error
}

type workerRepo struct{ db *gorm.DB }

func NewWorkerRepository(db *gorm.DB) WorkerRepository { return &workerRepo{db: db} }

func (r *workerRepo) Create(ctx context.Context, w *model.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workerRepo) FindByID(ctx context.Context, id uint) (*model.Worker, error) {
	var w model.Worker
	err := r.db.WithContext(ctx).First(&w, id).Error
	return &w, err
}

func (r *workerRepo) List(ctx context.Context) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) Update(ctx context.Context, w *model.Worker) error {
	// Save writes all columns, including a nil DailyWage. That is intentional:
	// the wage is always overwritten with the submitted value.
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *workerRepo) Delete(ctx context.Context, id uint) error {
	// Hard delete of the registry row only. Attendance history has no FK to
	// workers and is left untouched.
	res := r.db.WithContext(ctx).Delete(&model.Worker{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
