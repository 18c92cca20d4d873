package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"wagebook/internal/dto"
	"wagebook/internal/model"
	"wagebook/internal/repository"
	"wagebook/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory WorkerRepository stub ──────────────────────────────────────────

type stubWorkerRepo struct {
	workers map[uint]*model.Worker
	nextID  uint
}

func newStubWorkerRepo() *stubWorkerRepo {
	return &stubWorkerRepo{workers: make(map[uint]*model.Worker), nextID: 1}
}

func (r *stubWorkerRepo) Create(_ context.Context, w *model.Worker) error {
	if w.ID == 0 {
		w.ID = r.nextID
		r.nextID++
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *stubWorkerRepo) FindByID(_ context.Context, id uint) (*model.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *stubWorkerRepo) List(_ context.Context) ([]model.Worker, error) {
	out := make([]model.Worker, 0, len(r.workers))
	for _, w := range r.workers {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubWorkerRepo) Update(_ context.Context, w *model.Worker) error {
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *stubWorkerRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.workers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.workers, id)
	return nil
}

var _ repository.WorkerRepository = (*stubWorkerRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildWorkerSvc() (service.WorkerService, *stubWorkerRepo) {
	repo := newStubWorkerRepo()
	return service.NewWorkerService(repo), repo
}

func strPtr(s string) *string { return &s }

func wagePtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// ── CRUD Tests ────────────────────────────────────────────────────────────────

func TestCreateWorker(t *testing.T) {
	svc, _ := buildWorkerSvc()

	resp, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Name:      "Ravi",
		Role:      strPtr("Mason"),
		DailyWage: wagePtr(650),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ravi", resp.Name)
	assert.Equal(t, "Mason", resp.Role)
	require.NotNil(t, resp.DailyWage)
	assert.True(t, resp.DailyWage.Equal(decimal.NewFromInt(650)))
	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.CreatedAt)
}

func TestCreateWorker_TrimsWhitespace(t *testing.T) {
	svc, _ := buildWorkerSvc()

	resp, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Name: "  Suresh  ",
		Role: strPtr(" Carpenter "),
	})

	require.NoError(t, err)
	assert.Equal(t, "Suresh", resp.Name)
	assert.Equal(t, "Carpenter", resp.Role)
}

func TestCreateWorker_DefaultsRoleAndWage(t *testing.T) {
	svc, _ := buildWorkerSvc()

	resp, err := svc.Create(context.Background(), dto.CreateWorkerRequest{Name: "Geeta"})

	require.NoError(t, err)
	assert.Equal(t, "", resp.Role)
	assert.Nil(t, resp.DailyWage)
}

func TestCreateWorker_WhitespaceOnlyName(t *testing.T) {
	svc, repo := buildWorkerSvc()

	_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{Name: "   "})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	// No row must be stored on a rejected create.
	assert.Empty(t, repo.workers)
}

func TestListWorkers_OrderedByName(t *testing.T) {
	svc, _ := buildWorkerSvc()
	for _, name := range []string{"Zoya", "Amit", "Mohan"} {
		_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Amit", list[0].Name)
	assert.Equal(t, "Mohan", list[1].Name)
	assert.Equal(t, "Zoya", list[2].Name)
}

func TestListWorkers_IncludesCreatedExactlyOnce(t *testing.T) {
	svc, _ := buildWorkerSvc()
	created, err := svc.Create(context.Background(), dto.CreateWorkerRequest{Name: "Ravi"})
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)

	found := 0
	for _, w := range list {
		if w.ID == created.ID {
			found++
		}
	}
	assert.Equal(t, 1, found)
}

func TestGetWorker_NotFound(t *testing.T) {
	svc, _ := buildWorkerSvc()

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrWorkerNotFound)
}

func TestUpdateWorker_PartialKeepsUnsetFields(t *testing.T) {
	svc, _ := buildWorkerSvc()
	created, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Name: "Ravi",
		Role: strPtr("Mason"),
	})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, dto.UpdateWorkerRequest{
		Name:      strPtr("Ravi Kumar"),
		DailyWage: wagePtr(700),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", resp.Name)
	assert.Equal(t, "Mason", resp.Role) // untouched
	require.NotNil(t, resp.DailyWage)
	assert.True(t, resp.DailyWage.Equal(decimal.NewFromInt(700)))
}

func TestUpdateWorker_WageAlwaysOverwritten(t *testing.T) {
	svc, _ := buildWorkerSvc()
	created, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Name:      "Ravi",
		DailyWage: wagePtr(650),
	})
	require.NoError(t, err)

	// Omitting dailyWage clears the stored wage.
	resp, err := svc.Update(context.Background(), created.ID, dto.UpdateWorkerRequest{
		Role: strPtr("Supervisor"),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.DailyWage)
	assert.Equal(t, "Supervisor", resp.Role)
}

func TestUpdateWorker_NotFound(t *testing.T) {
	svc, _ := buildWorkerSvc()

	_, err := svc.Update(context.Background(), 99, dto.UpdateWorkerRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, service.ErrWorkerNotFound)
}

func TestDeleteWorker(t *testing.T) {
	svc, _ := buildWorkerSvc()
	created, err := svc.Create(context.Background(), dto.CreateWorkerRequest{Name: "Ravi"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrWorkerNotFound)
}

func TestDeleteWorker_NotFound(t *testing.T) {
	svc, _ := buildWorkerSvc()

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, service.ErrWorkerNotFound)
}
