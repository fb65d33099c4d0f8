package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesionarios-api/internal/application/dto"
	"github.com/jhoicas/Concesionarios-api/internal/application/usecase"
	"github.com/jhoicas/Concesionarios-api/internal/domain"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
	"github.com/jhoicas/Concesionarios-api/internal/domain/repository"
	"github.com/jhoicas/Concesionarios-api/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

// fakeRepo respuestas preconfiguradas por test; registra lo recibido.
type fakeRepo struct {
	repository.DealershipRepository // métodos no configurados entran en pánico

	byID    *entity.Dealership
	users   []entity.User
	metrics *repository.DealershipMetricsRow

	createdWith   *entity.Dealership
	updatedWith   map[string]any
	assignedUsers []int64
	removedUsers  []int64
}

func (r *fakeRepo) FindByID(ctx context.Context, id int64) (*entity.Dealership, error) {
	return r.byID, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*entity.Dealership, error) {
	if r.byID == nil {
		return nil, domain.ErrNotFound
	}
	// copia superficial para que el test pueda comparar before/after
	d := *r.byID
	return &d, nil
}

func (r *fakeRepo) Create(ctx context.Context, d *entity.Dealership) (*entity.Dealership, error) {
	r.createdWith = d
	created := *d
	created.ID = 7
	return &created, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, changeSet map[string]any) (*entity.Dealership, error) {
	r.updatedWith = changeSet
	d := *r.byID
	if name, ok := changeSet["name"].(string); ok {
		d.Name = name
	}
	if status, ok := changeSet["status"].(string); ok {
		d.Status = entity.Status(status)
	}
	return &d, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if r.byID == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fakeRepo) AssignUser(ctx context.Context, dealershipID, userID int64) error {
	r.assignedUsers = append(r.assignedUsers, userID)
	return nil
}

func (r *fakeRepo) RemoveUser(ctx context.Context, dealershipID, userID int64) error {
	r.removedUsers = append(r.removedUsers, userID)
	return nil
}

func (r *fakeRepo) UsersOf(ctx context.Context, dealershipID int64) ([]entity.User, error) {
	return r.users, nil
}

func (r *fakeRepo) MetricsByID(ctx context.Context, id int64) (*repository.DealershipMetricsRow, error) {
	return r.metrics, nil
}

// fakePublisher acumula los eventos emitidos; puede forzar fallo.
type fakePublisher struct {
	created []*entity.Dealership
	before  []*entity.Dealership
	after   []*entity.Dealership
	fail    bool
}

func (p *fakePublisher) PublishDealershipCreated(ctx context.Context, d *entity.Dealership) error {
	if p.fail {
		return errors.New("broker caído")
	}
	p.created = append(p.created, d)
	return nil
}

func (p *fakePublisher) PublishDealershipUpdated(ctx context.Context, before, after *entity.Dealership) error {
	if p.fail {
		return errors.New("broker caído")
	}
	p.before = append(p.before, before)
	p.after = append(p.after, after)
	return nil
}

func newUC(repo *fakeRepo, pub *fakePublisher) *usecase.DealershipUseCase {
	return usecase.NewDealershipUseCase(repo, pub, logger.Nop())
}

// ── create ────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaEnumsYAsignaUsuario(t *testing.T) {
	repo := &fakeRepo{users: []entity.User{{ID: 3, Name: "Ana", Email: "ana@x.com"}}}
	pub := &fakePublisher{}
	uc := newUC(repo, pub)

	out, err := uc.Create(context.Background(), dto.CreateDealershipRequest{
		UserID:    3,
		Name:      "Acme Motors",
		Status:    "yes",
		Rating:    "high",
		DevStatus: "working",
	})
	require.NoError(t, err)

	// normalización defensiva: el alta por API también sostiene el invariante
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "hot", out.Rating)
	assert.Equal(t, "in_progress", out.DevStatus)
	assert.Equal(t, "dealership", out.Type)

	assert.Equal(t, []int64{3}, repo.assignedUsers)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "Ana", out.Users[0].Name)

	require.Len(t, pub.created, 1)
	assert.Equal(t, int64(7), pub.created[0].ID)
}

func TestCreate_ValoresCanonicosPasanIntactos(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.Create(context.Background(), dto.CreateDealershipRequest{
		UserID: 1, Name: "X", Status: "active", Rating: "cold",
		Type: "rv", DevStatus: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "cold", out.Rating)
	assert.Equal(t, "completed", out.DevStatus)
	assert.Equal(t, "rv", out.Type)
}

func TestCreate_FalloDelSinkNoRevierte(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUC(repo, &fakePublisher{fail: true})

	out, err := uc.Create(context.Background(), dto.CreateDealershipRequest{UserID: 1, Name: "X"})
	require.NoError(t, err, "el evento es best-effort, la operación ya está confirmada")
	assert.Equal(t, int64(7), out.ID)
}

// ── get / update / delete ─────────────────────────────────────────────────────

func TestGetByID_Inexistente(t *testing.T) {
	uc := newUC(&fakeRepo{}, &fakePublisher{})

	out, err := uc.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, out, "id inexistente es (nil, nil), no un error")
}

func TestUpdate_NormalizaSoloClavesPresentes(t *testing.T) {
	repo := &fakeRepo{byID: &entity.Dealership{ID: 5, Name: "Antes", Status: entity.StatusActive}}
	pub := &fakePublisher{}
	uc := newUC(repo, pub)

	name := "Después"
	status := "no"
	out, err := uc.Update(context.Background(), 5, dto.UpdateDealershipRequest{
		Name:   &name,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "Después", "status": "inactive"}, repo.updatedWith)
	assert.NotContains(t, repo.updatedWith, "rating", "claves no enviadas no aparecen")
	assert.Equal(t, "inactive", out.Status)

	// el evento lleva ambos snapshots
	require.Len(t, pub.before, 1)
	assert.Equal(t, "Antes", pub.before[0].Name)
	assert.Equal(t, "Después", pub.after[0].Name)
}

func TestUpdate_Inexistente(t *testing.T) {
	uc := newUC(&fakeRepo{}, &fakePublisher{})

	_, err := uc.Update(context.Background(), 99, dto.UpdateDealershipRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_Inexistente(t *testing.T) {
	uc := newUC(&fakeRepo{}, &fakePublisher{})
	assert.ErrorIs(t, uc.Delete(context.Background(), 99), domain.ErrNotFound)
}

// ── asignación de usuarios ────────────────────────────────────────────────────

func TestAssignUser_RefrescoParcial(t *testing.T) {
	repo := &fakeRepo{
		byID: &entity.Dealership{
			ID:     5,
			Name:   "Acme",
			Stores: []entity.Store{{ID: 1, Name: "Sucursal Centro"}},
		},
		users: []entity.User{{ID: 9, Name: "Luis"}},
	}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.AssignUser(context.Background(), 5, 9)
	require.NoError(t, err)

	assert.Equal(t, []int64{9}, repo.assignedUsers)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "Luis", out.Users[0].Name)
	// solo users se recarga; el resto del grafo viene de la carga previa
	require.Len(t, out.Stores, 1)
	assert.Equal(t, "Sucursal Centro", out.Stores[0].Name)
}

func TestRemoveUser(t *testing.T) {
	repo := &fakeRepo{byID: &entity.Dealership{ID: 5}}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.RemoveUser(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, repo.removedUsers)
	assert.Empty(t, out.Users)
}

func TestAssignUser_ConcesionarioInexistente(t *testing.T) {
	uc := newUC(&fakeRepo{}, &fakePublisher{})

	_, err := uc.AssignUser(context.Background(), 99, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── métricas ──────────────────────────────────────────────────────────────────

func TestMetrics_SinAvances(t *testing.T) {
	repo := &fakeRepo{
		byID:    &entity.Dealership{ID: 5},
		metrics: &repository.DealershipMetricsRow{StoreCount: 2, ContactCount: 1},
	}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.Metrics(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.TotalStores)
	assert.Equal(t, int64(1), out.TotalContacts)
	assert.Equal(t, 0.0, out.CompletionRate, "sin avances no hay división por cero")
	assert.Nil(t, out.LastActivity)
}

func TestMetrics_TasaRedondeadaADosDecimales(t *testing.T) {
	last := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		byID: &entity.Dealership{ID: 5},
		metrics: &repository.DealershipMetricsRow{
			ActiveProgress:    2,
			CompletedProgress: 1,
			TotalProgress:     3,
			LastActivity:      &last,
		},
	}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.Metrics(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 33.33, out.CompletionRate)
	assert.Equal(t, int64(2), out.ActiveProgresses)
	require.NotNil(t, out.LastActivity)
	assert.True(t, last.Equal(*out.LastActivity))
}

func TestMetrics_TodoCompletado(t *testing.T) {
	repo := &fakeRepo{
		byID:    &entity.Dealership{ID: 5},
		metrics: &repository.DealershipMetricsRow{CompletedProgress: 4, TotalProgress: 4},
	}
	uc := newUC(repo, &fakePublisher{})

	out, err := uc.Metrics(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.CompletionRate)
}

func TestMetrics_ConcesionarioInexistente(t *testing.T) {
	uc := newUC(&fakeRepo{}, &fakePublisher{})

	_, err := uc.Metrics(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
