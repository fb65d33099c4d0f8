package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesionarios-api/internal/application/dto"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
	"github.com/jhoicas/Concesionarios-api/internal/domain/repository"
	"github.com/jhoicas/Concesionarios-api/pkg/logger"
)

// DealershipUseCase orquesta el repositorio, emite eventos de ciclo de vida
// en create/update y calcula métricas derivadas.
type DealershipUseCase struct {
	repo   repository.DealershipRepository
	events EventPublisher
	log    *logger.Logger
}

// NewDealershipUseCase construye el caso de uso.
func NewDealershipUseCase(repo repository.DealershipRepository, events EventPublisher, log *logger.Logger) *DealershipUseCase {
	return &DealershipUseCase{repo: repo, events: events, log: log}
}

// Create normaliza defensivamente los campos tipo enum (la importación
// masiva no pasa por la validación HTTP, así que el invariante se sostiene
// aquí), persiste y emite DealershipCreated.
func (uc *DealershipUseCase) Create(ctx context.Context, in dto.CreateDealershipRequest) (*dto.DealershipResponse, error) {
	d := &entity.Dealership{
		Name:                in.Name,
		Address:             in.Address,
		City:                in.City,
		State:               in.State,
		ZipCode:             in.ZipCode,
		Phone:               in.Phone,
		Email:               in.Email,
		CurrentSolutionName: in.CurrentSolutionName,
		CurrentSolutionUse:  in.CurrentSolutionUse,
		Notes:               in.Notes,
		Status:              uc.normalizedStatus(in.Status),
		Rating:              uc.normalizedRating(in.Rating),
		Type:                in.Type,
		InDevelopment:       in.InDevelopment,
		DevStatus:           uc.normalizedDevStatus(in.DevStatus),
	}
	if d.Type == "" {
		d.Type = entity.TypeDefault
	}

	created, err := uc.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AssignUser(ctx, created.ID, in.UserID); err != nil {
		return nil, err
	}
	created.Users, err = uc.repo.UsersOf(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	uc.publishCreated(ctx, created)
	return toDealershipResponse(created), nil
}

// GetByID devuelve (nil, nil) cuando el concesionario no existe.
func (uc *DealershipUseCase) GetByID(ctx context.Context, id int64) (*dto.DealershipResponse, error) {
	d, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return toDealershipResponse(d), nil
}

// Update aplica el change-set parcial del request y emite DealershipUpdated
// con los snapshots previo y posterior. domain.ErrNotFound si el id no existe.
func (uc *DealershipUseCase) Update(ctx context.Context, id int64, in dto.UpdateDealershipRequest) (*dto.DealershipResponse, error) {
	before, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changeSet := in.ChangeSet()
	// Solo se normalizan claves presentes: el change-set nunca gana claves
	// que el llamador no envió.
	if raw, ok := changeSet["status"].(string); ok {
		changeSet["status"] = string(uc.normalizedStatus(raw))
	}
	if raw, ok := changeSet["rating"].(string); ok {
		changeSet["rating"] = string(uc.normalizedRating(raw))
	}
	if raw, ok := changeSet["dev_status"].(string); ok {
		changeSet["dev_status"] = string(uc.normalizedDevStatus(raw))
	}

	after, err := uc.repo.Update(ctx, id, changeSet)
	if err != nil {
		return nil, err
	}

	uc.publishUpdated(ctx, before, after)
	return toDealershipResponse(after), nil
}

// Delete borra el concesionario; sus filas de asignación caen en cascada.
func (uc *DealershipUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista concesionarios paginados con users/stores/contacts cargados.
func (uc *DealershipUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DealershipListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DealershipListResponse{
		Items: toDealershipResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Search busca substring case-insensitive en name, city, state y email.
func (uc *DealershipUseCase) Search(ctx context.Context, query string) ([]dto.DealershipResponse, error) {
	list, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toDealershipResponses(list), nil
}

// FindByUser concesionarios con el usuario asignado.
func (uc *DealershipUseCase) FindByUser(ctx context.Context, userID int64) ([]dto.DealershipResponse, error) {
	list, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDealershipResponses(list), nil
}

// FindByType concesionarios por tipo exacto.
func (uc *DealershipUseCase) FindByType(ctx context.Context, dealershipType string) ([]dto.DealershipResponse, error) {
	list, err := uc.repo.FindByType(ctx, dealershipType)
	if err != nil {
		return nil, err
	}
	return toDealershipResponses(list), nil
}

// FindByDevStatus concesionarios por estado de desarrollo exacto.
func (uc *DealershipUseCase) FindByDevStatus(ctx context.Context, devStatus string) ([]dto.DealershipResponse, error) {
	list, err := uc.repo.FindByDevStatus(ctx, entity.DevStatus(devStatus))
	if err != nil {
		return nil, err
	}
	return toDealershipResponses(list), nil
}

// AssignUser asigna el usuario y devuelve el agregado con SOLO la relación
// de usuarios recargada; stores/contacts/progresses quedan como estaban en
// la carga previa (contrato de refresco parcial heredado del diseño
// original, documentado aquí a propósito).
func (uc *DealershipUseCase) AssignUser(ctx context.Context, dealershipID, userID int64) (*dto.DealershipResponse, error) {
	d, err := uc.repo.GetByID(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AssignUser(ctx, dealershipID, userID); err != nil {
		return nil, err
	}
	d.Users, err = uc.repo.UsersOf(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	return toDealershipResponse(d), nil
}

// RemoveUser retira el usuario; mismo contrato de refresco parcial que AssignUser.
func (uc *DealershipUseCase) RemoveUser(ctx context.Context, dealershipID, userID int64) (*dto.DealershipResponse, error) {
	d, err := uc.repo.GetByID(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.RemoveUser(ctx, dealershipID, userID); err != nil {
		return nil, err
	}
	d.Users, err = uc.repo.UsersOf(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	return toDealershipResponse(d), nil
}

// Metrics calcula las métricas derivadas del concesionario.
// La tasa de completitud es completados/total*100 redondeada a dos
// decimales; 0.0 cuando no hay registros de avance (evita división por cero).
func (uc *DealershipUseCase) Metrics(ctx context.Context, id int64) (*dto.MetricsResponse, error) {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	row, err := uc.repo.MetricsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MetricsResponse{
		TotalStores:      row.StoreCount,
		TotalContacts:    row.ContactCount,
		ActiveProgresses: row.ActiveProgress,
		CompletionRate:   completionRate(row.CompletedProgress, row.TotalProgress),
		LastActivity:     row.LastActivity,
	}, nil
}

func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	rate := decimal.NewFromInt(completed).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100))
	return rate.Round(2).InexactFloat64()
}

// ── normalización defensiva ───────────────────────────────────────────────────

func (uc *DealershipUseCase) normalizedStatus(raw string) entity.Status {
	s := entity.NormalizeStatus(raw)
	if string(s) != raw {
		uc.log.Debug().Str("raw", raw).Str("status", string(s)).Msg("status normalizado")
	}
	return s
}

func (uc *DealershipUseCase) normalizedRating(raw string) entity.Rating {
	r := entity.NormalizeRating(raw)
	if string(r) != raw {
		uc.log.Debug().Str("raw", raw).Str("rating", string(r)).Msg("rating normalizado")
	}
	return r
}

func (uc *DealershipUseCase) normalizedDevStatus(raw string) entity.DevStatus {
	d := entity.NormalizeDevStatus(raw)
	if string(d) != raw {
		uc.log.Debug().Str("raw", raw).Str("dev_status", string(d)).Msg("dev_status normalizado")
	}
	return d
}

// ── eventos ───────────────────────────────────────────────────────────────────

// Un fallo del sink no revierte la operación ya confirmada: se registra y sigue.
func (uc *DealershipUseCase) publishCreated(ctx context.Context, d *entity.Dealership) {
	if err := uc.events.PublishDealershipCreated(ctx, d); err != nil {
		uc.log.Warn().Err(err).Int64("dealership_id", d.ID).Msg("publicar DealershipCreated")
	}
}

func (uc *DealershipUseCase) publishUpdated(ctx context.Context, before, after *entity.Dealership) {
	if err := uc.events.PublishDealershipUpdated(ctx, before, after); err != nil {
		uc.log.Warn().Err(err).Int64("dealership_id", after.ID).Msg("publicar DealershipUpdated")
	}
}

// ── conversión entidad → DTO ──────────────────────────────────────────────────

func toDealershipResponse(d *entity.Dealership) *dto.DealershipResponse {
	if d == nil {
		return nil
	}
	out := &dto.DealershipResponse{
		ID:                  d.ID,
		Name:                d.Name,
		Address:             d.Address,
		City:                d.City,
		State:               d.State,
		ZipCode:             d.ZipCode,
		Phone:               d.Phone,
		Email:               d.Email,
		CurrentSolutionName: d.CurrentSolutionName,
		CurrentSolutionUse:  d.CurrentSolutionUse,
		Notes:               d.Notes,
		Status:              string(d.Status),
		Rating:              string(d.Rating),
		Type:                d.Type,
		InDevelopment:       d.InDevelopment,
		DevStatus:           string(d.DevStatus),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	for _, u := range d.Users {
		out.Users = append(out.Users, dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	for _, s := range d.Stores {
		out.Stores = append(out.Stores, dto.StoreResponse{ID: s.ID, Name: s.Name, City: s.City})
	}
	for _, c := range d.Contacts {
		out.Contacts = append(out.Contacts, dto.ContactResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	for _, p := range d.Progresses {
		out.Progresses = append(out.Progresses, dto.ProgressResponse{ID: p.ID, Title: p.Title, CompletedAt: p.CompletedAt, CreatedAt: p.CreatedAt})
	}
	return out
}

func toDealershipResponses(list []*entity.Dealership) []dto.DealershipResponse {
	items := make([]dto.DealershipResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDealershipResponse(d))
	}
	return items
}
