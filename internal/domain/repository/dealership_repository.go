package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

// DealershipMetricsRow conteos crudos para las métricas de un concesionario.
// El cálculo derivado (tasa de completitud) vive en el caso de uso.
type DealershipMetricsRow struct {
	StoreCount        int64
	ContactCount      int64
	ActiveProgress    int64
	CompletedProgress int64
	TotalProgress     int64
	LastActivity      *time.Time
}

// DealershipRepository define el puerto de persistencia para Dealership (DIP).
//
// Política de carga fija por operación (no configurable por el llamador):
//   - FindByID / GetByID cargan el grafo completo (users, stores, contacts, progresses).
//   - List, FindByUser, FindByType, FindByDevStatus y Search cargan users, stores y contacts.
//   - UsersOf carga solo la relación de usuarios (contrato de refresco parcial
//     de AssignUser/RemoveUser en el caso de uso).
type DealershipRepository interface {
	// FindByID devuelve (nil, nil) cuando el id no existe.
	FindByID(ctx context.Context, id int64) (*entity.Dealership, error)
	// GetByID devuelve domain.ErrNotFound cuando el id no existe.
	GetByID(ctx context.Context, id int64) (*entity.Dealership, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Dealership, error)
	CountAll(ctx context.Context) (int64, error)

	Create(ctx context.Context, d *entity.Dealership) (*entity.Dealership, error)
	// Update aplica un change-set parcial (columna → valor) y devuelve el
	// agregado recargado con todas sus relaciones. domain.ErrNotFound si el
	// id no existe. Un change-set vacío solo refresca updated_at.
	Update(ctx context.Context, id int64, changeSet map[string]any) (*entity.Dealership, error)
	// Delete borra el concesionario; las filas de dealership_user caen en
	// cascada por la FK. domain.ErrNotFound si el id no existe.
	Delete(ctx context.Context, id int64) error

	FindByUser(ctx context.Context, userID int64) ([]*entity.Dealership, error)
	FindByType(ctx context.Context, dealershipType string) ([]*entity.Dealership, error)
	FindByDevStatus(ctx context.Context, devStatus entity.DevStatus) ([]*entity.Dealership, error)
	// Search busca substring case-insensitive en name, city, state y email (OR lógico).
	Search(ctx context.Context, query string) ([]*entity.Dealership, error)

	AssignUser(ctx context.Context, dealershipID, userID int64) error
	RemoveUser(ctx context.Context, dealershipID, userID int64) error
	UsersOf(ctx context.Context, dealershipID int64) ([]entity.User, error)

	MetricsByID(ctx context.Context, id int64) (*DealershipMetricsRow, error)

	// Truncate vacía la tabla de concesionarios (solo importación masiva).
	Truncate(ctx context.Context) error
}
