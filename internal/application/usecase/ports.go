package usecase

import (
	"context"

	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

// EventPublisher puerto hacia el sink de notificaciones de ciclo de vida.
// La semántica de entrega (reintentos, sync/async) es responsabilidad del
// sink, no de este módulo.
type EventPublisher interface {
	PublishDealershipCreated(ctx context.Context, d *entity.Dealership) error
	// PublishDealershipUpdated lleva los snapshots previo y posterior para
	// que los suscriptores puedan calcular el diff.
	PublishDealershipUpdated(ctx context.Context, before, after *entity.Dealership) error
}
