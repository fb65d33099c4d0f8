package events

import (
	"context"

	"github.com/jhoicas/Concesionarios-api/internal/application/usecase"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
	"github.com/jhoicas/Concesionarios-api/pkg/logger"
)

var _ usecase.EventPublisher = (*LogPublisher)(nil)

// LogPublisher sink de eventos que solo registra en el log. Se usa cuando
// no hay broker configurado (desarrollo, importaciones locales).
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publisher de log.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// PublishDealershipCreated registra el evento en el log.
func (p *LogPublisher) PublishDealershipCreated(_ context.Context, d *entity.Dealership) error {
	p.log.Info().Int64("dealership_id", d.ID).Str("name", d.Name).Msg("evento DealershipCreated")
	return nil
}

// PublishDealershipUpdated registra el evento en el log.
func (p *LogPublisher) PublishDealershipUpdated(_ context.Context, before, after *entity.Dealership) error {
	p.log.Info().
		Int64("dealership_id", after.ID).
		Str("status_before", string(before.Status)).
		Str("status_after", string(after.Status)).
		Msg("evento DealershipUpdated")
	return nil
}
