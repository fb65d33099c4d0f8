package importer

import (
	"context"
	"fmt"

	"github.com/jhoicas/Concesionarios-api/internal/domain"
	"github.com/jhoicas/Concesionarios-api/internal/domain/repository"
	"github.com/jhoicas/Concesionarios-api/pkg/logger"
)

// chunkSize filas por página: acota memoria en fuentes grandes.
const chunkSize = 100

// sampleSize filas mostradas en un dry-run.
const sampleSize = 3

// CloneOptions opciones de una corrida de clonado.
type CloneOptions struct {
	// Truncate vacía la tabla destino antes de copiar. La confirmación
	// interactiva es responsabilidad del CLI, no de este caso de uso.
	Truncate bool
	// DryRun muestra las primeras filas mapeadas sin escribir nada.
	DryRun bool
}

// CloneResult resumen de una corrida.
type CloneResult struct {
	Fields   []string
	Total    int64
	Imported int64
	Failed   int64
	DryRun   bool
	Samples  []Record
}

// CloneUseCase copia concesionarios desde una fuente tabular externa,
// cruzando solo los campos que existan en ambos esquemas.
type CloneUseCase struct {
	repo repository.DealershipRepository
	log  *logger.Logger
}

// NewCloneUseCase construye el caso de uso de clonado.
func NewCloneUseCase(repo repository.DealershipRepository, log *logger.Logger) *CloneUseCase {
	return &CloneUseCase{repo: repo, log: log}
}

// Run ejecuta el clonado. Los fallos de preparación (sin solape de campos)
// abortan antes de tocar fila alguna; los fallos por fila se registran y
// cuentan sin abortar la corrida completa.
func (uc *CloneUseCase) Run(ctx context.Context, src TabularSource, opts CloneOptions) (*CloneResult, error) {
	columns, err := src.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("columnas de la fuente: %w", err)
	}
	fields := MatchingFields(columns)
	if len(fields) == 0 {
		return nil, domain.ErrNoMatchingFields
	}
	uc.log.Info().Strs("fields", fields).Msg("campos en común")

	total, err := src.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar filas de la fuente: %w", err)
	}
	uc.log.Info().Int64("total", total).Msg("filas por procesar")

	result := &CloneResult{Fields: fields, Total: total, DryRun: opts.DryRun}

	if opts.DryRun {
		rows, err := src.FetchPage(ctx, fields, 0, sampleSize)
		if err != nil {
			return nil, fmt.Errorf("muestra de la fuente: %w", err)
		}
		for _, row := range rows {
			result.Samples = append(result.Samples, MapForTarget(row))
		}
		return result, nil
	}

	if opts.Truncate {
		if err := uc.repo.Truncate(ctx); err != nil {
			return nil, fmt.Errorf("truncar destino: %w", err)
		}
		uc.log.Info().Msg("tabla de concesionarios truncada")
	}

	for offset := int64(0); offset < total; offset += chunkSize {
		rows, err := src.FetchPage(ctx, fields, int(offset), chunkSize)
		if err != nil {
			return nil, fmt.Errorf("página offset=%d: %w", offset, err)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			mapped := MapForTarget(row)
			if _, err := uc.repo.Create(ctx, EntityFromRecord(mapped)); err != nil {
				result.Failed++
				uc.log.Error().Err(err).Str("name", stringOf(mapped["name"])).Msg("fila no importada")
				continue
			}
			result.Imported++
		}
	}

	uc.log.Info().
		Int64("imported", result.Imported).
		Int64("failed", result.Failed).
		Msg("clonado terminado")
	return result, nil
}
