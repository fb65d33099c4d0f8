package importer

import "context"

// TabularSource puerto de lectura sobre una fuente tabular arbitraria
// (otra base, otro esquema). El clonado se adapta al subconjunto de campos
// que la fuente realmente tenga.
type TabularSource interface {
	// Count devuelve el total de filas de la tabla origen.
	Count(ctx context.Context) (int64, error)
	// Columns lista los nombres de columna de la tabla origen.
	Columns(ctx context.Context) ([]string, error)
	// FetchPage devuelve una página ordenada de filas proyectada a columns.
	FetchPage(ctx context.Context, columns []string, offset, limit int) ([]Record, error)
	Close(ctx context.Context) error
}
