package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Concesionarios-api/internal/application/importer"
)

var _ importer.TabularSource = (*PostgresSource)(nil)

// PostgresSource fuente tabular sobre una conexión PostgreSQL externa.
// Lee en páginas ordenadas por id para que el avance por chunks sea estable.
type PostgresSource struct {
	conn  *pgx.Conn
	table string
}

// NewPostgresSource abre la conexión al origen y valida que responda.
func NewPostgresSource(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("conectar a la fuente: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping fuente: %w", err)
	}
	return &PostgresSource{conn: conn, table: table}, nil
}

// Count total de filas de la tabla origen.
func (s *PostgresSource) Count(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, pgx.Identifier{s.table}.Sanitize())
	if err := s.conn.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

// Columns nombres de columna según information_schema.
func (s *PostgresSource) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = $1 ORDER BY ordinal_position`, s.table)
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", s.table, err)
	}
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("tabla origen %q no existe o no tiene columnas", s.table)
	}
	return cols, rows.Err()
}

// FetchPage página ordenada proyectada a columns. Los nombres de columna ya
// vienen cruzados contra la lista fija del destino, no de entrada libre.
func (s *PostgresSource) FetchPage(ctx context.Context, columns []string, offset, limit int) ([]importer.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id LIMIT $1 OFFSET $2`,
		joinIdentifiers(columns), pgx.Identifier{s.table}.Sanitize())
	rows, err := s.conn.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.table, err)
	}
	defer rows.Close()

	var page []importer.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan fila: %w", err)
		}
		rec := importer.Record{}
		for i, col := range columns {
			rec[col] = values[i]
		}
		page = append(page, rec)
	}
	return page, rows.Err()
}

// Close cierra la conexión al origen.
func (s *PostgresSource) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func joinIdentifiers(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += pgx.Identifier{c}.Sanitize()
	}
	return out
}
