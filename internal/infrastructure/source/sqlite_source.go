package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // driver sin CGo

	"github.com/jhoicas/Concesionarios-api/internal/application/importer"
)

var _ importer.TabularSource = (*SQLiteSource)(nil)

// SQLiteSource fuente tabular sobre un archivo SQLite (exports de CRMs
// legados suelen llegar así). Pagina ordenando por rowid.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// NewSQLiteSource abre el archivo en modo solo lectura.
func NewSQLiteSource(ctx context.Context, path, table string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLiteSource{db: db, table: table}, nil
}

// Count total de filas de la tabla origen.
func (s *SQLiteSource) Count(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf(`SELECT count(*) FROM %q`, s.table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

// Columns nombres de columna vía PRAGMA table_info.
func (s *SQLiteSource) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, s.table))
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", s.table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("tabla origen %q no existe o no tiene columnas", s.table)
	}
	return cols, rows.Err()
}

// FetchPage página ordenada por rowid proyectada a columns.
func (s *SQLiteSource) FetchPage(ctx context.Context, columns []string, offset, limit int) ([]importer.Record, error) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	query := fmt.Sprintf(`SELECT %s FROM %q ORDER BY rowid LIMIT ? OFFSET ?`,
		strings.Join(quoted, ", "), s.table)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.table, err)
	}
	defer rows.Close()

	var page []importer.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
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

// Close cierra el archivo.
func (s *SQLiteSource) Close(context.Context) error {
	return s.db.Close()
}
