package source

import (
	"context"
	"strings"

	"github.com/jhoicas/Concesionarios-api/internal/application/importer"
)

// Open elige el adaptador según la forma del connection string:
// archivos .db/.sqlite (o prefijo sqlite:) → SQLite; cualquier otra cosa se
// trata como DSN de PostgreSQL.
func Open(ctx context.Context, dsn, table string) (importer.TabularSource, error) {
	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return NewSQLiteSource(ctx, path, table)
	}
	if strings.HasSuffix(dsn, ".db") || strings.HasSuffix(dsn, ".sqlite") || strings.HasSuffix(dsn, ".sqlite3") {
		return NewSQLiteSource(ctx, dsn, table)
	}
	return NewPostgresSource(ctx, dsn, table)
}
