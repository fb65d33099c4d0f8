package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Concesionarios-api/internal/domain"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
	"github.com/jhoicas/Concesionarios-api/internal/domain/repository"
)

var _ repository.DealershipRepository = (*DealershipRepo)(nil)

// DealershipRepo implementación del puerto DealershipRepository sobre PostgreSQL.
type DealershipRepo struct {
	pool *pgxpool.Pool
}

// NewDealershipRepository construye el adaptador de persistencia.
func NewDealershipRepository(pool *pgxpool.Pool) *DealershipRepo {
	return &DealershipRepo{pool: pool}
}

const dealershipCols = `
	id, name, address, city, state, zip_code, phone, email,
	current_solution_name, current_solution_use, notes,
	status, rating, type, in_development, dev_status,
	created_at, updated_at`

// updatableCols lista blanca para el UPDATE dinámico del change-set.
var updatableCols = map[string]struct{}{
	"name": {}, "address": {}, "city": {}, "state": {}, "zip_code": {},
	"phone": {}, "email": {}, "current_solution_name": {},
	"current_solution_use": {}, "notes": {}, "status": {}, "rating": {},
	"type": {}, "in_development": {}, "dev_status": {},
}

func scanDealership(row pgx.Row) (*entity.Dealership, error) {
	var d entity.Dealership
	err := row.Scan(
		&d.ID, &d.Name, &d.Address, &d.City, &d.State, &d.ZipCode, &d.Phone, &d.Email,
		&d.CurrentSolutionName, &d.CurrentSolutionUse, &d.Notes,
		&d.Status, &d.Rating, &d.Type, &d.InDevelopment, &d.DevStatus,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByID obtiene el agregado con su grafo completo; (nil, nil) si no existe.
func (r *DealershipRepo) FindByID(ctx context.Context, id int64) (*entity.Dealership, error) {
	query := `SELECT` + dealershipCols + ` FROM dealerships WHERE id = $1`
	d, err := scanDealership(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealership: %w", err)
	}
	if err := r.attachRelations(ctx, []*entity.Dealership{d}, true); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID como FindByID pero falla con domain.ErrNotFound si no existe.
func (r *DealershipRepo) GetByID(ctx context.Context, id int64) (*entity.Dealership, error) {
	d, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// List lista paginado por fecha de creación con users/stores/contacts cargados.
func (r *DealershipRepo) List(ctx context.Context, limit, offset int) ([]*entity.Dealership, error) {
	query := `SELECT` + dealershipCols + `
		FROM dealerships ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

// CountAll total de concesionarios.
func (r *DealershipRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM dealerships`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dealerships: %w", err)
	}
	return n, nil
}

// Create persiste un concesionario nuevo y devuelve la fila con identidad
// y timestamps asignados por la base.
func (r *DealershipRepo) Create(ctx context.Context, d *entity.Dealership) (*entity.Dealership, error) {
	query := `
		INSERT INTO dealerships (
			name, address, city, state, zip_code, phone, email,
			current_solution_name, current_solution_use, notes,
			status, rating, type, in_development, dev_status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		d.Name, d.Address, d.City, d.State, d.ZipCode, d.Phone, d.Email,
		d.CurrentSolutionName, d.CurrentSolutionUse, d.Notes,
		d.Status, d.Rating, d.Type, d.InDevelopment, d.DevStatus,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicate, d.Name)
		}
		return nil, fmt.Errorf("insert dealership: %w", err)
	}
	return d, nil
}

// Update aplica el change-set como parche parcial y recarga el agregado
// completo. Las claves se ordenan para que el SQL generado sea determinista.
func (r *DealershipRepo) Update(ctx context.Context, id int64, changeSet map[string]any) (*entity.Dealership, error) {
	cols := make([]string, 0, len(changeSet))
	for col := range changeSet {
		if _, ok := updatableCols[col]; !ok {
			return nil, fmt.Errorf("%w: columna %q no actualizable", domain.ErrInvalidInput, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := ""
	args := []any{id}
	for i, col := range cols {
		set += fmt.Sprintf("%s = $%d, ", col, i+2)
		args = append(args, changeSet[col])
	}
	set += "updated_at = now()"

	tag, err := r.pool.Exec(ctx, `UPDATE dealerships SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update dealership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete borra el concesionario; dealership_user cae en cascada por FK.
func (r *DealershipRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dealerships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dealership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByUser concesionarios con el usuario asignado en la tabla puente.
func (r *DealershipRepo) FindByUser(ctx context.Context, userID int64) ([]*entity.Dealership, error) {
	query := `SELECT` + qualifiedCols() + `
		FROM dealerships d
		JOIN dealership_user du ON du.dealership_id = d.id
		WHERE du.user_id = $1
		ORDER BY d.created_at DESC, d.id DESC`
	return r.queryMany(ctx, query, userID)
}

// FindByType filtro de igualdad por tipo.
func (r *DealershipRepo) FindByType(ctx context.Context, dealershipType string) ([]*entity.Dealership, error) {
	query := `SELECT` + dealershipCols + `
		FROM dealerships WHERE type = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, query, dealershipType)
}

// FindByDevStatus filtro de igualdad por estado de desarrollo.
func (r *DealershipRepo) FindByDevStatus(ctx context.Context, devStatus entity.DevStatus) ([]*entity.Dealership, error) {
	query := `SELECT` + dealershipCols + `
		FROM dealerships WHERE dev_status = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, query, devStatus)
}

// Search substring case-insensitive (ILIKE) con OR sobre name, city, state y email.
func (r *DealershipRepo) Search(ctx context.Context, query string) ([]*entity.Dealership, error) {
	pattern := "%" + query + "%"
	sql := `SELECT` + dealershipCols + `
		FROM dealerships
		WHERE name ILIKE $1 OR city ILIKE $1 OR state ILIKE $1 OR email ILIKE $1
		ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, pattern)
}

// AssignUser inserta la asignación en la tabla puente (idempotente).
func (r *DealershipRepo) AssignUser(ctx context.Context, dealershipID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO dealership_user (dealership_id, user_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`, dealershipID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("assign user: %w", err)
	}
	return nil
}

// RemoveUser borra la asignación; retirar un usuario no asignado no es error.
func (r *DealershipRepo) RemoveUser(ctx context.Context, dealershipID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM dealership_user WHERE dealership_id = $1 AND user_id = $2`,
		dealershipID, userID)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// UsersOf carga solo la relación de usuarios de un concesionario.
func (r *DealershipRepo) UsersOf(ctx context.Context, dealershipID int64) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN dealership_user du ON du.user_id = u.id
		WHERE du.dealership_id = $1
		ORDER BY u.id`, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("users of dealership: %w", err)
	}
	defer rows.Close()
	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// MetricsByID conteos crudos para las métricas; el derivado se calcula arriba.
func (r *DealershipRepo) MetricsByID(ctx context.Context, id int64) (*repository.DealershipMetricsRow, error) {
	query := `
		SELECT
			(SELECT count(*) FROM stores WHERE dealership_id = $1),
			(SELECT count(*) FROM contacts WHERE dealership_id = $1),
			(SELECT count(*) FROM progresses WHERE dealership_id = $1 AND completed_at IS NULL),
			(SELECT count(*) FROM progresses WHERE dealership_id = $1 AND completed_at IS NOT NULL),
			(SELECT count(*) FROM progresses WHERE dealership_id = $1),
			(SELECT max(created_at) FROM progresses WHERE dealership_id = $1)`
	var row repository.DealershipMetricsRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.StoreCount, &row.ContactCount, &row.ActiveProgress,
		&row.CompletedProgress, &row.TotalProgress, &row.LastActivity,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics dealership: %w", err)
	}
	return &row, nil
}

// Truncate vacía la tabla destino (importación con --truncate).
func (r *DealershipRepo) Truncate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE dealerships RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate dealerships: %w", err)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (r *DealershipRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Dealership, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dealerships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dealership
	for rows.Next() {
		d, err := scanDealership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dealership: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachRelations(ctx, list, false); err != nil {
		return nil, err
	}
	return list, nil
}

// attachRelations carga en bloque (sin N+1) users, stores y contacts; los
// progresses solo cuando la operación pide el grafo completo.
func (r *DealershipRepo) attachRelations(ctx context.Context, list []*entity.Dealership, withProgresses bool) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(list))
	byID := make(map[int64]*entity.Dealership, len(list))
	for _, d := range list {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	rows, err := r.pool.Query(ctx, `
		SELECT du.dealership_id, u.id, u.name, u.email
		FROM users u
		JOIN dealership_user du ON du.user_id = u.id
		WHERE du.dealership_id = ANY($1)
		ORDER BY u.id`, ids)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for rows.Next() {
		var dID int64
		var u entity.User
		if err := rows.Scan(&dID, &u.ID, &u.Name, &u.Email); err != nil {
			rows.Close()
			return fmt.Errorf("scan user: %w", err)
		}
		byID[dID].Users = append(byID[dID].Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, dealership_id, name, city, created_at
		FROM stores WHERE dealership_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load stores: %w", err)
	}
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.DealershipID, &s.Name, &s.City, &s.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan store: %w", err)
		}
		byID[s.DealershipID].Stores = append(byID[s.DealershipID].Stores, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, dealership_id, name, email, phone, created_at
		FROM contacts WHERE dealership_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.DealershipID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan contact: %w", err)
		}
		byID[c.DealershipID].Contacts = append(byID[c.DealershipID].Contacts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if !withProgresses {
		return nil
	}
	rows, err = r.pool.Query(ctx, `
		SELECT id, dealership_id, title, completed_at, created_at
		FROM progresses WHERE dealership_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load progresses: %w", err)
	}
	for rows.Next() {
		var p entity.Progress
		var completed *time.Time
		if err := rows.Scan(&p.ID, &p.DealershipID, &p.Title, &completed, &p.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan progress: %w", err)
		}
		p.CompletedAt = completed
		byID[p.DealershipID].Progresses = append(byID[p.DealershipID].Progresses, p)
	}
	rows.Close()
	return rows.Err()
}

func qualifiedCols() string {
	return `
	d.id, d.name, d.address, d.city, d.state, d.zip_code, d.phone, d.email,
	d.current_solution_name, d.current_solution_use, d.notes,
	d.status, d.rating, d.type, d.in_development, d.dev_status,
	d.created_at, d.updated_at`
}
