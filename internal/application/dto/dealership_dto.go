package dto

import "time"

// CreateDealershipRequest entrada para crear un concesionario.
// La validación de formato (zip, teléfono, estado) ocurre en el handler;
// status/rating/dev_status se normalizan defensivamente en el caso de uso.
type CreateDealershipRequest struct {
	UserID              int64  `json:"user_id" validate:"required"`
	Name                string `json:"name" validate:"required,max=255"`
	Address             string `json:"address" validate:"required,max=500"`
	City                string `json:"city" validate:"required,max=100"`
	State               string `json:"state" validate:"required,len=2"`
	ZipCode             string `json:"zip_code" validate:"required"`
	Phone               string `json:"phone" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	CurrentSolutionName string `json:"current_solution_name"`
	CurrentSolutionUse  string `json:"current_solution_use"`
	Notes               string `json:"notes"`
	Status              string `json:"status"`
	Rating              string `json:"rating"`
	Type                string `json:"type"`
	InDevelopment       bool   `json:"in_development"`
	DevStatus           string `json:"dev_status"`
}

// UpdateDealershipRequest entrada para actualización parcial (PATCH).
// Todos los campos son punteros: nil = no enviado, no tocar.
type UpdateDealershipRequest struct {
	Name                *string `json:"name"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zip_code"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email"`
	CurrentSolutionName *string `json:"current_solution_name"`
	CurrentSolutionUse  *string `json:"current_solution_use"`
	Notes               *string `json:"notes"`
	Status              *string `json:"status"`
	Rating              *string `json:"rating"`
	Type                *string `json:"type"`
	InDevelopment       *bool   `json:"in_development"`
	DevStatus           *string `json:"dev_status"`
}

// ChangeSet construye el change-set mínimo de la actualización: solo entran
// las claves que el llamador envió explícitamente. Nunca inyecta valores por
// defecto (a diferencia del mapper de importación: un update debe ser
// quirúrgico). Sin campos enviados → mapa vacío.
func (r UpdateDealershipRequest) ChangeSet() map[string]any {
	set := map[string]any{}
	putStr := func(col string, v *string) {
		if v != nil {
			set[col] = *v
		}
	}
	putStr("name", r.Name)
	putStr("address", r.Address)
	putStr("city", r.City)
	putStr("state", r.State)
	putStr("zip_code", r.ZipCode)
	putStr("phone", r.Phone)
	putStr("email", r.Email)
	putStr("current_solution_name", r.CurrentSolutionName)
	putStr("current_solution_use", r.CurrentSolutionUse)
	putStr("notes", r.Notes)
	putStr("status", r.Status)
	putStr("rating", r.Rating)
	putStr("type", r.Type)
	if r.InDevelopment != nil {
		set["in_development"] = *r.InDevelopment
	}
	putStr("dev_status", r.DevStatus)
	return set
}

// AssignUserRequest entrada para asignar/retirar un usuario.
type AssignUserRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// DealershipResponse salida de un concesionario con sus relaciones cargadas.
type DealershipResponse struct {
	ID                  int64              `json:"id"`
	Name                string             `json:"name"`
	Address             string             `json:"address"`
	City                string             `json:"city"`
	State               string             `json:"state"`
	ZipCode             string             `json:"zip_code"`
	Phone               string             `json:"phone"`
	Email               string             `json:"email"`
	CurrentSolutionName string             `json:"current_solution_name"`
	CurrentSolutionUse  string             `json:"current_solution_use"`
	Notes               string             `json:"notes"`
	Status              string             `json:"status"`
	Rating              string             `json:"rating"`
	Type                string             `json:"type"`
	InDevelopment       bool               `json:"in_development"`
	DevStatus           string             `json:"dev_status"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Users               []UserResponse     `json:"users,omitempty"`
	Stores              []StoreResponse    `json:"stores,omitempty"`
	Contacts            []ContactResponse  `json:"contacts,omitempty"`
	Progresses          []ProgressResponse `json:"progresses,omitempty"`
}

// UserResponse referencia a un usuario asignado.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreResponse tienda de un concesionario.
type StoreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ContactResponse contacto de un concesionario.
type ContactResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ProgressResponse registro de avance.
type ProgressResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DealershipListResponse lista paginada de concesionarios.
type DealershipListResponse struct {
	Items []DealershipResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// MetricsResponse métricas derivadas de un concesionario.
// CompletionRate va en porcentaje con dos decimales (0.0 sin avances).
type MetricsResponse struct {
	TotalStores      int64      `json:"total_stores"`
	TotalContacts    int64      `json:"total_contacts"`
	ActiveProgresses int64      `json:"active_progresses"`
	CompletionRate   float64    `json:"completion_rate"`
	LastActivity     *time.Time `json:"last_activity"`
}
