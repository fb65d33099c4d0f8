package entity

import "time"

// Dealership raíz de agregado: un concesionario con sus relaciones
// (usuarios asignados, tiendas, contactos y registros de avance).
// Las relaciones se cargan según la operación; un slice nil significa
// "no cargada", no "vacía".
type Dealership struct {
	ID                  int64
	Name                string
	Address             string
	City                string
	State               string
	ZipCode             string
	Phone               string
	Email               string
	CurrentSolutionName string
	CurrentSolutionUse  string
	Notes               string
	Status              Status
	Rating              Rating
	Type                string
	InDevelopment       bool
	DevStatus           DevStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Users      []User
	Stores     []Store
	Contacts   []Contact
	Progresses []Progress
}

// User referencia a un usuario asignado (la gestión de usuarios vive fuera
// de este módulo; aquí solo se relacionan).
type User struct {
	ID    int64
	Name  string
	Email string
}

// Store tienda/sede física de un concesionario.
type Store struct {
	ID           int64
	DealershipID int64
	Name         string
	City         string
	CreatedAt    time.Time
}

// Contact persona de contacto de un concesionario.
type Contact struct {
	ID           int64
	DealershipID int64
	Name         string
	Email        string
	Phone        string
	CreatedAt    time.Time
}

// Progress registro de avance; CompletedAt nil = tarea aún activa.
type Progress struct {
	ID           int64
	DealershipID int64
	Title        string
	CompletedAt  *time.Time
	CreatedAt    time.Time
}
