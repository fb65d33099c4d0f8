package entity

import "strings"

// Status estado de ciclo de vida de un concesionario.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	// StatusImported marca registros traídos por importación masiva cuyo
	// estado real no se pudo determinar.
	StatusImported Status = "imported"
)

// Rating prioridad comercial del concesionario.
type Rating string

const (
	RatingHot  Rating = "hot"
	RatingWarm Rating = "warm"
	RatingCold Rating = "cold"
)

// DevStatus estado del desarrollo/implantación con el concesionario.
type DevStatus string

const (
	DevStatusNotStarted DevStatus = "not_started"
	DevStatusInProgress DevStatus = "in_progress"
	DevStatusCompleted  DevStatus = "completed"
	DevStatusOnHold     DevStatus = "on_hold"
)

// TypeDefault tipo asignado cuando la fuente no trae uno.
const TypeDefault = "dealership"

// Tablas de sinónimos: múltiples grafías de entrada → un valor canónico.
// Las fuentes externas traen valores libres ("YES", "High", "working"...),
// así que la normalización es total: cualquier entrada produce un enum válido.
var statusSynonyms = map[string]Status{
	"active": StatusActive, "1": StatusActive, "true": StatusActive, "yes": StatusActive,
	"inactive": StatusInactive, "0": StatusInactive, "false": StatusInactive, "no": StatusInactive,
}

var ratingSynonyms = map[string]Rating{
	"hot": RatingHot, "high": RatingHot, "h": RatingHot,
	"warm": RatingWarm, "medium": RatingWarm, "w": RatingWarm, "med": RatingWarm,
	"cold": RatingCold, "low": RatingCold, "c": RatingCold,
}

var devStatusSynonyms = map[string]DevStatus{
	"not_started": DevStatusNotStarted, "not started": DevStatusNotStarted,
	"pending": DevStatusNotStarted, "new": DevStatusNotStarted,
	"in_progress": DevStatusInProgress, "in progress": DevStatusInProgress,
	"active": DevStatusInProgress, "working": DevStatusInProgress,
	"completed": DevStatusCompleted, "complete": DevStatusCompleted,
	"done": DevStatusCompleted, "finished": DevStatusCompleted,
	"on_hold": DevStatusOnHold, "on hold": DevStatusOnHold,
	"paused": DevStatusOnHold, "hold": DevStatusOnHold,
}

// NormalizeStatus mapea un valor libre al enum Status.
// Sin coincidencia (o vacío) → StatusImported.
func NormalizeStatus(raw string) Status {
	if s, ok := statusSynonyms[canon(raw)]; ok {
		return s
	}
	return StatusImported
}

// NormalizeRating mapea un valor libre al enum Rating.
// Sin coincidencia (o vacío) → RatingWarm.
func NormalizeRating(raw string) Rating {
	if r, ok := ratingSynonyms[canon(raw)]; ok {
		return r
	}
	return RatingWarm
}

// NormalizeDevStatus mapea un valor libre al enum DevStatus.
// Sin coincidencia (o vacío) → DevStatusNotStarted.
func NormalizeDevStatus(raw string) DevStatus {
	if d, ok := devStatusSynonyms[canon(raw)]; ok {
		return d
	}
	return DevStatusNotStarted
}

func canon(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
