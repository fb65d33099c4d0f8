package importer

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

// Record fila débilmente tipada venida de una fuente externa (columna →
// valor variante). Es un tipo distinto del agregado a propósito: la única
// frontera entre ambos mundos es EntityFromRecord.
type Record map[string]any

// targetFields columnas del destino que una fuente puede aportar.
// La intersección con las columnas reales de la fuente se calcula una sola
// vez por corrida; lo que la fuente traiga de más se descarta en silencio.
var targetFields = []string{
	"name", "address", "city", "state", "zip_code",
	"phone", "current_solution_name", "current_solution_use",
	"notes", "status", "rating", "type", "in_development", "dev_status",
}

// MatchingFields intersecta las columnas del destino con las de la fuente,
// conservando el orden del destino. Vacío = fuentes sin solape de esquema.
func MatchingFields(sourceColumns []string) []string {
	available := make(map[string]struct{}, len(sourceColumns))
	for _, c := range sourceColumns {
		available[c] = struct{}{}
	}
	var fields []string
	for _, f := range targetFields {
		if _, ok := available[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// MapForTarget produce un registro normalizado listo para persistir:
// copia los campos reconocidos, normaliza los tres enums (con su valor por
// defecto cuando la clave falta), fuerza in_development a booleano y asigna
// el tipo por defecto cuando falta o viene vacío.
func MapForTarget(row Record) Record {
	out := Record{}
	for _, f := range targetFields {
		if v, ok := row[f]; ok {
			out[f] = v
		}
	}

	out["status"] = string(entity.NormalizeStatus(stringOf(out["status"])))
	out["rating"] = string(entity.NormalizeRating(stringOf(out["rating"])))
	out["dev_status"] = string(entity.NormalizeDevStatus(stringOf(out["dev_status"])))
	out["in_development"] = boolOf(out["in_development"])

	if t := stringOf(out["type"]); t == "" {
		out["type"] = entity.TypeDefault
	} else {
		out["type"] = t
	}
	return out
}

// EntityFromRecord es la única conversión débil → fuerte del módulo.
// Espera un Record ya pasado por MapForTarget.
func EntityFromRecord(rec Record) *entity.Dealership {
	return &entity.Dealership{
		Name:                stringOf(rec["name"]),
		Address:             stringOf(rec["address"]),
		City:                stringOf(rec["city"]),
		State:               stringOf(rec["state"]),
		ZipCode:             stringOf(rec["zip_code"]),
		Phone:               stringOf(rec["phone"]),
		CurrentSolutionName: stringOf(rec["current_solution_name"]),
		CurrentSolutionUse:  stringOf(rec["current_solution_use"]),
		Notes:               stringOf(rec["notes"]),
		Status:              entity.Status(stringOf(rec["status"])),
		Rating:              entity.Rating(stringOf(rec["rating"])),
		Type:                stringOf(rec["type"]),
		InDevelopment:       boolOf(rec["in_development"]),
		DevStatus:           entity.DevStatus(stringOf(rec["dev_status"])),
	}
}

// stringOf colapsa los tipos que devuelven los drivers (string, []byte,
// enteros...) a string; nil → "".
func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// boolOf coerción booleana laxa: acepta bool, números y las grafías
// habituales en fuentes legadas ("1", "true", "yes"). nil/vacío → false.
func boolOf(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		s := strings.ToLower(strings.TrimSpace(stringOf(v)))
		return s != "" && s != "0" && s != "false" && s != "no"
	}
}
