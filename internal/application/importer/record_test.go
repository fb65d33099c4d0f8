package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesionarios-api/internal/application/importer"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

func TestMatchingFields_ConservaOrdenDelDestino(t *testing.T) {
	// La fuente viene desordenada y con columnas propias; la intersección
	// sale en el orden del destino y sin las columnas extrañas.
	fields := importer.MatchingFields([]string{"legacy_id", "city", "name", "owner_ssn", "status"})
	assert.Equal(t, []string{"name", "city", "status"}, fields)
}

func TestMatchingFields_SinSolape(t *testing.T) {
	assert.Empty(t, importer.MatchingFields([]string{"foo", "bar"}))
	assert.Empty(t, importer.MatchingFields(nil))
}

func TestMatchingFields_NoIncluyeEmail(t *testing.T) {
	// email es propio del alta por API, nunca viene de una fuente tabular.
	assert.Empty(t, importer.MatchingFields([]string{"email"}))
}

func TestMapForTarget_FilaLegadaCompleta(t *testing.T) {
	row := importer.Record{
		"name":           "Acme Motors",
		"status":         "YES",
		"rating":         "high",
		"dev_status":     "working",
		"in_development": "1",
		"legacy_id":      42, // columna de la fuente, se descarta
	}
	out := importer.MapForTarget(row)

	assert.Equal(t, "Acme Motors", out["name"])
	assert.Equal(t, "active", out["status"])
	assert.Equal(t, "hot", out["rating"])
	assert.Equal(t, "in_progress", out["dev_status"])
	assert.Equal(t, true, out["in_development"])
	assert.Equal(t, "dealership", out["type"])
	assert.NotContains(t, out, "legacy_id")
}

func TestMapForTarget_DefaultsConClavesAusentes(t *testing.T) {
	out := importer.MapForTarget(importer.Record{"name": "Sin Datos"})

	assert.Equal(t, "imported", out["status"])
	assert.Equal(t, "warm", out["rating"])
	assert.Equal(t, "not_started", out["dev_status"])
	assert.Equal(t, false, out["in_development"])
	assert.Equal(t, "dealership", out["type"])
}

func TestMapForTarget_TipoExplicitoSeRespeta(t *testing.T) {
	out := importer.MapForTarget(importer.Record{"type": "rv"})
	assert.Equal(t, "rv", out["type"])
}

func TestMapForTarget_ValoresNoString(t *testing.T) {
	// Los drivers devuelven []byte o números; el mapper no debe romperse.
	out := importer.MapForTarget(importer.Record{
		"name":           []byte("Bytes Autos"),
		"status":         []byte("no"),
		"in_development": int64(0),
	})
	assert.Equal(t, "inactive", out["status"])
	assert.Equal(t, false, out["in_development"])
}

func TestEntityFromRecord_Conversion(t *testing.T) {
	rec := importer.MapForTarget(importer.Record{
		"name":           "Acme Motors",
		"city":           "Tampa",
		"state":          "FL",
		"zip_code":       "33601",
		"status":         "1",
		"rating":         "low",
		"dev_status":     "done",
		"in_development": true,
	})
	d := importer.EntityFromRecord(rec)
	require.NotNil(t, d)

	assert.Equal(t, "Acme Motors", d.Name)
	assert.Equal(t, "Tampa", d.City)
	assert.Equal(t, "FL", d.State)
	assert.Equal(t, "33601", d.ZipCode)
	assert.Equal(t, entity.StatusActive, d.Status)
	assert.Equal(t, entity.RatingCold, d.Rating)
	assert.Equal(t, entity.DevStatusCompleted, d.DevStatus)
	assert.True(t, d.InDevelopment)
	assert.Equal(t, entity.TypeDefault, d.Type)
	assert.Empty(t, d.Email)
	assert.Zero(t, d.ID)
}
