package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesionarios-api/internal/application/dto"
)

func TestChangeSet_SinCamposEnviados(t *testing.T) {
	set := dto.UpdateDealershipRequest{}.ChangeSet()
	assert.Empty(t, set, "sin campos enviados el change-set queda vacío, sin defaults")
}

func TestChangeSet_SoloLasClavesEnviadas(t *testing.T) {
	name := "Nuevo Nombre"
	set := dto.UpdateDealershipRequest{Name: &name}.ChangeSet()

	require.Len(t, set, 1)
	assert.Equal(t, "Nuevo Nombre", set["name"])
}

func TestChangeSet_StringVacioEsUnValor(t *testing.T) {
	// "" explícito borra el campo; es distinto de no enviarlo.
	empty := ""
	set := dto.UpdateDealershipRequest{Notes: &empty}.ChangeSet()

	require.Contains(t, set, "notes")
	assert.Equal(t, "", set["notes"])
}

func TestChangeSet_BooleanoFalse(t *testing.T) {
	f := false
	set := dto.UpdateDealershipRequest{InDevelopment: &f}.ChangeSet()

	require.Contains(t, set, "in_development")
	assert.Equal(t, false, set["in_development"])
}

func TestChangeSet_ColumnasSnakeCase(t *testing.T) {
	zip := "33601"
	sol := "DMS Pro"
	dev := "completed"
	set := dto.UpdateDealershipRequest{
		ZipCode:             &zip,
		CurrentSolutionName: &sol,
		DevStatus:           &dev,
	}.ChangeSet()

	assert.Equal(t, map[string]any{
		"zip_code":              "33601",
		"current_solution_name": "DMS Pro",
		"dev_status":            "completed",
	}, set)
}

// El contrato puntero-nil depende de que el JSON parcial deje en nil lo
// no enviado; este test ancla ese comportamiento.
func TestChangeSet_DesdeJSONParcial(t *testing.T) {
	var req dto.UpdateDealershipRequest
	require.NoError(t, json.Unmarshal([]byte(`{"city":"Tampa","in_development":true}`), &req))

	set := req.ChangeSet()
	assert.Equal(t, map[string]any{"city": "Tampa", "in_development": true}, set)
}

func TestDefaultPage(t *testing.T) {
	var p dto.PageRequest
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{Limit: 500, Offset: 40}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit, "el límite se acota a 100")
	assert.Equal(t, 40, p.Offset)

	p = dto.PageRequest{Limit: -5, Offset: -1}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
