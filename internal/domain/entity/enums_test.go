package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

// Las tablas de sinónimos son el contrato con las fuentes legadas: cada
// grafía conocida tiene que caer en su valor canónico y cualquier otra cosa
// en el default del componente. Por eso los casos se enumeran completos.

func TestNormalizeStatus_Sinonimos(t *testing.T) {
	cases := map[string]entity.Status{
		"active": entity.StatusActive, "1": entity.StatusActive,
		"true": entity.StatusActive, "yes": entity.StatusActive,
		"inactive": entity.StatusInactive, "0": entity.StatusInactive,
		"false": entity.StatusInactive, "no": entity.StatusInactive,
	}
	for raw, want := range cases {
		assert.Equal(t, want, entity.NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestNormalizeStatus_MayusculasYEspacios(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.NormalizeStatus("  ACTIVE  "))
	assert.Equal(t, entity.StatusActive, entity.NormalizeStatus("YES"))
	assert.Equal(t, entity.StatusInactive, entity.NormalizeStatus("No "))
}

func TestNormalizeStatus_DefaultImported(t *testing.T) {
	for _, raw := range []string{"", "   ", "banana", "maybe", "2"} {
		assert.Equal(t, entity.StatusImported, entity.NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestNormalizeRating_Sinonimos(t *testing.T) {
	cases := map[string]entity.Rating{
		"hot": entity.RatingHot, "high": entity.RatingHot, "h": entity.RatingHot,
		"warm": entity.RatingWarm, "medium": entity.RatingWarm,
		"w": entity.RatingWarm, "med": entity.RatingWarm,
		"cold": entity.RatingCold, "low": entity.RatingCold, "c": entity.RatingCold,
	}
	for raw, want := range cases {
		assert.Equal(t, want, entity.NormalizeRating(raw), "raw=%q", raw)
	}
}

func TestNormalizeRating_DefaultWarm(t *testing.T) {
	for _, raw := range []string{"", "hottest", "5", "HIGHEST"} {
		assert.Equal(t, entity.RatingWarm, entity.NormalizeRating(raw), "raw=%q", raw)
	}
}

func TestNormalizeDevStatus_Sinonimos(t *testing.T) {
	cases := map[string]entity.DevStatus{
		"not_started": entity.DevStatusNotStarted, "not started": entity.DevStatusNotStarted,
		"pending": entity.DevStatusNotStarted, "new": entity.DevStatusNotStarted,
		"in_progress": entity.DevStatusInProgress, "in progress": entity.DevStatusInProgress,
		"active": entity.DevStatusInProgress, "working": entity.DevStatusInProgress,
		"completed": entity.DevStatusCompleted, "complete": entity.DevStatusCompleted,
		"done": entity.DevStatusCompleted, "finished": entity.DevStatusCompleted,
		"on_hold": entity.DevStatusOnHold, "on hold": entity.DevStatusOnHold,
		"paused": entity.DevStatusOnHold, "hold": entity.DevStatusOnHold,
	}
	for raw, want := range cases {
		assert.Equal(t, want, entity.NormalizeDevStatus(raw), "raw=%q", raw)
	}
}

func TestNormalizeDevStatus_DefaultNotStarted(t *testing.T) {
	for _, raw := range []string{"", "almost", "99%"} {
		assert.Equal(t, entity.DevStatusNotStarted, entity.NormalizeDevStatus(raw), "raw=%q", raw)
	}
}

// "active" es sinónimo de estados distintos según el dominio: lifecycle
// activo pero desarrollo en curso. El cruce no debe contaminarse.
func TestNormalize_ActiveEsAmbiguoPorDominio(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.NormalizeStatus("active"))
	assert.Equal(t, entity.DevStatusInProgress, entity.NormalizeDevStatus("active"))
}
