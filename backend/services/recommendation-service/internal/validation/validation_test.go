package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

func TestQueryAcceptsValid(t *testing.T) {
	q := models.Query{
		Lat:         13.05,
		Lon:         80.25,
		BatteryPct:  60,
		Connector:   models.ConnectorCCS2,
		BatteryType: models.BatteryLiIon48V,
		Strategy:    models.StrategyZone,
	}
	assert.NoError(t, Query(q))

	// Optional fields may be left empty.
	assert.NoError(t, Query(models.Query{Lat: -90, Lon: 180, BatteryPct: 0}))
}

func TestQueryRejectsOutOfRange(t *testing.T) {
	err := Query(models.Query{Lat: 91, Lon: 80, BatteryPct: 50})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lat must be between -90 and 90")

	err = Query(models.Query{Lat: 10, Lon: -200, BatteryPct: 101})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lon must be between -180 and 180")
	assert.Contains(t, err.Error(), "battery must be between 0 and 100")
}

func TestQueryRejectsUnknownEnums(t *testing.T) {
	err := Query(models.Query{Lat: 1, Lon: 1, BatteryPct: 1, Connector: "NACS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `connector "NACS" is not supported`)

	err = Query(models.Query{Lat: 1, Lon: 1, BatteryPct: 1, BatteryType: "lead acid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "battery_type")

	err = Query(models.Query{Lat: 1, Lon: 1, BatteryPct: 1, Strategy: "best"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy must be one of")
}
