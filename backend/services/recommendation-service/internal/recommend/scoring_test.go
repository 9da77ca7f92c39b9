package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

func TestMaxReach(t *testing.T) {
	assert.Equal(t, 120.0, MaxReach(60, DefaultRangeKm))
	assert.Equal(t, 0.0, MaxReach(0, DefaultRangeKm))
	assert.Equal(t, 200.0, MaxReach(100, DefaultRangeKm))
	assert.Equal(t, 150.0, MaxReach(50, 300))
}

func TestAdditiveScore(t *testing.T) {
	tests := []struct {
		name    string
		station models.Station
		want    int
	}{
		{
			name:    "active fast single slot",
			station: models.Station{Status: models.StatusActive, AvailableSlots: 1, PowerLevel: models.PowerFast},
			want:    70,
		},
		{
			name:    "active fast many slots",
			station: models.Station{Status: models.StatusActive, AvailableSlots: 4, PowerLevel: models.PowerFast},
			want:    80,
		},
		{
			name:    "no slots drops availability bonus",
			station: models.Station{Status: models.StatusActive, AvailableSlots: 0, PowerLevel: models.PowerFast},
			want:    20,
		},
		{
			name:    "maintenance with slots",
			station: models.Station{Status: models.StatusMaintenance, AvailableSlots: 2, PowerLevel: models.PowerFast},
			want:    30,
		},
		{
			name:    "inactive slow empty",
			station: models.Station{Status: models.StatusInactive, AvailableSlots: 0, PowerLevel: models.PowerSlow},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdditiveScore(tt.station)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, AdditiveScore(tt.station))
		})
	}
}

func TestAdditiveScoreNoSlotsCapped(t *testing.T) {
	for _, status := range []models.StationStatus{models.StatusActive, models.StatusMaintenance, models.StatusInactive} {
		for _, power := range []models.PowerLevel{models.PowerFast, models.PowerSlow} {
			s := models.Station{Status: status, PowerLevel: power}
			assert.LessOrEqual(t, AdditiveScore(s), 30)
		}
	}
}

func TestEstimateWaitMinutes(t *testing.T) {
	// 40% of a 40 kWh pack on a 22 kW charger: 16/22 h = 43.6 min.
	wait, err := EstimateWaitMinutes(models.ChargingProfile{
		CurrentVehicleBattery: 40,
		TargetBattery:         80,
		ChargerKW:             22,
	}, DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, 44, wait)

	// 14 kWh on 16 kW is exactly 52.5 minutes; halves round to even.
	wait, err = EstimateWaitMinutes(models.ChargingProfile{
		CurrentVehicleBattery: 30,
		TargetBattery:         80,
		ChargerKW:             16,
	}, 28)
	require.NoError(t, err)
	assert.Equal(t, 52, wait)

	wait, err = EstimateWaitMinutes(models.ChargingProfile{
		CurrentVehicleBattery: 90,
		TargetBattery:         80,
		ChargerKW:             7,
	}, DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, 0, wait)
}

func TestEstimateWaitMinutesRejectsZeroPower(t *testing.T) {
	_, err := EstimateWaitMinutes(models.ChargingProfile{TargetBattery: 80}, DefaultBatteryCapacityKWh)
	assert.ErrorIs(t, err, ErrInvalidChargerPower)

	_, err = EstimateWaitMinutes(models.ChargingProfile{TargetBattery: 80, ChargerKW: -3}, DefaultBatteryCapacityKWh)
	assert.ErrorIs(t, err, ErrInvalidChargerPower)
}

func swapStation() models.Station {
	return models.Station{
		ID:             "SW1",
		Name:           "Swap Hub",
		Status:         models.StatusActive,
		AvailableSlots: 2,
		PowerLevel:     models.PowerFast,
		Profile: &models.ChargingProfile{
			ConnectorTypes:        []models.ConnectorType{models.ConnectorCCS2},
			CurrentVehicleBattery: 60,
			TargetBattery:         80,
			ChargerKW:             22,
			BatteryType:           models.BatteryLiIon48V,
			AvailableBatteries:    2,
		},
	}
}

func TestZoneForDistance(t *testing.T) {
	th := DefaultZoneThresholds()
	assert.Equal(t, models.ZoneGreen, th.ZoneForDistance(0))
	assert.Equal(t, models.ZoneGreen, th.ZoneForDistance(80))
	assert.Equal(t, models.ZoneYellow, th.ZoneForDistance(80.01))
	assert.Equal(t, models.ZoneYellow, th.ZoneForDistance(100))
	assert.Equal(t, models.ZoneRed, th.ZoneForDistance(100.01))
}

func TestClassifyZoneDistanceClasses(t *testing.T) {
	th := DefaultZoneThresholds()
	s := swapStation()

	zone, wait, err := ClassifyZone(10, s, models.BatteryLiIon48V, th, DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneGreen, zone)
	assert.Equal(t, 22, wait)

	zone, _, err = ClassifyZone(85, s, models.BatteryLiIon48V, th, DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneYellow, zone)

	zone, _, err = ClassifyZone(150, s, models.BatteryLiIon48V, th, DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneRed, zone)
}

func TestClassifyZoneDisqualifiersOverrideProximity(t *testing.T) {
	th := DefaultZoneThresholds()
	cases := map[string]func(*models.Station){
		"not active":        func(s *models.Station) { s.Status = models.StatusMaintenance },
		"no slots":          func(s *models.Station) { s.AvailableSlots = 0 },
		"no batteries":      func(s *models.Station) { s.Profile.AvailableBatteries = 0 },
		"battery mismatch":  func(s *models.Station) { s.Profile.BatteryType = models.BatteryLiIon60V },
		"long wait":         func(s *models.Station) { s.Profile.ChargerKW = 7 },
		"no connectors":     func(s *models.Station) { s.Profile.ConnectorTypes = nil },
		"no charging items": func(s *models.Station) { s.Profile = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := swapStation()
			mutate(&s)
			zone, _, err := ClassifyZone(0, s, models.BatteryLiIon48V, th, DefaultBatteryCapacityKWh)
			require.NoError(t, err)
			assert.Equal(t, models.ZoneRed, zone)
			assert.Equal(t, ScoreRed, ZoneScore(zone))
		})
	}
}

func TestClassifyZoneWithoutBatteryPreference(t *testing.T) {
	s := swapStation()
	s.Profile.BatteryType = models.BatteryLiIon60V

	zone, _, err := ClassifyZone(5, s, "", DefaultZoneThresholds(), DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneGreen, zone)
}

func TestClassifyZoneWaitAtLimitIsAccepted(t *testing.T) {
	s := swapStation()
	// 25% of 40 kWh on 20 kW = 30 minutes exactly.
	s.Profile.CurrentVehicleBattery = 55
	s.Profile.ChargerKW = 20

	zone, wait, err := ClassifyZone(5, s, models.BatteryLiIon48V, DefaultZoneThresholds(), DefaultBatteryCapacityKWh)
	require.NoError(t, err)
	assert.Equal(t, 30, wait)
	assert.Equal(t, models.ZoneGreen, zone)
}

func TestClassifyZonePropagatesChargerError(t *testing.T) {
	s := swapStation()
	s.Profile.ChargerKW = 0

	_, _, err := ClassifyZone(5, s, "", DefaultZoneThresholds(), DefaultBatteryCapacityKWh)
	assert.ErrorIs(t, err, ErrInvalidChargerPower)
}

func TestZoneScore(t *testing.T) {
	assert.Equal(t, 100, ZoneScore(models.ZoneGreen))
	assert.Equal(t, 50, ZoneScore(models.ZoneYellow))
	assert.Equal(t, 10, ZoneScore(models.ZoneRed))
}
