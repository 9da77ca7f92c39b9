package catalog

import (
	"context"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// Source loads the full station list from some backing store.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Station, error)
}

// SeedSource serves a fixed in-memory station list.
type SeedSource struct {
	stations []models.Station
}

// NewSeedSource returns a source over the given stations, or the built-in Chennai
// demo list when none are given.
func NewSeedSource(stations ...models.Station) *SeedSource {
	if len(stations) == 0 {
		stations = DefaultStations()
	}
	return &SeedSource{stations: stations}
}

// Name implements Source.
func (s *SeedSource) Name() string { return "seed" }

// Load returns a deep copy of the seed list.
func (s *SeedSource) Load(context.Context) ([]models.Station, error) {
	out := make([]models.Station, len(s.stations))
	for i, st := range s.stations {
		out[i] = st.Clone()
	}
	return out, nil
}

// DefaultStations is the demo catalog around Chennai.
func DefaultStations() []models.Station {
	return []models.Station{
		{
			ID:             "ST001",
			Name:           "Chennai Central",
			Lat:            13.08,
			Lon:            80.27,
			Status:         models.StatusActive,
			AvailableSlots: 1,
			PowerLevel:     models.PowerFast,
			Profile: &models.ChargingProfile{
				ConnectorTypes:        []models.ConnectorType{models.ConnectorCCS2, models.ConnectorType2},
				CurrentVehicleBattery: 40,
				TargetBattery:         80,
				ChargerKW:             22,
				BatteryType:           models.BatteryLiIon48V,
				AvailableBatteries:    2,
			},
		},
		{
			ID:             "ST002",
			Name:           "Velachery",
			Lat:            12.98,
			Lon:            80.22,
			Status:         models.StatusActive,
			AvailableSlots: 0,
			PowerLevel:     models.PowerSlow,
			Profile: &models.ChargingProfile{
				ConnectorTypes:        []models.ConnectorType{models.ConnectorCHAdeMO},
				CurrentVehicleBattery: 30,
				TargetBattery:         80,
				ChargerKW:             7,
				BatteryType:           models.BatteryLiIon48V,
				AvailableBatteries:    0,
			},
		},
		{
			ID:             "ST003",
			Name:           "Tambaram",
			Lat:            12.92,
			Lon:            80.12,
			Status:         models.StatusMaintenance,
			AvailableSlots: 2,
			PowerLevel:     models.PowerFast,
			Profile: &models.ChargingProfile{
				ConnectorTypes:        []models.ConnectorType{models.ConnectorCCS2},
				CurrentVehicleBattery: 20,
				TargetBattery:         80,
				ChargerKW:             22,
				BatteryType:           models.BatteryLiIon60V,
				AvailableBatteries:    1,
			},
		},
	}
}
