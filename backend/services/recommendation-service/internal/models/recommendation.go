package models

import "math"

// Zone is the red/yellow/green suitability class of a station.
type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"
)

// Strategy names a scoring scheme.
type Strategy string

const (
	StrategyAdditive Strategy = "additive"
	StrategyZone     Strategy = "zone"
)

// DefaultBatteryPct is used when a query omits the battery level.
const DefaultBatteryPct = 50

// Query is a single recommendation request.
type Query struct {
	Lat         float64       `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64       `json:"lon" validate:"gte=-180,lte=180"`
	BatteryPct  float64       `json:"battery" validate:"gte=0,lte=100"`
	Connector   ConnectorType `json:"connector,omitempty" validate:"omitempty,connector"`
	BatteryType BatteryType   `json:"battery_type,omitempty" validate:"omitempty,batterytype"`
	Strategy    Strategy      `json:"strategy,omitempty" validate:"omitempty,oneof=additive zone"`
}

// ScoredStation is a Station plus the values computed for one query.
// WaitTimeMinutes and Zone are only set by the zone strategy.
type ScoredStation struct {
	Station
	DistanceKm      float64 `json:"distance_km"`
	Score           int     `json:"score"`
	Zone            Zone    `json:"zone,omitempty"`
	WaitTimeMinutes *int    `json:"wait_time_minutes,omitempty"`
}

// Rounded returns a copy with the distance rounded to two decimals for display.
func (s ScoredStation) Rounded() ScoredStation {
	s.DistanceKm = math.Round(s.DistanceKm*100) / 100
	return s
}
