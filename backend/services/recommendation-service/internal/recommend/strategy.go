package recommend

import (
	"fmt"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// Result is what a strategy computes for one in-range station.
type Result struct {
	Score           int
	Zone            models.Zone
	WaitTimeMinutes *int
}

// Strategy scores a station that already passed the range and connector filters.
type Strategy interface {
	Name() models.Strategy
	Score(distanceKm float64, s models.Station, q models.Query) (Result, error)
}

// Additive scores on status, free slots and charger speed.
type Additive struct{}

// Name implements Strategy.
func (Additive) Name() models.Strategy { return models.StrategyAdditive }

// Score implements Strategy.
func (Additive) Score(_ float64, s models.Station, _ models.Query) (Result, error) {
	return Result{Score: AdditiveScore(s)}, nil
}

// ZoneStrategy classifies stations into zones and scores by zone.
type ZoneStrategy struct {
	Thresholds  ZoneThresholds
	CapacityKWh float64
}

// NewZoneStrategy returns a ZoneStrategy with the given thresholds and pack capacity.
func NewZoneStrategy(t ZoneThresholds, capacityKWh float64) *ZoneStrategy {
	return &ZoneStrategy{Thresholds: t, CapacityKWh: capacityKWh}
}

// Name implements Strategy.
func (z *ZoneStrategy) Name() models.Strategy { return models.StrategyZone }

// Score implements Strategy.
func (z *ZoneStrategy) Score(distanceKm float64, s models.Station, q models.Query) (Result, error) {
	zone, wait, err := ClassifyZone(distanceKm, s, q.BatteryType, z.Thresholds, z.CapacityKWh)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Score:           ZoneScore(zone),
		Zone:            zone,
		WaitTimeMinutes: &wait,
	}, nil
}

// StrategyFor resolves a strategy name. The zone strategy uses the supplied parameters.
func StrategyFor(name models.Strategy, t ZoneThresholds, capacityKWh float64) (Strategy, error) {
	switch name {
	case models.StrategyAdditive:
		return Additive{}, nil
	case models.StrategyZone:
		return NewZoneStrategy(t, capacityKWh), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
