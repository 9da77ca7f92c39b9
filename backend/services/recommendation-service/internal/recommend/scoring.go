package recommend

import (
	"errors"
	"fmt"
	"math"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// Defaults mirror the ChargeSmart demo vehicle.
const (
	DefaultRangeKm              = 200.0
	DefaultBatteryCapacityKWh   = 40.0
	DefaultGreenZoneKm          = 80.0
	DefaultYellowZoneKm         = 100.0
	DefaultWaitTimeLimitMinutes = 30
)

// Zone scores replace the additive scheme when the zone strategy is used.
const (
	ScoreGreen  = 100
	ScoreYellow = 50
	ScoreRed    = 10
)

// ErrInvalidChargerPower is returned when a wait time is requested for a charger with no power.
var ErrInvalidChargerPower = errors.New("charger power must be positive")

// MaxReach converts a battery percentage into the reachable distance in kilometres.
func MaxReach(batteryPct, rangeKm float64) float64 {
	return batteryPct / 100 * rangeKm
}

// AdditiveScore rates a station from 0 to 80: +50 when active with a free slot,
// +20 for a fast charger and +10 when at least two slots are free.
func AdditiveScore(s models.Station) int {
	score := 0
	if s.Status == models.StatusActive && s.AvailableSlots > 0 {
		score += 50
	}
	if s.PowerLevel == models.PowerFast {
		score += 20
	}
	if s.AvailableSlots >= 2 {
		score += 10
	}
	return score
}

// EstimateWaitMinutes is the time the charger needs to bring the current vehicle from its
// battery level to the target, rounded half to even. A target below the current level is
// zero minutes.
func EstimateWaitMinutes(p models.ChargingProfile, capacityKWh float64) (int, error) {
	if p.ChargerKW <= 0 {
		return 0, fmt.Errorf("%w: %v kW", ErrInvalidChargerPower, p.ChargerKW)
	}
	needed := p.TargetBattery - p.CurrentVehicleBattery
	if needed <= 0 {
		return 0, nil
	}
	energyKWh := needed / 100 * capacityKWh
	hours := energyKWh / p.ChargerKW
	return int(math.RoundToEven(hours * 60)), nil
}

// ZoneThresholds bound the distance classes and the acceptable wait.
type ZoneThresholds struct {
	GreenKm          float64
	YellowKm         float64
	WaitLimitMinutes int
}

// DefaultZoneThresholds returns 80 km / 100 km / 30 minutes.
func DefaultZoneThresholds() ZoneThresholds {
	return ZoneThresholds{
		GreenKm:          DefaultGreenZoneKm,
		YellowKm:         DefaultYellowZoneKm,
		WaitLimitMinutes: DefaultWaitTimeLimitMinutes,
	}
}

// ZoneForDistance is the proximity class before any disqualifier is applied.
func (t ZoneThresholds) ZoneForDistance(distanceKm float64) models.Zone {
	switch {
	case distanceKm <= t.GreenKm:
		return models.ZoneGreen
	case distanceKm <= t.YellowKm:
		return models.ZoneYellow
	default:
		return models.ZoneRed
	}
}

// ClassifyZone combines the distance class with the hard disqualifiers. Any disqualifier
// forces red. An empty userBattery means the user has no battery type preference.
// Stations without a charging profile have no connectors and are always red.
func ClassifyZone(distanceKm float64, s models.Station, userBattery models.BatteryType, t ZoneThresholds, capacityKWh float64) (models.Zone, int, error) {
	zone := t.ZoneForDistance(distanceKm)

	p := s.Profile
	if p == nil {
		return models.ZoneRed, 0, nil
	}

	wait, err := EstimateWaitMinutes(*p, capacityKWh)
	if err != nil {
		return "", 0, err
	}

	if s.Status != models.StatusActive ||
		s.AvailableSlots == 0 ||
		p.AvailableBatteries == 0 ||
		(userBattery != "" && p.BatteryType != userBattery) ||
		wait > t.WaitLimitMinutes ||
		len(p.ConnectorTypes) == 0 {
		zone = models.ZoneRed
	}

	return zone, wait, nil
}

// ZoneScore maps a zone to its rank score.
func ZoneScore(z models.Zone) int {
	switch z {
	case models.ZoneGreen:
		return ScoreGreen
	case models.ZoneYellow:
		return ScoreYellow
	default:
		return ScoreRed
	}
}
