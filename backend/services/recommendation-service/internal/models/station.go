package models

import (
	"errors"
	"fmt"
	"strings"
)

// StationStatus is the operational state reported for a station.
type StationStatus string

const (
	StatusActive      StationStatus = "active"
	StatusMaintenance StationStatus = "maintenance"
	StatusInactive    StationStatus = "inactive"
)

// PowerLevel is the coarse charger speed class.
type PowerLevel string

const (
	PowerFast PowerLevel = "fast"
	PowerSlow PowerLevel = "slow"
)

// ConnectorType is a plug standard offered by a station.
type ConnectorType string

const (
	ConnectorCCS2    ConnectorType = "CCS2"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorType2   ConnectorType = "Type2"
)

// ConnectorTypes lists every known connector.
var ConnectorTypes = []ConnectorType{ConnectorCCS2, ConnectorCHAdeMO, ConnectorType2}

// BatteryType tags the swap battery pack a station stocks.
type BatteryType string

const (
	BatteryLiIon48V BatteryType = "Li-ion 48V"
	BatteryLiIon60V BatteryType = "Li-ion 60V"
)

// BatteryTypes lists every known swap battery pack.
var BatteryTypes = []BatteryType{BatteryLiIon48V, BatteryLiIon60V}

// KnownConnector reports whether c is one of ConnectorTypes.
func KnownConnector(c ConnectorType) bool {
	for _, known := range ConnectorTypes {
		if c == known {
			return true
		}
	}
	return false
}

// KnownBatteryType reports whether b is one of BatteryTypes.
func KnownBatteryType(b BatteryType) bool {
	for _, known := range BatteryTypes {
		if b == known {
			return true
		}
	}
	return false
}

// ChargingProfile carries the charging and battery swap details a station may publish.
// Battery percentages describe the vehicle currently on the charger.
type ChargingProfile struct {
	ConnectorTypes        []ConnectorType `json:"connector_types" yaml:"connectorTypes"`
	CurrentVehicleBattery float64         `json:"current_vehicle_battery" yaml:"currentVehicleBattery"`
	TargetBattery         float64         `json:"target_battery" yaml:"targetBattery"`
	ChargerKW             float64         `json:"charger_kw" yaml:"chargerKw"`
	BatteryType           BatteryType     `json:"battery_type" yaml:"batteryType"`
	AvailableBatteries    int             `json:"available_batteries" yaml:"availableBatteries"`
}

// Supports reports whether the profile lists connector c.
func (p *ChargingProfile) Supports(c ConnectorType) bool {
	if p == nil {
		return false
	}
	for _, ct := range p.ConnectorTypes {
		if ct == c {
			return true
		}
	}
	return false
}

// Station is a catalog record. Values are treated as immutable once loaded.
type Station struct {
	ID             string           `json:"id" yaml:"id"`
	Name           string           `json:"name" yaml:"name"`
	Lat            float64          `json:"lat" yaml:"lat"`
	Lon            float64          `json:"lon" yaml:"lon"`
	Status         StationStatus    `json:"status" yaml:"status"`
	AvailableSlots int              `json:"available_slots" yaml:"availableSlots"`
	PowerLevel     PowerLevel       `json:"power_level" yaml:"powerLevel"`
	Profile        *ChargingProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// Clone returns a deep copy so callers can never alias catalog memory.
func (s Station) Clone() Station {
	if s.Profile != nil {
		p := *s.Profile
		p.ConnectorTypes = append([]ConnectorType(nil), s.Profile.ConnectorTypes...)
		s.Profile = &p
	}
	return s
}

// Validate checks the record invariants the ranking code relies on.
func (s Station) Validate() error {
	var errs []error
	if strings.TrimSpace(s.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if s.Lat < -90 || s.Lat > 90 {
		errs = append(errs, fmt.Errorf("lat %v out of range", s.Lat))
	}
	if s.Lon < -180 || s.Lon > 180 {
		errs = append(errs, fmt.Errorf("lon %v out of range", s.Lon))
	}
	switch s.Status {
	case StatusActive, StatusMaintenance, StatusInactive:
	default:
		errs = append(errs, fmt.Errorf("unknown status %q", s.Status))
	}
	switch s.PowerLevel {
	case PowerFast, PowerSlow:
	default:
		errs = append(errs, fmt.Errorf("unknown power level %q", s.PowerLevel))
	}
	if s.AvailableSlots < 0 {
		errs = append(errs, errors.New("available_slots is negative"))
	}
	if p := s.Profile; p != nil {
		if p.ChargerKW <= 0 {
			errs = append(errs, fmt.Errorf("charger_kw must be positive, got %v", p.ChargerKW))
		}
		if p.AvailableBatteries < 0 {
			errs = append(errs, errors.New("available_batteries is negative"))
		}
		if p.CurrentVehicleBattery < 0 || p.CurrentVehicleBattery > 100 ||
			p.TargetBattery < 0 || p.TargetBattery > 100 {
			errs = append(errs, errors.New("battery percentages must be within 0-100"))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("station %q: %w", s.ID, errors.Join(errs...))
}
