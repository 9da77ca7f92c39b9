package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// PostgresSource reads stations from the charging_stations table. Profile columns are
// nullable; a NULL charger_kw means the station publishes no charging profile.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource returns a source over an open pool.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name implements Source.
func (s *PostgresSource) Name() string { return "postgres" }

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]models.Station, error) {
	const query = `
		SELECT id, name, lat, lon, status, available_slots, power_level,
		       array_to_string(connector_types, ','),
		       current_vehicle_battery, target_battery, charger_kw,
		       battery_type, available_batteries
		FROM charging_stations
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan station: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate stations: %w", err)
	}
	return stations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (models.Station, error) {
	var (
		st          models.Station
		status      string
		power       string
		connectors  sql.NullString
		current     sql.NullFloat64
		target      sql.NullFloat64
		chargerKW   sql.NullFloat64
		batteryType sql.NullString
		batteries   sql.NullInt64
	)
	if err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Lat,
		&st.Lon,
		&status,
		&st.AvailableSlots,
		&power,
		&connectors,
		&current,
		&target,
		&chargerKW,
		&batteryType,
		&batteries,
	); err != nil {
		return models.Station{}, err
	}
	st.Status = models.StationStatus(strings.ToLower(status))
	st.PowerLevel = models.PowerLevel(strings.ToLower(power))

	if chargerKW.Valid {
		st.Profile = &models.ChargingProfile{
			ConnectorTypes:        parseConnectors(connectors.String),
			CurrentVehicleBattery: current.Float64,
			TargetBattery:         target.Float64,
			ChargerKW:             chargerKW.Float64,
			BatteryType:           models.BatteryType(batteryType.String),
			AvailableBatteries:    int(batteries.Int64),
		}
	}
	return st, nil
}

func parseConnectors(raw string) []models.ConnectorType {
	var out []models.ConnectorType
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, models.ConnectorType(p))
		}
	}
	return out
}
