package render

import (
	"fmt"
	"io"
	"strconv"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

var zoneMarkers = map[models.Zone]string{
	models.ZoneGreen:  "🟢",
	models.ZoneYellow: "🟡",
	models.ZoneRed:    "🔴",
}

// Listing writes one line per station in ranked order. Zone results are shown with their
// marker, batteries and wait time; additive results with score and charger power.
func Listing(w io.Writer, results []models.ScoredStation) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No stations within reach.")
		return err
	}
	for _, res := range results {
		if _, err := fmt.Fprintln(w, Line(res)); err != nil {
			return err
		}
	}
	return nil
}

// Line formats a single result.
func Line(res models.ScoredStation) string {
	distance := strconv.FormatFloat(res.Rounded().DistanceKm, 'f', -1, 64)

	if res.Zone == "" {
		return fmt.Sprintf("%s - %s km | Score: %d | Slots: %d | Power: %s",
			res.Name, distance, res.Score, res.AvailableSlots, res.PowerLevel)
	}

	batteries := 0
	if res.Profile != nil {
		batteries = res.Profile.AvailableBatteries
	}
	wait := 0
	if res.WaitTimeMinutes != nil {
		wait = *res.WaitTimeMinutes
	}
	return fmt.Sprintf("%s %s - %s km | Slots: %d | Batteries: %d | Wait: %d min",
		zoneMarkers[res.Zone], res.Name, distance, res.AvailableSlots, batteries, wait)
}
