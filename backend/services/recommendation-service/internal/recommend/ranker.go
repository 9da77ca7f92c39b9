package recommend

import (
	"fmt"
	"sort"

	"chargesmart/backend/services/recommendation-service/internal/geo"
	"chargesmart/backend/services/recommendation-service/internal/models"
)

// Ranker filters a station list by reach and connector and orders it by strategy score.
type Ranker struct {
	rangeKm  float64
	strategy Strategy
}

// NewRanker returns a ranker for a vehicle with the given full-charge range.
func NewRanker(rangeKm float64, strategy Strategy) *Ranker {
	if rangeKm <= 0 {
		rangeKm = DefaultRangeKm
	}
	return &Ranker{rangeKm: rangeKm, strategy: strategy}
}

// Rank returns the stations reachable on the query's battery that offer the requested
// connector, sorted by descending score. The connector filter applies under every
// strategy, additive included, whenever the query names one. Equal scores keep catalog
// order. Input stations are never modified.
func (r *Ranker) Rank(stations []models.Station, q models.Query) ([]models.ScoredStation, error) {
	maxKm := MaxReach(q.BatteryPct, r.rangeKm)

	results := make([]models.ScoredStation, 0, len(stations))
	for _, s := range stations {
		dist := geo.Distance(q.Lat, q.Lon, s.Lat, s.Lon)
		if dist > maxKm {
			continue
		}
		if q.Connector != "" && !s.Profile.Supports(q.Connector) {
			continue
		}

		res, err := r.strategy.Score(dist, s, q)
		if err != nil {
			return nil, fmt.Errorf("rank station %s: %w", s.ID, err)
		}

		results = append(results, models.ScoredStation{
			Station:         s.Clone(),
			DistanceKm:      dist,
			Score:           res.Score,
			Zone:            res.Zone,
			WaitTimeMinutes: res.WaitTimeMinutes,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}
