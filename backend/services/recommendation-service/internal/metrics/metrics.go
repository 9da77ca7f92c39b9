package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// Metrics records recommendation and catalog activity in Prometheus collectors.
type Metrics struct {
	requests         *prometheus.CounterVec
	results          *prometheus.HistogramVec
	zones            *prometheus.CounterVec
	catalogSize      *prometheus.GaugeVec
	catalogRefreshes *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses the default registerer. Collectors
// that are already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Recommendation queries by strategy and outcome",
	}, []string{"strategy", "outcome"})
	results := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_results",
		Help:    "Number of stations returned per query",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	}, []string{"strategy"})
	zones := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_zone_total",
		Help: "Stations returned by zone for the zone strategy",
	}, []string{"zone"})
	catalogSize := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_stations",
		Help: "Stations in the currently served catalog",
	}, []string{"source"})
	catalogRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Catalog load attempts by source and success",
	}, []string{"source", "success"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if results, err = register(reg, results); err != nil {
		return nil, err
	}
	if zones, err = register(reg, zones); err != nil {
		return nil, err
	}
	if catalogSize, err = register(reg, catalogSize); err != nil {
		return nil, err
	}
	if catalogRefreshes, err = register(reg, catalogRefreshes); err != nil {
		return nil, err
	}

	return &Metrics{
		requests:         requests,
		results:          results,
		zones:            zones,
		catalogSize:      catalogSize,
		catalogRefreshes: catalogRefreshes,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRecommendation records one answered query.
func (m *Metrics) ObserveRecommendation(strategy models.Strategy, results []models.ScoredStation) {
	m.requests.WithLabelValues(string(strategy), "ok").Inc()
	m.results.WithLabelValues(string(strategy)).Observe(float64(len(results)))
	for _, r := range results {
		if r.Zone != "" {
			m.zones.WithLabelValues(string(r.Zone)).Inc()
		}
	}
}

// ObserveRecommendationError records a query that failed while ranking.
func (m *Metrics) ObserveRecommendationError(strategy models.Strategy) {
	m.requests.WithLabelValues(string(strategy), "error").Inc()
}

// ObserveCatalogRefresh implements catalog.RefreshObserver.
func (m *Metrics) ObserveCatalogRefresh(source string, stations int, err error) {
	m.catalogRefreshes.WithLabelValues(source, strconv.FormatBool(err == nil)).Inc()
	if err == nil {
		m.catalogSize.WithLabelValues(source).Set(float64(stations))
	}
}
