package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/models"
	"chargesmart/backend/services/recommendation-service/internal/recommend"
)

// ErrCatalogUnavailable means no station list has been loaded yet.
var ErrCatalogUnavailable = errors.New("station catalog not loaded")

// StationProvider supplies the station list for one query.
type StationProvider interface {
	Stations() []models.Station
}

// Recorder receives per-query outcomes.
type Recorder interface {
	ObserveRecommendation(strategy models.Strategy, results []models.ScoredStation)
	ObserveRecommendationError(strategy models.Strategy)
}

// Options configure the ranking parameters. Thresholds are used as given; an empty
// strategy, a non-positive range or a non-positive capacity fall back to the defaults.
type Options struct {
	DefaultStrategy    models.Strategy
	RangeKm            float64
	BatteryCapacityKWh float64
	Thresholds         recommend.ZoneThresholds
}

// DefaultOptions returns the demo vehicle parameters with the additive strategy.
func DefaultOptions() Options {
	return Options{
		DefaultStrategy:    models.StrategyAdditive,
		RangeKm:            recommend.DefaultRangeKm,
		BatteryCapacityKWh: recommend.DefaultBatteryCapacityKWh,
		Thresholds:         recommend.DefaultZoneThresholds(),
	}
}

// RecommendationService answers recommendation queries against the current catalog.
type RecommendationService struct {
	stations        StationProvider
	rankers         map[models.Strategy]*recommend.Ranker
	defaultStrategy models.Strategy
	recorder        Recorder
	logger          *zap.Logger
}

// NewRecommendationService builds one ranker per strategy so requests can pick either.
func NewRecommendationService(stations StationProvider, opts Options, recorder Recorder, logger *zap.Logger) (*RecommendationService, error) {
	if opts.DefaultStrategy == "" {
		opts.DefaultStrategy = models.StrategyAdditive
	}
	if opts.BatteryCapacityKWh <= 0 {
		opts.BatteryCapacityKWh = recommend.DefaultBatteryCapacityKWh
	}
	rankers := make(map[models.Strategy]*recommend.Ranker, 2)
	for _, name := range []models.Strategy{models.StrategyAdditive, models.StrategyZone} {
		strategy, err := recommend.StrategyFor(name, opts.Thresholds, opts.BatteryCapacityKWh)
		if err != nil {
			return nil, err
		}
		rankers[name] = recommend.NewRanker(opts.RangeKm, strategy)
	}
	if _, ok := rankers[opts.DefaultStrategy]; !ok {
		return nil, fmt.Errorf("unknown default strategy %q", opts.DefaultStrategy)
	}

	return &RecommendationService{
		stations:        stations,
		rankers:         rankers,
		defaultStrategy: opts.DefaultStrategy,
		recorder:        recorder,
		logger:          logger,
	}, nil
}

// Stations returns the catalog currently served.
func (s *RecommendationService) Stations() []models.Station {
	return s.stations.Stations()
}

// Recommend ranks the catalog for q. The query is expected to be validated by the caller.
func (s *RecommendationService) Recommend(ctx context.Context, q models.Query) ([]models.ScoredStation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := q.Strategy
	if name == "" {
		name = s.defaultStrategy
	}
	ranker, ok := s.rankers[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}

	stations := s.stations.Stations()
	if stations == nil {
		s.observeError(name)
		return nil, ErrCatalogUnavailable
	}

	results, err := ranker.Rank(stations, q)
	if err != nil {
		s.observeError(name)
		s.logger.Error("ranking failed", zap.String("strategy", string(name)), zap.Error(err))
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.ObserveRecommendation(name, results)
	}
	s.logger.Debug("recommendation served",
		zap.String("strategy", string(name)),
		zap.Float64("lat", q.Lat),
		zap.Float64("lon", q.Lon),
		zap.Float64("battery", q.BatteryPct),
		zap.Int("results", len(results)))
	return results, nil
}

func (s *RecommendationService) observeError(name models.Strategy) {
	if s.recorder != nil {
		s.recorder.ObserveRecommendationError(name)
	}
}
