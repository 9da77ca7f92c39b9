package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// ErrEmptyCatalog is returned when a load produces no usable stations.
var ErrEmptyCatalog = errors.New("catalog: no valid stations")

// RefreshObserver is notified after every load attempt.
type RefreshObserver interface {
	ObserveCatalogRefresh(source string, stations int, err error)
}

// Observers fans a refresh out to several observers in order.
type Observers []RefreshObserver

// ObserveCatalogRefresh implements RefreshObserver.
func (o Observers) ObserveCatalogRefresh(source string, stations int, err error) {
	for _, obs := range o {
		if obs != nil {
			obs.ObserveCatalogRefresh(source, stations, err)
		}
	}
}

type published struct {
	stations []models.Station
	loadedAt time.Time
}

// Snapshot holds the station list currently served. A published list is never mutated;
// Refresh swaps in a new one.
type Snapshot struct {
	source   Source
	current  atomic.Pointer[published]
	observer RefreshObserver
	logger   *zap.Logger
	now      func() time.Time
}

// NewSnapshot returns an empty snapshot over source. Call Refresh before serving.
func NewSnapshot(source Source, observer RefreshObserver, logger *zap.Logger) *Snapshot {
	return &Snapshot{
		source:   source,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh loads the source, drops invalid records and publishes the rest.
// On error the previous list stays in place.
func (s *Snapshot) Refresh(ctx context.Context) error {
	loaded, err := s.source.Load(ctx)
	if err != nil {
		s.observe(0, err)
		return err
	}

	valid := make([]models.Station, 0, len(loaded))
	for _, st := range loaded {
		if verr := st.Validate(); verr != nil {
			s.logger.Warn("skipping invalid station",
				zap.String("source", s.source.Name()),
				zap.String("station_id", st.ID),
				zap.Error(verr))
			continue
		}
		valid = append(valid, st)
	}
	if len(valid) == 0 {
		s.observe(0, ErrEmptyCatalog)
		return ErrEmptyCatalog
	}

	s.current.Store(&published{stations: valid, loadedAt: s.now().UTC()})
	s.observe(len(valid), nil)
	s.logger.Info("catalog refreshed",
		zap.String("source", s.source.Name()),
		zap.Int("stations", len(valid)),
		zap.Int("skipped", len(loaded)-len(valid)))
	return nil
}

// Stations returns a deep copy of the current list, or nil before the first Refresh.
func (s *Snapshot) Stations() []models.Station {
	p := s.current.Load()
	if p == nil {
		return nil
	}
	out := make([]models.Station, len(p.stations))
	for i, st := range p.stations {
		out[i] = st.Clone()
	}
	return out
}

// Len reports the number of published stations.
func (s *Snapshot) Len() int {
	p := s.current.Load()
	if p == nil {
		return 0
	}
	return len(p.stations)
}

// LoadedAt is the time of the last successful refresh.
func (s *Snapshot) LoadedAt() time.Time {
	p := s.current.Load()
	if p == nil {
		return time.Time{}
	}
	return p.loadedAt
}

// SourceName names the backing source.
func (s *Snapshot) SourceName() string {
	return s.source.Name()
}

func (s *Snapshot) observe(n int, err error) {
	if s.observer != nil {
		s.observer.ObserveCatalogRefresh(s.source.Name(), n, err)
	}
}
