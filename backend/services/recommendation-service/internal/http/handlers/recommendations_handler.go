package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/models"
	"chargesmart/backend/services/recommendation-service/internal/service"
	"chargesmart/backend/services/recommendation-service/internal/validation"
)

// Recommender is the service behind the recommendation endpoints.
type Recommender interface {
	Recommend(ctx context.Context, q models.Query) ([]models.ScoredStation, error)
	Stations() []models.Station
}

// RecommendationHandlers serves ranked stations and the raw catalog.
type RecommendationHandlers struct {
	service Recommender
	logger  *zap.Logger
}

// NewRecommendationHandlers returns handler.
func NewRecommendationHandlers(svc Recommender, logger *zap.Logger) *RecommendationHandlers {
	return &RecommendationHandlers{service: svc, logger: logger}
}

// Recommend handles GET /api/recommendations and GET /recommend.
func (h *RecommendationHandlers) Recommend(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Query(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.Recommend(r.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "station catalog not loaded")
			return
		}
		h.logger.Error("recommendation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to rank stations")
		return
	}

	out := make([]models.ScoredStation, len(results))
	for i, res := range results {
		out[i] = res.Rounded()
	}
	writeJSON(w, http.StatusOK, out)
}

// ListStations handles GET /api/stations.
func (h *RecommendationHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	stations := h.service.Stations()
	if stations == nil {
		stations = []models.Station{}
	}
	writeJSON(w, http.StatusOK, stations)
}

// ParseQuery reads lat, lon, battery, connector, battery_type and strategy from
// URL parameters. lat and lon are required; battery defaults to 50.
func ParseQuery(values url.Values) (models.Query, error) {
	q := models.Query{
		BatteryPct:  models.DefaultBatteryPct,
		Connector:   models.ConnectorType(strings.TrimSpace(values.Get("connector"))),
		BatteryType: models.BatteryType(strings.TrimSpace(values.Get("battery_type"))),
		Strategy:    models.Strategy(strings.ToLower(strings.TrimSpace(values.Get("strategy")))),
	}

	var err error
	if q.Lat, err = requiredFloat(values, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = requiredFloat(values, "lon"); err != nil {
		return q, err
	}
	if raw := strings.TrimSpace(values.Get("battery")); raw != "" {
		if q.BatteryPct, err = strconv.ParseFloat(raw, 64); err != nil {
			return q, errors.New("battery must be a number")
		}
	}
	return q, nil
}

func requiredFloat(values url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}
