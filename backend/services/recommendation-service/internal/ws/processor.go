package ws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/models"
	"chargesmart/backend/services/recommendation-service/internal/service"
	"chargesmart/backend/services/recommendation-service/internal/validation"
)

// Recommender ranks stations for a validated query.
type Recommender interface {
	Recommend(ctx context.Context, q models.Query) ([]models.ScoredStation, error)
}

// dashboardRequest mirrors the HTTP query parameters. lat and lon are required.
type dashboardRequest struct {
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Battery     *float64 `json:"battery"`
	Connector   string   `json:"connector"`
	BatteryType string   `json:"battery_type"`
	Strategy    string   `json:"strategy"`
}

type dashboardResponse struct {
	Results []models.ScoredStation `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// QueryProcessor answers dashboard query messages.
type QueryProcessor struct {
	service Recommender
	logger  *zap.Logger
}

// NewQueryProcessor builds processor.
func NewQueryProcessor(svc Recommender, logger *zap.Logger) *QueryProcessor {
	return &QueryProcessor{service: svc, logger: logger}
}

// Process implements MessageProcessor.
func (p *QueryProcessor) Process(ctx context.Context, clientID string, raw []byte) []byte {
	q, err := decodeQuery(raw)
	if err != nil {
		return p.fail(err.Error())
	}
	if err := validation.Query(q); err != nil {
		return p.fail(err.Error())
	}

	results, err := p.service.Recommend(ctx, q)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			return p.fail("station catalog not loaded")
		}
		p.logger.Error("dashboard recommendation failed", zap.String("client_id", clientID), zap.Error(err))
		return p.fail("failed to rank stations")
	}

	out := make([]models.ScoredStation, len(results))
	for i, res := range results {
		out[i] = res.Rounded()
	}
	return p.encode(dashboardResponse{Results: out})
}

func decodeQuery(raw []byte) (models.Query, error) {
	var req dashboardRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return models.Query{}, errors.New("message must be a JSON query object")
	}
	if req.Lat == nil {
		return models.Query{}, errors.New("lat is required")
	}
	if req.Lon == nil {
		return models.Query{}, errors.New("lon is required")
	}
	q := models.Query{
		Lat:         *req.Lat,
		Lon:         *req.Lon,
		BatteryPct:  models.DefaultBatteryPct,
		Connector:   models.ConnectorType(strings.TrimSpace(req.Connector)),
		BatteryType: models.BatteryType(strings.TrimSpace(req.BatteryType)),
		Strategy:    models.Strategy(strings.ToLower(strings.TrimSpace(req.Strategy))),
	}
	if req.Battery != nil {
		q.BatteryPct = *req.Battery
	}
	return q, nil
}

func (p *QueryProcessor) fail(msg string) []byte {
	return p.encode(errorResponse{Error: msg})
}

func (p *QueryProcessor) encode(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("failed to encode dashboard reply", zap.Error(err))
		return []byte(`{"error":"internal error"}`)
	}
	return payload
}
