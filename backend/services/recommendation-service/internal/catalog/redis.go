package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

// DefaultRedisKey is the hash holding one JSON station document per field.
const DefaultRedisKey = "chargesmart:stations"

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisSource reads station documents from a redis hash keyed by station id.
type RedisSource struct {
	client hashReader
	key    string
}

// NewRedisSource returns a source reading the given hash key.
func NewRedisSource(client *redis.Client, key string) *RedisSource {
	return newRedisSource(client, key)
}

func newRedisSource(client hashReader, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{client: client, key: key}
}

// Name implements Source.
func (s *RedisSource) Name() string { return "redis" }

// Load implements Source. Hash order is undefined, so stations come back sorted by id.
func (s *RedisSource) Load(ctx context.Context) ([]models.Station, error) {
	docs, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("catalog: hgetall %s: %w", s.key, err)
	}

	stations := make([]models.Station, 0, len(docs))
	for field, doc := range docs {
		var st models.Station
		if err := json.Unmarshal([]byte(doc), &st); err != nil {
			return nil, fmt.Errorf("catalog: decode station %s: %w", field, err)
		}
		if st.ID == "" {
			st.ID = field
		}
		stations = append(stations, st)
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}
