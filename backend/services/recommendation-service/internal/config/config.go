package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargesmart/backend/libs/config"
)

// Catalog sources.
const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Config defines recommendation service configuration.
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Catalog        CatalogConfig        `yaml:"catalog"`
	Database       DatabaseConfig       `yaml:"database"`
	Redis          RedisConfig          `yaml:"redis"`
	WebSocket      WebSocketConfig      `yaml:"websocket"`
}

type HTTPConfig struct {
	Port string `yaml:"port" env:"RECOMMENDATION_HTTP_PORT"`
}

// RecommendationConfig holds the ranking parameters.
type RecommendationConfig struct {
	Strategy             string  `yaml:"strategy" env:"RECOMMENDATION_STRATEGY"`
	RangeKm              float64 `yaml:"rangeKm" env:"RECOMMENDATION_RANGE_KM"`
	BatteryCapacityKWh   float64 `yaml:"batteryCapacityKWh" env:"RECOMMENDATION_BATTERY_CAPACITY_KWH"`
	GreenZoneKm          float64 `yaml:"greenZoneKm" env:"RECOMMENDATION_GREEN_ZONE_KM"`
	YellowZoneKm         float64 `yaml:"yellowZoneKm" env:"RECOMMENDATION_YELLOW_ZONE_KM"`
	WaitTimeLimitMinutes int     `yaml:"waitTimeLimitMinutes" env:"RECOMMENDATION_WAIT_LIMIT_MINUTES"`
}

// CatalogConfig selects where stations come from. A zero RefreshInterval loads once.
type CatalogConfig struct {
	Source          string        `yaml:"source" env:"CATALOG_SOURCE"`
	RefreshInterval time.Duration `yaml:"refreshInterval" env:"CATALOG_REFRESH_INTERVAL"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"RECOMMENDATION_POSTGRES_DSN"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"RECOMMENDATION_REDIS_ADDR"`
	Password string `yaml:"password" env:"RECOMMENDATION_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"RECOMMENDATION_REDIS_DB"`
	Key      string `yaml:"key" env:"RECOMMENDATION_REDIS_KEY"`
}

type WebSocketConfig struct {
	PingInterval time.Duration `yaml:"pingInterval" env:"RECOMMENDATION_WS_PING_INTERVAL"`
	WriteTimeout time.Duration `yaml:"writeTimeout" env:"RECOMMENDATION_WS_WRITE_TIMEOUT"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: "8090"},
		Recommendation: RecommendationConfig{
			Strategy:             "additive",
			RangeKm:              200,
			BatteryCapacityKWh:   40,
			GreenZoneKm:          80,
			YellowZoneKm:         100,
			WaitTimeLimitMinutes: 30,
		},
		Catalog: CatalogConfig{Source: SourceSeed},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  "chargesmart:stations",
		},
		WebSocket: WebSocketConfig{
			PingInterval: 30 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Load applies the YAML file at path (CONFIG_FILE when path is empty) and environment
// overrides on top of Default, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.TrimSpace(path) != "" {
		err = libconfig.LoadConfigFile(path, cfg)
	} else {
		err = libconfig.LoadConfig(cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	r := c.Recommendation

	c.Recommendation.Strategy = strings.ToLower(strings.TrimSpace(r.Strategy))
	switch c.Recommendation.Strategy {
	case "additive", "zone":
	default:
		errs = append(errs, fmt.Errorf("config: recommendation strategy %q must be additive or zone", r.Strategy))
	}
	if r.RangeKm <= 0 {
		errs = append(errs, errors.New("config: recommendation rangeKm must be positive"))
	}
	if r.BatteryCapacityKWh <= 0 {
		errs = append(errs, errors.New("config: recommendation batteryCapacityKWh must be positive"))
	}
	if r.GreenZoneKm < 0 || r.YellowZoneKm < r.GreenZoneKm {
		errs = append(errs, errors.New("config: zone distances must satisfy 0 <= greenZoneKm <= yellowZoneKm"))
	}
	if r.WaitTimeLimitMinutes < 0 {
		errs = append(errs, errors.New("config: recommendation waitTimeLimitMinutes must not be negative"))
	}

	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	switch c.Catalog.Source {
	case SourceSeed:
	case SourcePostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			errs = append(errs, errors.New("config: database dsn required for postgres catalog"))
		}
	case SourceRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			errs = append(errs, errors.New("config: redis addr required for redis catalog"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown catalog source %q", c.Catalog.Source))
	}
	if c.Catalog.RefreshInterval < 0 {
		errs = append(errs, errors.New("config: catalog refreshInterval must not be negative"))
	}

	return errors.Join(errs...)
}

// HTTPAddress returns :port style address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8090"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// PingInterval returns websocket ping interval.
func (c *Config) PingInterval() time.Duration {
	if c.WebSocket.PingInterval <= 0 {
		return 30 * time.Second
	}
	return c.WebSocket.PingInterval
}

// WriteTimeout returns websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	if c.WebSocket.WriteTimeout <= 0 {
		return 10 * time.Second
	}
	return c.WebSocket.WriteTimeout
}
