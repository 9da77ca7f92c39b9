package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/app"
	"chargesmart/backend/services/recommendation-service/internal/config"
	"chargesmart/backend/services/recommendation-service/internal/models"
	"chargesmart/backend/services/recommendation-service/internal/render"
	"chargesmart/backend/services/recommendation-service/internal/validation"
)

type recommendFlags struct {
	lat         float64
	lon         float64
	battery     float64
	connector   string
	batteryType string
	strategy    string
	timeout     time.Duration
}

func newRecommendCmd(cfgPath *string) *cobra.Command {
	var f recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print ranked stations for a location and battery level",
		Example: "  recommendation-service recommend --lat 13.05 --lon 80.25 --battery 60 \\\n" +
			"    --connector CCS2 --battery-type \"Li-ion 48V\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			q := f.query(cfg)
			if err := validation.Query(q); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			results, err := app.RecommendOnce(ctx, cfg, q, zap.NewNop())
			if err != nil {
				return err
			}
			return render.Listing(cmd.OutOrStdout(), results)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.lat, "lat", 13.05, "latitude of the vehicle")
	flags.Float64Var(&f.lon, "lon", 80.25, "longitude of the vehicle")
	flags.Float64Var(&f.battery, "battery", 60, "battery level in percent")
	flags.StringVar(&f.connector, "connector", string(models.ConnectorCCS2), "plug type: CCS2, CHAdeMO or Type2")
	flags.StringVar(&f.batteryType, "battery-type", string(models.BatteryLiIon48V), "battery type for swaps")
	flags.StringVar(&f.strategy, "strategy", string(models.StrategyZone), "scoring strategy: additive or zone")
	flags.DurationVar(&f.timeout, "timeout", 10*time.Second, "catalog load timeout")
	return cmd
}

func (f recommendFlags) query(cfg *config.Config) models.Query {
	strategy := models.Strategy(f.strategy)
	if strategy == "" {
		strategy = models.Strategy(cfg.Recommendation.Strategy)
	}
	return models.Query{
		Lat:         f.lat,
		Lon:         f.lon,
		BatteryPct:  f.battery,
		Connector:   models.ConnectorType(f.connector),
		BatteryType: models.BatteryType(f.batteryType),
		Strategy:    strategy,
	}
}
