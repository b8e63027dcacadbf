package worker

// lowstock_cron.go
// Background goroutine that periodically sweeps the product catalog and mails
// a digest of everything at or below the low-stock threshold. Uses the
// circuit breaker to avoid hammering a downed mail relay.

import (
	"context"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/infra"
	"github.com/juanmiguelzamora/StockWise/internal/model"
	"github.com/juanmiguelzamora/StockWise/internal/repository"

	"github.com/rs/zerolog/log"
)

const digestTickInterval = 24 * time.Hour

// LowStockCronConfig holds all dependencies for the digest goroutine.
type LowStockCronConfig struct {
	ProductRepo  repository.ProductRepository
	Mailer       *infra.Mailer
	CB           *infra.CircuitBreaker
	AlertEmail   string
	LowThreshold int
}

// StartLowStockCron launches a background goroutine that ticks once a day,
// collects low and out-of-stock products, and mails the digest.
// It respects the context for graceful shutdown.
func StartLowStockCron(ctx context.Context, cfg LowStockCronConfig) {
	if cfg.AlertEmail == "" {
		log.Info().Msg("lowstock_cron: no alert email configured, digest disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(digestTickInterval)
		defer ticker.Stop()

		log.Info().Msg("lowstock_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lowstock_cron: shutting down")
				return
			case <-ticker.C:
				sendDigest(ctx, cfg)
			}
		}
	}()
}

func sendDigest(ctx context.Context, cfg LowStockCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("lowstock_cron: circuit breaker is open, skipping tick")
		return
	}

	products, err := cfg.ProductRepo.AllActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lowstock_cron: failed to list products")
		return
	}

	var low []model.Product
	for _, p := range products {
		if p.Quantity <= cfg.LowThreshold {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return
	}

	err = cfg.CB.Execute(func() error {
		return cfg.Mailer.SendLowStockDigest(cfg.AlertEmail, low)
	})
	if err != nil {
		log.Error().Err(err).Int("products", len(low)).Msg("lowstock_cron: digest send failed")
		return
	}
	log.Info().Int("products", len(low)).Msg("lowstock_cron: digest sent")
}
