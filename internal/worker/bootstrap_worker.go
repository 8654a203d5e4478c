package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CatalogSeeder is satisfied by usecase.CatalogBootstrapper.
type CatalogSeeder interface {
	Run(ctx context.Context) (int, error)
}

// BootstrapRetryWorker повторяет загрузку каталога после неудачного старта.
// Each attempt re-checks the catalog count, so a catalog seeded elsewhere
// (for example by cmd/seed) ends the retries without inserting anything.
type BootstrapRetryWorker struct {
	*BaseWorker
	seeder      CatalogSeeder
	interval    time.Duration
	maxAttempts int
}

// NewBootstrapRetryWorker creates the worker. maxAttempts <= 0 retries until stopped.
func NewBootstrapRetryWorker(seeder CatalogSeeder, interval time.Duration, maxAttempts int, logger *zap.Logger) *BootstrapRetryWorker {
	return &BootstrapRetryWorker{
		BaseWorker:  NewBaseWorker("catalog-bootstrap-retry", logger),
		seeder:      seeder,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

func (w *BootstrapRetryWorker) Start(ctx context.Context) error {
	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for attempt := 1; w.maxAttempts <= 0 || attempt <= w.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.StopChan():
			return nil
		case <-timer.C:
		}

		inserted, err := w.seeder.Run(ctx)
		if err == nil {
			w.Logger().Info("Catalog bootstrap succeeded on retry",
				zap.Int("attempt", attempt),
				zap.Int("inserted", inserted),
			)
			return nil
		}

		w.Logger().Warn("Catalog bootstrap retry failed", zap.Int("attempt", attempt), zap.Error(err))
		timer.Reset(w.interval)
	}

	return fmt.Errorf("catalog bootstrap gave up after %d attempts", w.maxAttempts)
}
