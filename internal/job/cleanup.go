package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StagingStore drops unverified registrations older than a cutoff
type StagingStore interface {
	DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error)
}

// Cleanup purges stale staging records for customers and providers
type Cleanup struct {
	stores  map[string]StagingStore
	ttl     time.Duration
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time
}

func NewCleanup(stores map[string]StagingStore, ttl time.Duration, log *zap.Logger) *Cleanup {
	return &Cleanup{
		stores:  stores,
		ttl:     ttl,
		timeout: time.Minute,
		log:     log.With(zap.String("job", "cleanup")),
		now:     time.Now,
	}
}

// Start schedules the purge with a standard five-field cron spec. Callers
// stop the returned scheduler on shutdown.
func (c *Cleanup) Start(schedule string) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		c.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cleanup %q: %w", schedule, err)
	}

	scheduler.Start()
	c.log.Info("Cleanup scheduled", zap.String("schedule", schedule), zap.Duration("ttl", c.ttl))
	return scheduler, nil
}

// Run purges every store once and returns the number of rows removed
func (c *Cleanup) Run(ctx context.Context) int64 {
	cutoff := c.now().Add(-c.ttl)

	var total int64
	for name, store := range c.stores {
		n, err := store.DeleteUnverifiedBefore(ctx, cutoff)
		if err != nil {
			c.log.Error("Failed to purge unverified records", zap.Error(err), zap.String("store", name))
			continue
		}
		if n > 0 {
			c.log.Info("Purged unverified records", zap.String("store", name), zap.Int64("count", n))
		}
		total += n
	}
	return total
}
