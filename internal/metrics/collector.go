package metrics

import (
	"database/sql"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Collector samples process and connection pool statistics on a fixed interval.
type Collector struct {
	metrics   *Metrics
	logger    *zap.Logger
	db        *sql.DB
	startTime time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewCollector builds a Collector. db may be nil when no SQL store is configured.
func NewCollector(metrics *Metrics, logger *zap.Logger, db *sql.DB) *Collector {
	return &Collector{
		metrics:   metrics,
		logger:    logger,
		db:        db,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}
}

func (c *Collector) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				return
			}
		}
	}()

	c.logger.Info("Metrics collector started", zap.Duration("interval", interval))
}

func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		c.logger.Info("Metrics collector stopped")
	})
}

func (c *Collector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	c.metrics.UpdateSystemMetrics(time.Since(c.startTime), &memStats)

	if c.db == nil || c.metrics == nil {
		return
	}

	stats := c.db.Stats()
	c.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	c.metrics.DBConnectionsIdle.Set(float64(stats.Idle))
	c.metrics.DBWaitCount.Set(float64(stats.WaitCount))

	c.logger.Debug("Database connection stats",
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Duration("wait_duration", stats.WaitDuration),
	)
}
