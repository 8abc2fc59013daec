package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Stats is a snapshot of board totals
type Stats struct {
	Projects int64
	Columns  int64
	Tasks    int64
}

// StatsSource reports current board totals
type StatsSource interface {
	CountStats(ctx context.Context) (Stats, error)
}

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	source  StatsSource
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector polling source every interval
func NewBusinessMetricsCollector(source StatsSource, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &BusinessMetricsCollector{
		source:  source,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(interval),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.source.CountStats(ctx)
	if err != nil {
		c.logger.Error("Failed to count board stats", zap.Error(err))
		return
	}

	c.metrics.SetProjectsTotal(stats.Projects)
	c.metrics.SetColumnsTotal(stats.Columns)
	c.metrics.SetTasksTotal(stats.Tasks)
}
