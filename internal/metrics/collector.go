package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: 60 * time.Second,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var candidatures int64
	if err := c.db.WithContext(ctx).Table("candidatures").Where("deleted_at IS NULL").Count(&candidatures).Error; err != nil {
		c.logger.Error("Failed to count candidatures", zap.Error(err))
	} else {
		c.metrics.SetCandidaturesTotal(candidatures)
	}

	var submissions int64
	if err := c.db.WithContext(ctx).Table("submissions").Where("deleted_at IS NULL").Count(&submissions).Error; err != nil {
		c.logger.Error("Failed to count submissions", zap.Error(err))
	} else {
		c.metrics.SetSubmissionsTotal(submissions)
	}
}
