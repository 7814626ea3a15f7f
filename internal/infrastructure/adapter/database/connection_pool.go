package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/columbia6/time/internal/domain/port/core"
)

// PoolWatcher samples connection pool statistics in the background and warns
// when the pool runs close to its limit. Exhaustion checks only apply when a
// limit is set, so the sqlite driver just gets wait reporting.
type PoolWatcher struct {
	sqlDB    *sql.DB
	logger   coreport.Logger
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewPoolWatcher creates a watcher over the given connection pool
func NewPoolWatcher(sqlDB *sql.DB, logger coreport.Logger, interval time.Duration) *PoolWatcher {
	return &PoolWatcher{
		sqlDB:    sqlDB,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sampling loop
func (w *PoolWatcher) Start() {
	go w.loop()
}

// Stop terminates the sampling loop and waits for it to exit
func (w *PoolWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *PoolWatcher) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var seenWaits int64
	for {
		select {
		case <-ticker.C:
			seenWaits = w.sample(w.sqlDB.Stats(), seenWaits)
		case <-w.stop:
			return
		}
	}
}

// sample logs pool pressure and returns the wait counter for the next round
func (w *PoolWatcher) sample(stats sql.DBStats, seenWaits int64) int64 {
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) >= float64(stats.MaxOpenConnections)*0.8 {
		w.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":   stats.InUse,
			"idle":     stats.Idle,
			"max_open": stats.MaxOpenConnections,
		})
	}

	if waits := stats.WaitCount - seenWaits; waits > 0 {
		w.logger.Warn("Requests waited for a database connection", map[string]any{
			"new_waits":  waits,
			"total_wait": stats.WaitDuration.String(),
		})
	}

	return stats.WaitCount
}
