package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating writes across the timer
// and event repositories so a completion and its history entry land
// atomically
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetTimerRepository returns a timer repository bound to the current transaction
	GetTimerRepository(ctx context.Context) TimerRepository

	// GetTimerEventRepository returns an event repository bound to the current transaction
	GetTimerEventRepository(ctx context.Context) TimerEventRepository
}
