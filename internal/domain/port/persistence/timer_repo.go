package persistence

import (
	"context"

	"github.com/columbia6/time/internal/domain/entity"
)

// TimerRepository defines essential methods to interact with timer records
type TimerRepository interface {
	// Create saves a new timer record in the pending state
	//
	// Possible errors:
	// - ErrConstraintViolation: If a timer with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, timer *entity.Timer) error

	// Update persists the current state of an existing timer
	// Used when a timer fires or is cancelled
	//
	// Possible errors:
	// - ErrTimerNotFound: If timer with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, timer *entity.Timer) error

	// GetByID retrieves a timer by its identifier
	//
	// Possible errors:
	// - ErrTimerNotFound: If timer with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Timer, error)

	// List returns the most recently created timers, newest first,
	// bounded by limit
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	List(ctx context.Context, limit int) ([]*entity.Timer, error)

	// CountActive returns the number of timers still in the pending state
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	CountActive(ctx context.Context) (int64, error)

	// CancelAllPending marks every pending timer as cancelled with the
	// given reason and returns how many rows were swept. Used at startup
	// to close out timers orphaned by a previous process.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	CancelAllPending(ctx context.Context, reason string) (int64, error)
}

// TimerEventRepository defines methods to interact with the append-only
// timer event history
type TimerEventRepository interface {
	// Append stores a new event for a timer
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Append(ctx context.Context, event *entity.TimerEvent) error

	// ListByTimerID returns all events recorded for a timer, oldest first
	//
	// Possible errors:
	// - ErrTimerNotFound: If timer with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	ListByTimerID(ctx context.Context, timerID string) ([]*entity.TimerEvent, error)
}
