package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/persistence"
	"github.com/columbia6/time/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey keeps transaction values from colliding with other context users
type contextKey string

const txKey contextKey = "tx"

var errNoTransaction = errors.New("no transaction found in context")

// UnitOfWork groups repository writes into one database transaction. A
// timer's final state and its history entry go through it so both land
// atomically.
type UnitOfWork struct {
	db     *gorm.DB
	logger coreport.Logger
	clock  coreport.Clock
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, clock coreport.Clock) persistence.UnitOfWork {
	return &UnitOfWork{db: db, logger: logger, clock: clock}
}

// Begin opens a transaction and returns a context carrying it
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	u.logger.Debug("Database transaction started", nil)
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction carried by the context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, err := txFromContext(ctx)
	if err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction carried by the context. Rolling back a
// transaction that already finished counts as done, which keeps deferred
// rollbacks after a commit harmless.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, err := txFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.Rollback().Error
	switch {
	case err == nil:
		return nil
	case strings.Contains(err.Error(), "already been committed or rolled back"):
		u.logger.Debug("Rollback skipped, transaction already finished", nil)
		return nil
	default:
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
}

// GetTimerRepository returns a timer repository bound to the context's
// transaction, or to the bare connection outside one
func (u *UnitOfWork) GetTimerRepository(ctx context.Context) persistence.TimerRepository {
	return repository.NewTimerRepository(u.handle(ctx), u.clock, u.logger)
}

// GetTimerEventRepository returns an event repository bound the same way
func (u *UnitOfWork) GetTimerEventRepository(ctx context.Context) persistence.TimerEventRepository {
	return repository.NewTimerEventRepository(u.handle(ctx), u.logger)
}

// handle picks the context's transaction when present
func (u *UnitOfWork) handle(ctx context.Context) *gorm.DB {
	if tx, err := txFromContext(ctx); err == nil {
		return tx
	}
	return u.db.WithContext(ctx)
}

func txFromContext(ctx context.Context) (*gorm.DB, error) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return nil, errNoTransaction
	}
	return tx, nil
}
