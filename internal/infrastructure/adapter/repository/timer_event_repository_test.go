package repository

import (
	"context"
	"testing"
	"time"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	"github.com/columbia6/time/internal/infrastructure/adapter/database"
	"github.com/columbia6/time/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEventRepo(t *testing.T) (*database.TestDBManager, *TimerEventRepository) {
	t.Helper()

	testDB := database.NewTestDBManager(t, logger.NewNoopLogger())
	testDB.Connect(t)
	t.Cleanup(func() { testDB.Close(t) })
	testDB.SetupTestDB(t)

	repo := NewTimerEventRepository(testDB.Manager.DB(), testDB.Logger)
	return testDB, repo
}

func TestTimerEventRepositoryAppend(t *testing.T) {
	testDB, repo := setupEventRepo(t)
	ctx := context.Background()

	testDB.CreateTestTimer(t, "timer-1", string(entity.TimerPending), 5000)

	t.Run("should assign an identifier and preserve the payload", func(t *testing.T) {
		event := &entity.TimerEvent{
			TimerID: "timer-1",
			Kind:    entity.EventCancelled,
			Detail: entity.TimerEventDetail{
				DurationMs: 5000,
				ElapsedMs:  1200.5,
				Reason:     "changed plans",
			},
			CreatedAt: testDB.Clock.Now(),
		}

		require.NoError(t, repo.Append(ctx, event))
		assert.NotZero(t, event.ID)

		events, err := repo.ListByTimerID(ctx, "timer-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		assert.Equal(t, entity.EventCancelled, events[0].Kind)
		assert.Equal(t, float64(5000), events[0].Detail.DurationMs)
		assert.Equal(t, 1200.5, events[0].Detail.ElapsedMs)
		assert.Equal(t, "changed plans", events[0].Detail.Reason)
	})

	t.Run("should reject an event for an unknown timer", func(t *testing.T) {
		event := &entity.TimerEvent{
			TimerID:   "no-such-timer",
			Kind:      entity.EventFired,
			Detail:    entity.TimerEventDetail{DurationMs: 5000},
			CreatedAt: testDB.Clock.Now(),
		}

		err := repo.Append(ctx, event)

		assert.ErrorIs(t, err, errs.ErrTimerNotFound)
	})
}

func TestTimerEventRepositoryListByTimerID(t *testing.T) {
	testDB, repo := setupEventRepo(t)
	ctx := context.Background()
	base := testDB.Clock.Now()

	testDB.CreateTestTimer(t, "timer-1", string(entity.TimerCancelled), 5000)
	testDB.CreateTestTimer(t, "timer-2", string(entity.TimerPending), 1000)

	history := []*entity.TimerEvent{
		{TimerID: "timer-1", Kind: entity.EventScheduled, Detail: entity.TimerEventDetail{DurationMs: 5000}, CreatedAt: base},
		{TimerID: "timer-1", Kind: entity.EventCancelled, Detail: entity.TimerEventDetail{DurationMs: 5000, ElapsedMs: 2000, Reason: "stop"}, CreatedAt: base.Add(2 * time.Second)},
		{TimerID: "timer-2", Kind: entity.EventScheduled, Detail: entity.TimerEventDetail{DurationMs: 1000}, CreatedAt: base.Add(time.Second)},
	}
	for _, event := range history {
		require.NoError(t, repo.Append(ctx, event))
	}

	t.Run("should return only the timer's own history oldest first", func(t *testing.T) {
		events, err := repo.ListByTimerID(ctx, "timer-1")

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, entity.EventScheduled, events[0].Kind)
		assert.Equal(t, entity.EventCancelled, events[1].Kind)
		assert.Equal(t, "stop", events[1].Detail.Reason)
	})

	t.Run("should report an unknown timer instead of an empty history", func(t *testing.T) {
		events, err := repo.ListByTimerID(ctx, "no-such-timer")

		assert.Nil(t, events)
		assert.ErrorIs(t, err, errs.ErrTimerNotFound)
	})

	t.Run("should return an empty history for a timer without events", func(t *testing.T) {
		testDB.CreateTestTimer(t, "timer-3", string(entity.TimerPending), 1000)

		events, err := repo.ListByTimerID(ctx, "timer-3")

		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
