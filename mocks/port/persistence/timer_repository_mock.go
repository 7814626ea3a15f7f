package persistence

import (
	"context"

	"github.com/columbia6/time/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockTimerRepository is a testify mock for the TimerRepository port
type MockTimerRepository struct {
	mock.Mock
}

func (m *MockTimerRepository) Create(ctx context.Context, timer *entity.Timer) error {
	return m.Called(ctx, timer).Error(0)
}

func (m *MockTimerRepository) Update(ctx context.Context, timer *entity.Timer) error {
	return m.Called(ctx, timer).Error(0)
}

func (m *MockTimerRepository) GetByID(ctx context.Context, id string) (*entity.Timer, error) {
	ret := m.Called(ctx, id)
	var timer *entity.Timer
	if ret.Get(0) != nil {
		timer = ret.Get(0).(*entity.Timer)
	}
	return timer, ret.Error(1)
}

func (m *MockTimerRepository) List(ctx context.Context, limit int) ([]*entity.Timer, error) {
	ret := m.Called(ctx, limit)
	var timers []*entity.Timer
	if ret.Get(0) != nil {
		timers = ret.Get(0).([]*entity.Timer)
	}
	return timers, ret.Error(1)
}

func (m *MockTimerRepository) CountActive(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockTimerRepository) CancelAllPending(ctx context.Context, reason string) (int64, error) {
	ret := m.Called(ctx, reason)
	return ret.Get(0).(int64), ret.Error(1)
}

// MockTimerEventRepository is a testify mock for the TimerEventRepository port
type MockTimerEventRepository struct {
	mock.Mock
}

func (m *MockTimerEventRepository) Append(ctx context.Context, event *entity.TimerEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockTimerEventRepository) ListByTimerID(ctx context.Context, timerID string) ([]*entity.TimerEvent, error) {
	ret := m.Called(ctx, timerID)
	var events []*entity.TimerEvent
	if ret.Get(0) != nil {
		events = ret.Get(0).([]*entity.TimerEvent)
	}
	return events, ret.Error(1)
}
