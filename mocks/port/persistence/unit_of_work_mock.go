package persistence

import (
	"context"

	domainpersistence "github.com/columbia6/time/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ret := m.Called(ctx)
	var txCtx context.Context
	if ret.Get(0) != nil {
		txCtx = ret.Get(0).(context.Context)
	}
	return txCtx, ret.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) GetTimerRepository(ctx context.Context) domainpersistence.TimerRepository {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(domainpersistence.TimerRepository)
}

func (m *MockUnitOfWork) GetTimerEventRepository(ctx context.Context) domainpersistence.TimerEventRepository {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(domainpersistence.TimerEventRepository)
}
