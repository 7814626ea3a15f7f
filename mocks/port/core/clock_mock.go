package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClock is a testify mock for the core Clock port
type MockClock struct {
	mock.Mock
}

func (m *MockClock) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *MockClock) Since(t time.Time) time.Duration {
	return m.Called(t).Get(0).(time.Duration)
}

func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ret := m.Called(ctx, timeout)
	return ret.Get(0).(context.Context), ret.Get(1).(context.CancelFunc)
}
