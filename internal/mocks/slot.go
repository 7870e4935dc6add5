package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSlot is a mock durable slot
type MockSlot struct {
	mock.Mock
}

func (m *MockSlot) Name() string {
	return m.Called().String(0)
}

func (m *MockSlot) Load(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlot) Save(ctx context.Context, data []byte) error {
	return m.Called(ctx, data).Error(0)
}

func (m *MockSlot) Delete(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSlot) Close() error {
	return m.Called().Error(0)
}
