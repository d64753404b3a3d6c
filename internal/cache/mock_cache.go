package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache is a mock implementation of the TokenCache interface for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetToken(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) SetToken(ctx context.Context, key, token string, ttl time.Duration) error {
	args := m.Called(ctx, key, token, ttl)
	return args.Error(0)
}

func (m *MockCache) DeleteToken(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
