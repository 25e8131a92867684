package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache implementa cache.Cache. Em Get, o terceiro valor de Return é o
// conteúdo em cache: um ponteiro do mesmo tipo de dest, copiado para ele, ou nil.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)

	if cached := args.Get(2); cached != nil {
		reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(cached).Elem())
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
