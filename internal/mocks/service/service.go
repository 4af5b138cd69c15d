// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMessageChannel is a mock implementation of service.MessageChannel.
type MockMessageChannel struct {
	mock.Mock
}

// NewMockMessageChannel creates a mock whose expectations are asserted when
// the test ends.
func NewMockMessageChannel(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageChannel {
	m := &MockMessageChannel{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessageChannel) Send(ctx context.Context, phoneNumber string, text string) error {
	args := m.Called(ctx, phoneNumber, text)

	return args.Error(0)
}

// MockFileStorage is a mock implementation of service.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

// NewMockFileStorage creates a mock whose expectations are asserted when the
// test ends.
func NewMockFileStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileStorage {
	m := &MockFileStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFileStorage) Save(ctx context.Context, filename string, size int64, payload io.Reader) (string, error) {
	args := m.Called(ctx, filename, size, payload)

	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, storedPath string) error {
	args := m.Called(ctx, storedPath)

	return args.Error(0)
}

// MockSessionStore is a mock implementation of service.SessionStore for the
// rare tests that need to fail a store operation; most tests use the real
// in-memory store instead.
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a mock whose expectations are asserted when the
// test ends.
func NewMockSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionStore {
	m := &MockSessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockSessionStore) Update(ctx context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error {
	args := m.Called(ctx, key, ttl, fn)

	return args.Error(0)
}
