// Package usecase provides hand-written testify mocks for usecase-level
// contracts.
package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of usecase.Notifier.
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier creates a mock whose expectations are asserted when the
// test ends.
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotifier) SendVerificationCode(ctx context.Context, phoneNumber string, code string) bool {
	args := m.Called(ctx, phoneNumber, code)

	return args.Bool(0)
}

func (m *MockNotifier) NotifyStoreMatch(ctx context.Context, seller *entity.User, request *entity.Request) bool {
	args := m.Called(ctx, seller, request)

	return args.Bool(0)
}

func (m *MockNotifier) NotifyUserApproval(ctx context.Context, owner *entity.User, request *entity.Request) bool {
	args := m.Called(ctx, owner, request)

	return args.Bool(0)
}
