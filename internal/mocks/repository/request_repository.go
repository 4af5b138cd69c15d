package repository

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRequestRepository is a mock implementation of repository.RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

// NewMockRequestRepository creates a mock whose expectations are asserted
// when the test ends.
func NewMockRequestRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRequestRepository {
	m := &MockRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRequestRepository) Create(ctx context.Context, request *entity.Request) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id int64) (*entity.Request, error) {
	args := m.Called(ctx, id)
	if request, ok := args.Get(0).(*entity.Request); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.Request, int64, error) {
	args := m.Called(ctx, filter)
	if requests, ok := args.Get(0).([]*entity.Request); ok {
		return requests, args.Get(1).(int64), args.Error(2)
	}

	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, request *entity.Request) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
