package repository

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockStoreCategoryRepository is a mock implementation of repository.StoreCategoryRepository.
type MockStoreCategoryRepository struct {
	mock.Mock
}

// NewMockStoreCategoryRepository creates a mock whose expectations are
// asserted when the test ends.
func NewMockStoreCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStoreCategoryRepository {
	m := &MockStoreCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStoreCategoryRepository) CreateStoreCategory(ctx context.Context, edge *entity.StoreCategory) error {
	args := m.Called(ctx, edge)

	return args.Error(0)
}

func (m *MockStoreCategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.StoreCategory, error) {
	args := m.Called(ctx, userID)
	if edges, ok := args.Get(0).([]*entity.StoreCategory); ok {
		return edges, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStoreCategoryRepository) DeleteStoreCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockStoreCategoryRepository) FindRelevantSellers(ctx context.Context, request *entity.Request) ([]*entity.User, error) {
	args := m.Called(ctx, request)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}
