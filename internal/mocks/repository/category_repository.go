package repository

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

// NewMockCategoryRepository creates a mock whose expectations are asserted
// when the test ends.
func NewMockCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	args := m.Called(ctx, activeOnly)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoryTree(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) CreateSubCategory1(ctx context.Context, sub *entity.SubCategory1) error {
	args := m.Called(ctx, sub)

	return args.Error(0)
}

func (m *MockCategoryRepository) FindSubCategory1ByID(ctx context.Context, id int64) (*entity.SubCategory1, error) {
	args := m.Called(ctx, id)
	if sub, ok := args.Get(0).(*entity.SubCategory1); ok {
		return sub, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListSubCategories1(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.SubCategory1, error) {
	args := m.Called(ctx, categoryID, activeOnly)
	if subs, ok := args.Get(0).([]*entity.SubCategory1); ok {
		return subs, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) CreateSubCategory2(ctx context.Context, sub *entity.SubCategory2) error {
	args := m.Called(ctx, sub)

	return args.Error(0)
}

func (m *MockCategoryRepository) FindSubCategory2ByID(ctx context.Context, id int64) (*entity.SubCategory2, error) {
	args := m.Called(ctx, id)
	if sub, ok := args.Get(0).(*entity.SubCategory2); ok {
		return sub, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListSubCategories2(ctx context.Context, subCategory1ID int64, activeOnly bool) ([]*entity.SubCategory2, error) {
	args := m.Called(ctx, subCategory1ID, activeOnly)
	if subs, ok := args.Get(0).([]*entity.SubCategory2); ok {
		return subs, args.Error(1)
	}

	return nil, args.Error(1)
}
