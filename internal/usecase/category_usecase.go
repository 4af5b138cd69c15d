package usecase

import (
	"context"

	"souq/internal/domain/entity"
)

// --- Input DTOs ---

// CreateCategoryInput defines the data required to create a root category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput defines the mutable fields of a root category.
type UpdateCategoryInput struct {
	Name        string
	Description string
	IsActive    bool
}

// CreateSubCategory1Input defines the data required to create a middle node.
type CreateSubCategory1Input struct {
	Name       string
	CategoryID int64
}

// CreateSubCategory2Input defines the data required to create a leaf node.
type CreateSubCategory2Input struct {
	Name           string
	SubCategory1ID int64
}

// CategoryUsecase defines taxonomy operations. Listing is public; creation
// and updates are admin-only and enforced at the delivery layer.
type CategoryUsecase interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	ListSubCategories1(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.SubCategory1, error)
	ListSubCategories2(ctx context.Context, subCategory1ID int64, activeOnly bool) ([]*entity.SubCategory2, error)

	// GetCategoryTree returns the full taxonomy with both levels preloaded.
	GetCategoryTree(ctx context.Context) ([]*entity.Category, error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*entity.Category, error)
	CreateSubCategory1(ctx context.Context, input CreateSubCategory1Input) (*entity.SubCategory1, error)
	CreateSubCategory2(ctx context.Context, input CreateSubCategory2Input) (*entity.SubCategory2, error)
}
