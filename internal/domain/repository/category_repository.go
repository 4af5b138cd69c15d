package repository

import (
	"context"
	"errors"

	"souq/internal/domain/entity"
)

// Sentinel errors for taxonomy lookups.
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrSubCategory1NotFound = errors.New("subcategory1 not found")
	ErrSubCategory2NotFound = errors.New("subcategory2 not found")
)

// CategoryRepository defines persistence for the three-level taxonomy.
// Creation of a child node requires the parent to exist; the implementations
// surface the sentinel not-found errors above when it does not.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *entity.Category) error
	UpdateCategory(ctx context.Context, category *entity.Category) error
	FindCategoryByID(ctx context.Context, id int64) (*entity.Category, error)

	// ListCategories returns root nodes, optionally restricted to active ones.
	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// ListCategoryTree returns all categories with their subcategory levels
	// preloaded, for the admin taxonomy screen.
	ListCategoryTree(ctx context.Context) ([]*entity.Category, error)

	CreateSubCategory1(ctx context.Context, sub *entity.SubCategory1) error
	FindSubCategory1ByID(ctx context.Context, id int64) (*entity.SubCategory1, error)
	ListSubCategories1(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.SubCategory1, error)

	CreateSubCategory2(ctx context.Context, sub *entity.SubCategory2) error
	FindSubCategory2ByID(ctx context.Context, id int64) (*entity.SubCategory2, error)
	ListSubCategories2(ctx context.Context, subCategory1ID int64, activeOnly bool) ([]*entity.SubCategory2, error)
}
