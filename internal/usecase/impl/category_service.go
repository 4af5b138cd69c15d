package impl

import (
	"context"
	"strings"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service instance
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{categoryRepo: params.CategoryRepo}
}

func (s *categoryService) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (s *categoryService) ListSubCategories1(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.SubCategory1, error) {
	subs, err := s.categoryRepo.ListSubCategories1(ctx, categoryID, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories1")
	}

	return subs, nil
}

func (s *categoryService) ListSubCategories2(ctx context.Context, subCategory1ID int64, activeOnly bool) ([]*entity.SubCategory2, error) {
	subs, err := s.categoryRepo.ListSubCategories2(ctx, subCategory1ID, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories2")
	}

	return subs, nil
}

func (s *categoryService) GetCategoryTree(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.categoryRepo.ListCategoryTree(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load category tree")
	}

	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("category name is required")
	}

	category := &entity.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, input usecase.UpdateCategoryInput) (*entity.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("category name is required")
	}

	category := &entity.Category{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		IsActive:    input.IsActive,
	}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, err
	}

	return category, nil
}

func (s *categoryService) CreateSubCategory1(ctx context.Context, input usecase.CreateSubCategory1Input) (*entity.SubCategory1, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("subcategory name is required")
	}

	sub := &entity.SubCategory1{
		Name:       strings.TrimSpace(input.Name),
		CategoryID: input.CategoryID,
		IsActive:   true,
	}
	if err := s.categoryRepo.CreateSubCategory1(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, err
	}

	return sub, nil
}

func (s *categoryService) CreateSubCategory2(ctx context.Context, input usecase.CreateSubCategory2Input) (*entity.SubCategory2, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("subcategory name is required")
	}

	sub := &entity.SubCategory2{
		Name:           strings.TrimSpace(input.Name),
		SubCategory1ID: input.SubCategory1ID,
		IsActive:       true,
	}
	if err := s.categoryRepo.CreateSubCategory2(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrSubCategory1NotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("parent subcategory does not exist")
		}

		return nil, err
	}

	return sub, nil
}
