package postgres

import (
	"context"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// CreateCategory persists a new root taxonomy node.
func (repo *categoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt

	return nil
}

// UpdateCategory modifies an existing root node (name, description, IsActive).
func (repo *categoryRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	res := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
			"is_active":   category.IsActive,
		})
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to update category")
	}
	if res.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// FindCategoryByID retrieves a single root node.
func (repo *categoryRepository) FindCategoryByID(ctx context.Context, id int64) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).First(&categoryM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

// ListCategories returns root nodes, optionally only the active ones.
func (repo *categoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	var categoryMs []model.CategoryModel

	query := repo.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

// ListCategoryTree returns all categories with both subcategory levels preloaded.
func (repo *categoryRepository) ListCategoryTree(ctx context.Context) ([]*entity.Category, error) {
	var categoryMs []model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Preload("SubCategories1.SubCategories2").
		Preload("SubCategories1").
		Order("name").
		Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list category tree")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

// CreateSubCategory1 persists a middle-level node. The parent category must exist.
func (repo *categoryRepository) CreateSubCategory1(ctx context.Context, sub *entity.SubCategory1) error {
	subM := &model.SubCategory1Model{
		Name:       sub.Name,
		CategoryID: sub.CategoryID,
		IsActive:   sub.IsActive,
	}

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subcategory1")
	}

	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt

	return nil
}

// FindSubCategory1ByID retrieves a single middle-level node.
func (repo *categoryRepository) FindSubCategory1ByID(ctx context.Context, id int64) (*entity.SubCategory1, error) {
	var subM model.SubCategory1Model

	if err := repo.db.WithContext(ctx).First(&subM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubCategory1NotFound
		}

		return nil, errors.Wrap(err, "failed to find subcategory1 by id")
	}

	return toSubCategory1Domain(&subM), nil
}

// ListSubCategories1 returns the children of one category.
func (repo *categoryRepository) ListSubCategories1(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.SubCategory1, error) {
	var subMs []model.SubCategory1Model

	query := repo.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&subMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories1")
	}

	subs := make([]*entity.SubCategory1, 0, len(subMs))
	for i := range subMs {
		subs = append(subs, toSubCategory1Domain(&subMs[i]))
	}

	return subs, nil
}

// CreateSubCategory2 persists a leaf node. The parent subcategory1 must exist.
func (repo *categoryRepository) CreateSubCategory2(ctx context.Context, sub *entity.SubCategory2) error {
	subM := &model.SubCategory2Model{
		Name:           sub.Name,
		SubCategory1ID: sub.SubCategory1ID,
		IsActive:       sub.IsActive,
	}

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrSubCategory1NotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subcategory2")
	}

	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt

	return nil
}

// FindSubCategory2ByID retrieves a single leaf node.
func (repo *categoryRepository) FindSubCategory2ByID(ctx context.Context, id int64) (*entity.SubCategory2, error) {
	var subM model.SubCategory2Model

	if err := repo.db.WithContext(ctx).First(&subM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubCategory2NotFound
		}

		return nil, errors.Wrap(err, "failed to find subcategory2 by id")
	}

	return toSubCategory2Domain(&subM), nil
}

// ListSubCategories2 returns the children of one subcategory1.
func (repo *categoryRepository) ListSubCategories2(ctx context.Context, subCategory1ID int64, activeOnly bool) ([]*entity.SubCategory2, error) {
	var subMs []model.SubCategory2Model

	query := repo.db.WithContext(ctx).Where("sub_category1_id = ?", subCategory1ID).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&subMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories2")
	}

	subs := make([]*entity.SubCategory2, 0, len(subMs))
	for i := range subMs {
		subs = append(subs, toSubCategory2Domain(&subMs[i]))
	}

	return subs, nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	subs := make([]*entity.SubCategory1, 0, len(data.SubCategories1))
	for i := range data.SubCategories1 {
		subs = append(subs, toSubCategory1Domain(&data.SubCategories1[i]))
	}

	return &entity.Category{
		ID:             data.ID,
		Name:           data.Name,
		Description:    data.Description,
		IsActive:       data.IsActive,
		CreatedAt:      data.CreatedAt,
		SubCategories1: subs,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		IsActive:    data.IsActive,
	}
}

func toSubCategory1Domain(data *model.SubCategory1Model) *entity.SubCategory1 {
	if data == nil {
		return nil
	}

	subs := make([]*entity.SubCategory2, 0, len(data.SubCategories2))
	for i := range data.SubCategories2 {
		subs = append(subs, toSubCategory2Domain(&data.SubCategories2[i]))
	}

	return &entity.SubCategory1{
		ID:             data.ID,
		Name:           data.Name,
		CategoryID:     data.CategoryID,
		IsActive:       data.IsActive,
		CreatedAt:      data.CreatedAt,
		SubCategories2: subs,
	}
}

func toSubCategory2Domain(data *model.SubCategory2Model) *entity.SubCategory2 {
	if data == nil {
		return nil
	}

	return &entity.SubCategory2{
		ID:             data.ID,
		Name:           data.Name,
		SubCategory1ID: data.SubCategory1ID,
		IsActive:       data.IsActive,
		CreatedAt:      data.CreatedAt,
	}
}
