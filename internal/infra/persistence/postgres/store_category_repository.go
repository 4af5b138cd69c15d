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

// storeCategoryRepository implements the repository.StoreCategoryRepository interface.
type storeCategoryRepository struct {
	db *gorm.DB
}

// NewStoreCategoryRepository is the constructor for storeCategoryRepository.
func NewStoreCategoryRepository(db *gorm.DB) repository.StoreCategoryRepository {
	return &storeCategoryRepository{db: db}
}

// CreateStoreCategory records that a seller serves a taxonomy node.
func (repo *storeCategoryRepository) CreateStoreCategory(ctx context.Context, edge *entity.StoreCategory) error {
	edgeM := &model.StoreCategoryModel{
		UserID:         edge.UserID,
		CategoryID:     edge.CategoryID,
		SubCategory1ID: edge.SubCategory1ID,
		SubCategory2ID: edge.SubCategory2ID,
	}

	if err := repo.db.WithContext(ctx).Create(edgeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateStoreCategory
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidCategoryChain.WrapMessage("taxonomy node does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store category")
	}

	edge.ID = edgeM.ID
	edge.CreatedAt = edgeM.CreatedAt

	return nil
}

// ListByUser returns all specialty edges declared by one seller.
func (repo *storeCategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.StoreCategory, error) {
	var edgeMs []model.StoreCategoryModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&edgeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list store categories")
	}

	edges := make([]*entity.StoreCategory, 0, len(edgeMs))
	for i := range edgeMs {
		edges = append(edges, toStoreCategoryDomain(&edgeMs[i]))
	}

	return edges, nil
}

// DeleteStoreCategory removes one specialty edge.
func (repo *storeCategoryRepository) DeleteStoreCategory(ctx context.Context, id int64) error {
	res := repo.db.WithContext(ctx).Delete(&model.StoreCategoryModel{}, id)
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to delete store category")
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	return nil
}

// FindRelevantSellers resolves the request's category chain against seller
// specialty edges. An edge matches on the request's category id, or on a
// subcategory id only when the request actually carries one; unset levels
// never match anything. Each seller appears at most once regardless of how
// many of their edges matched.
func (repo *storeCategoryRepository) FindRelevantSellers(ctx context.Context, request *entity.Request) ([]*entity.User, error) {
	var userMs []model.UserModel

	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Distinct("users.*").
		Joins("JOIN store_categories ON store_categories.user_id = users.id").
		Where("users.role = ?", string(entity.RoleSeller))

	match := repo.db.Where("store_categories.category_id = ?", request.CategoryID)
	if request.SubCategory1ID != nil {
		match = match.Or("store_categories.sub_category1_id = ?", *request.SubCategory1ID)
	}
	if request.SubCategory2ID != nil {
		match = match.Or("store_categories.sub_category2_id = ?", *request.SubCategory2ID)
	}

	if err := query.Where(match).Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find relevant sellers")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

func toStoreCategoryDomain(data *model.StoreCategoryModel) *entity.StoreCategory {
	if data == nil {
		return nil
	}

	return &entity.StoreCategory{
		ID:             data.ID,
		UserID:         data.UserID,
		CategoryID:     data.CategoryID,
		SubCategory1ID: data.SubCategory1ID,
		SubCategory2ID: data.SubCategory2ID,
		CreatedAt:      data.CreatedAt,
	}
}
