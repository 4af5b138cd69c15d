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

// requestRepository implements the repository.RequestRepository interface.
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository is the constructor for requestRepository.
func NewRequestRepository(db *gorm.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Create persists a new request together with its image records. GORM inserts
// the associated images in the same statement batch, so the row and its images
// land together.
func (repo *requestRepository) Create(ctx context.Context, request *entity.Request) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidCategoryChain.WrapMessage("taxonomy node does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required request fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	for i, imageM := range requestM.Images {
		request.Images[i].ID = imageM.ID
		request.Images[i].RequestID = imageM.RequestID
	}

	return nil
}

// FindByID retrieves a request with its images and owner preloaded.
func (repo *requestRepository) FindByID(ctx context.Context, id int64) (*entity.Request, error) {
	var requestM model.RequestModel

	if err := repo.db.WithContext(ctx).
		Preload("Images").
		Preload("User").
		First(&requestM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find request by id")
	}

	return toRequestDomain(&requestM), nil
}

// List returns requests matching the filter, newest first, plus the total
// count for pagination.
func (repo *requestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.Request, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.RequestModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count requests")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var requestMs []model.RequestModel
	if err := query.
		Preload("Images").
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requestMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list requests")
	}

	requests := make([]*entity.Request, 0, len(requestMs))
	for i := range requestMs {
		requests = append(requests, toRequestDomain(&requestMs[i]))
	}

	return requests, total, nil
}

// UpdateStatus persists a lifecycle transition without touching the request
// body. The pending guard lives in the WHERE clause, so two concurrent
// reviews cannot both claim the transition.
func (repo *requestRepository) UpdateStatus(ctx context.Context, request *entity.Request) error {
	res := repo.db.WithContext(ctx).
		Model(&model.RequestModel{}).
		Where("id = ? AND status = ?", request.ID, string(entity.RequestStatusPending)).
		Updates(map[string]any{
			"status":      string(request.Status),
			"admin_notes": request.AdminNotes,
			"approved_at": request.ApprovedAt,
		})
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to update request status")
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.RequestModel{}).
			Where("id = ?", request.ID).
			Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check request status")
		}
		if count == 0 {
			return repository.ErrRequestNotFound
		}

		return repository.ErrRequestAlreadyReviewed
	}

	return nil
}

// Delete removes a request; the database cascades the delete to its images.
func (repo *requestRepository) Delete(ctx context.Context, id int64) error {
	res := repo.db.WithContext(ctx).Delete(&model.RequestModel{}, id)
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to delete request")
	}
	if res.RowsAffected == 0 {
		return repository.ErrRequestNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toRequestDomain(data *model.RequestModel) *entity.Request {
	if data == nil {
		return nil
	}

	images := make([]*entity.RequestImage, 0, len(data.Images))
	for i := range data.Images {
		imageM := &data.Images[i]
		images = append(images, &entity.RequestImage{
			ID:        imageM.ID,
			RequestID: imageM.RequestID,
			ImagePath: imageM.ImagePath,
			CreatedAt: imageM.CreatedAt,
		})
	}

	return &entity.Request{
		ID:             data.ID,
		Title:          data.Title,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		SubCategory1ID: data.SubCategory1ID,
		SubCategory2ID: data.SubCategory2ID,
		City:           data.City,
		District:       data.District,
		Location:       data.Location,
		UserID:         data.UserID,
		Status:         entity.RequestStatus(data.Status),
		AdminNotes:     data.AdminNotes,
		CreatedAt:      data.CreatedAt,
		ApprovedAt:     data.ApprovedAt,
		Images:         images,
		User:           toUserDomain(data.User),
	}
}

func fromRequestDomain(data *entity.Request) *model.RequestModel {
	if data == nil {
		return nil
	}

	images := make([]model.RequestImageModel, 0, len(data.Images))
	for _, image := range data.Images {
		images = append(images, model.RequestImageModel{
			ImagePath: image.ImagePath,
		})
	}

	return &model.RequestModel{
		ID:             data.ID,
		Title:          data.Title,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		SubCategory1ID: data.SubCategory1ID,
		SubCategory2ID: data.SubCategory2ID,
		City:           data.City,
		District:       data.District,
		Location:       data.Location,
		UserID:         data.UserID,
		Status:         string(data.Status),
		AdminNotes:     data.AdminNotes,
		ApprovedAt:     data.ApprovedAt,
		Images:         images,
	}
}
