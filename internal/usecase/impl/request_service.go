package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxRequestImages = 3

type requestService struct {
	requestRepo       repository.RequestRepository
	categoryRepo      repository.CategoryRepository
	storeCategoryRepo repository.StoreCategoryRepository
	userRepo          repository.UserRepository
	storage           service.FileStorage
	notifier          usecase.Notifier
	logger            *slog.Logger
}

// RequestServiceParams holds dependencies for RequestService, injected by Fx.
type RequestServiceParams struct {
	fx.In

	RequestRepo       repository.RequestRepository
	CategoryRepo      repository.CategoryRepository
	StoreCategoryRepo repository.StoreCategoryRepository
	UserRepo          repository.UserRepository
	Storage           service.FileStorage
	Notifier          usecase.Notifier
	Logger            *slog.Logger
}

// NewRequestService creates a new request service instance
func NewRequestService(params RequestServiceParams) usecase.RequestUsecase {
	return &requestService{
		requestRepo:       params.RequestRepo,
		categoryRepo:      params.CategoryRepo,
		storeCategoryRepo: params.StoreCategoryRepo,
		userRepo:          params.UserRepo,
		storage:           params.Storage,
		notifier:          params.Notifier,
		logger:            params.Logger,
	}
}

// CreateRequest validates the category chain, stores the images and persists
// the request in pending status. Images that made it to storage are removed
// again if the database write fails.
func (s *requestService) CreateRequest(ctx context.Context, userID int64, input usecase.CreateRequestInput) (*entity.Request, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("title and description are required")
	}
	if strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.District) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("city and district are required")
	}
	if len(input.Images) > maxRequestImages {
		return nil, domainerrors.ErrTooManyImages
	}

	if err := s.validateCategoryChain(ctx, input.CategoryID, input.SubCategory1ID, input.SubCategory2ID); err != nil {
		return nil, err
	}

	stored := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		path, err := s.storage.Save(ctx, image.Filename, image.Size, image.Payload)
		if err != nil {
			s.removeStored(ctx, stored)

			return nil, err
		}
		stored = append(stored, path)
	}

	request := &entity.Request{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		SubCategory1ID: input.SubCategory1ID,
		SubCategory2ID: input.SubCategory2ID,
		City:           input.City,
		District:       input.District,
		Location:       input.Location,
		UserID:         userID,
		Status:         entity.RequestStatusPending,
	}
	for _, path := range stored {
		request.Images = append(request.Images, &entity.RequestImage{ImagePath: path})
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.removeStored(ctx, stored)

		return nil, err
	}

	return request, nil
}

// GetRequest returns one request, hiding unapproved ones from everyone but
// their owner and admins.
func (s *requestService) GetRequest(ctx context.Context, id int64, actor *entity.AuthSession) (*entity.Request, error) {
	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status != entity.RequestStatusApproved {
		if actor == nil || (!actor.IsAdmin && actor.UserID != request.UserID) {
			return nil, domainerrors.ErrRequestNotFound
		}
	}

	return request, nil
}

func (s *requestService) find(ctx context.Context, id int64) (*entity.Request, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to load request")
	}

	return request, nil
}

// ListApproved returns the public feed of approved requests.
func (s *requestService) ListApproved(ctx context.Context, input usecase.ListRequestsInput) (*usecase.RequestPage, error) {
	approved := entity.RequestStatusApproved
	input.Status = &approved

	return s.list(ctx, input, nil)
}

// ListAll returns requests in any status for the admin screen.
func (s *requestService) ListAll(ctx context.Context, input usecase.ListRequestsInput) (*usecase.RequestPage, error) {
	return s.list(ctx, input, nil)
}

// ListMine returns the caller's own requests in any status.
func (s *requestService) ListMine(ctx context.Context, userID int64, input usecase.ListRequestsInput) (*usecase.RequestPage, error) {
	return s.list(ctx, input, &userID)
}

func (s *requestService) list(ctx context.Context, input usecase.ListRequestsInput, userID *int64) (*usecase.RequestPage, error) {
	filter := repository.RequestFilter{
		Status:     input.Status,
		CategoryID: input.CategoryID,
		UserID:     userID,
		Search:     input.Search,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list requests")
	}

	return &usecase.RequestPage{
		Requests: requests,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Review applies an admin decision. The status transition is persisted first
// and the fan-out runs after, so a crashed dispatch can at worst be repeated
// by hand, never lost together with the approval itself.
func (s *requestService) Review(ctx context.Context, id int64, input usecase.ReviewRequestInput) (*usecase.ReviewRequestOutput, error) {
	if !input.Status.Terminal() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("decision must be approved or rejected")
	}

	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status.Terminal() {
		return &usecase.ReviewRequestOutput{Request: request, AlreadyReviewed: true}, nil
	}

	request.Status = input.Status
	request.AdminNotes = input.AdminNotes
	if input.Status == entity.RequestStatusApproved {
		now := time.Now()
		request.ApprovedAt = &now
	}

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}
		// Another review won the transition between our read and the update.
		if errors.Is(err, repository.ErrRequestAlreadyReviewed) {
			reviewed, findErr := s.find(ctx, id)
			if findErr != nil {
				return nil, findErr
			}

			return &usecase.ReviewRequestOutput{Request: reviewed, AlreadyReviewed: true}, nil
		}

		return nil, err
	}

	output := &usecase.ReviewRequestOutput{Request: request}
	if input.Status == entity.RequestStatusApproved {
		output.SellersNotified = s.dispatchApproval(ctx, request)
	}

	return output, nil
}

// dispatchApproval notifies the owner and every matched seller. Individual
// failures are logged by the notifier and do not stop the loop.
func (s *requestService) dispatchApproval(ctx context.Context, request *entity.Request) int {
	owner := request.User
	if owner == nil {
		loaded, err := s.userRepo.FindByID(ctx, request.UserID)
		if err != nil {
			s.logger.Error("Failed to load request owner for approval notice",
				slog.Int64("request_id", request.ID),
				slog.Any("error", err),
			)
		} else {
			owner = loaded
		}
	}
	if owner != nil {
		s.notifier.NotifyUserApproval(ctx, owner, request)
	}

	sellers, err := s.storeCategoryRepo.FindRelevantSellers(ctx, request)
	if err != nil {
		s.logger.Error("Failed to match sellers for approved request",
			slog.Int64("request_id", request.ID),
			slog.Any("error", err),
		)

		return 0
	}

	notified := 0
	for _, seller := range sellers {
		if s.notifier.NotifyStoreMatch(ctx, seller, request) {
			notified++
		}
	}

	s.logger.Info("Approved request dispatched",
		slog.Int64("request_id", request.ID),
		slog.Int("sellers_matched", len(sellers)),
		slog.Int("sellers_notified", notified),
	)

	return notified
}

// DeleteRequest removes a request and its stored images. Non-admin callers
// may only delete their own.
func (s *requestService) DeleteRequest(ctx context.Context, id int64, actor *entity.AuthSession) error {
	request, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || (!actor.IsAdmin && actor.UserID != request.UserID) {
		return domainerrors.ErrForbidden
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return domainerrors.ErrRequestNotFound
		}

		return err
	}

	paths := make([]string, 0, len(request.Images))
	for _, image := range request.Images {
		paths = append(paths, image.ImagePath)
	}
	s.removeStored(ctx, paths)

	return nil
}

// validateCategoryChain checks that the selected nodes form one path in the
// taxonomy. A subcategory may only be chosen together with its parent.
func (s *requestService) validateCategoryChain(ctx context.Context, categoryID int64, sub1ID, sub2ID *int64) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to load category")
	}

	if sub2ID != nil && sub1ID == nil {
		return domainerrors.ErrInvalidCategoryChain.WrapMessage("a leaf subcategory requires its parent")
	}

	if sub1ID != nil {
		sub1, err := s.categoryRepo.FindSubCategory1ByID(ctx, *sub1ID)
		if err != nil {
			if errors.Is(err, repository.ErrSubCategory1NotFound) {
				return domainerrors.ErrInvalidCategoryChain.WrapMessage("subcategory does not exist")
			}

			return errors.Wrap(err, "failed to load subcategory1")
		}
		if sub1.CategoryID != categoryID {
			return domainerrors.ErrInvalidCategoryChain
		}

		if sub2ID != nil {
			sub2, err := s.categoryRepo.FindSubCategory2ByID(ctx, *sub2ID)
			if err != nil {
				if errors.Is(err, repository.ErrSubCategory2NotFound) {
					return domainerrors.ErrInvalidCategoryChain.WrapMessage("subcategory does not exist")
				}

				return errors.Wrap(err, "failed to load subcategory2")
			}
			if sub2.SubCategory1ID != *sub1ID {
				return domainerrors.ErrInvalidCategoryChain
			}
		}
	}

	return nil
}

// removeStored best-effort deletes stored image paths.
func (s *requestService) removeStored(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.storage.Remove(ctx, path); err != nil {
			s.logger.Warn("Failed to remove stored image",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}
}
