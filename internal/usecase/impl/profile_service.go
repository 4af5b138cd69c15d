package impl

import (
	"context"
	"log/slog"
	"strings"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	userRepo          repository.UserRepository
	storeCategoryRepo repository.StoreCategoryRepository
	storage           service.FileStorage
	logger            *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo          repository.UserRepository
	StoreCategoryRepo repository.StoreCategoryRepository
	Storage           service.FileStorage
	Logger            *slog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:          params.UserRepo,
		storeCategoryRepo: params.StoreCategoryRepo,
		storage:           params.Storage,
		logger:            params.Logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*usecase.ProfileOutput, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	output := &usecase.ProfileOutput{User: user}
	if user.Role == entity.RoleSeller {
		edges, err := s.storeCategoryRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list store categories")
		}
		output.StoreCategories = edges
	}

	return output, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, input usecase.UpdateProfileInput) (*entity.User, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("first and last name are required")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == entity.RoleSeller && strings.TrimSpace(input.StoreName) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("store name is required for sellers")
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.DateOfBirth = input.DateOfBirth
	user.Gender = input.Gender
	user.City = input.City
	user.District = input.District
	user.Location = input.Location
	user.Email = input.Email

	if user.Role == entity.RoleSeller {
		user.StoreName = input.StoreName
		user.StoreDescription = input.StoreDescription
		user.WebsiteURL1 = input.WebsiteURL1
		user.WebsiteURL2 = input.WebsiteURL2
		user.WebsiteURL3 = input.WebsiteURL3
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadProfileImage stores a new profile image and drops the previous one.
func (s *profileService) UploadProfileImage(ctx context.Context, userID int64, image usecase.ImageUpload) (*entity.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Save(ctx, image.Filename, image.Size, image.Payload)
	if err != nil {
		return nil, err
	}

	previous := user.ProfileImage
	user.ProfileImage = path

	if err := s.userRepo.Update(ctx, user); err != nil {
		if removeErr := s.storage.Remove(ctx, path); removeErr != nil {
			s.logger.Warn("Failed to remove orphaned profile image",
				slog.String("path", path),
				slog.Any("error", removeErr),
			)
		}

		return nil, err
	}

	if previous != "" {
		if err := s.storage.Remove(ctx, previous); err != nil {
			s.logger.Warn("Failed to remove replaced profile image",
				slog.String("path", previous),
				slog.Any("error", err),
			)
		}
	}

	return user, nil
}

// AddStoreCategory declares one more specialty edge for a seller.
func (s *profileService) AddStoreCategory(ctx context.Context, userID int64, selection usecase.StoreCategorySelection) (*entity.StoreCategory, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entity.RoleSeller {
		return nil, domainerrors.ErrForbidden.WrapMessage("only sellers declare store categories")
	}

	set := 0
	if selection.CategoryID != nil {
		set++
	}
	if selection.SubCategory1ID != nil {
		set++
	}
	if selection.SubCategory2ID != nil {
		set++
	}
	if set != 1 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("a store category must pick exactly one taxonomy node")
	}

	edge := &entity.StoreCategory{
		UserID:         userID,
		CategoryID:     selection.CategoryID,
		SubCategory1ID: selection.SubCategory1ID,
		SubCategory2ID: selection.SubCategory2ID,
	}
	if err := s.storeCategoryRepo.CreateStoreCategory(ctx, edge); err != nil {
		if errors.Is(err, repository.ErrDuplicateStoreCategory) {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("this store category is already declared")
		}

		return nil, err
	}

	return edge, nil
}

// RemoveStoreCategory drops one of the caller's specialty edges.
func (s *profileService) RemoveStoreCategory(ctx context.Context, userID int64, storeCategoryID int64) error {
	edges, err := s.storeCategoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list store categories")
	}

	for _, edge := range edges {
		if edge.ID == storeCategoryID {
			return s.storeCategoryRepo.DeleteStoreCategory(ctx, storeCategoryID)
		}
	}

	return domainerrors.ErrNotFound
}

func (s *profileService) findUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("account does not exist")
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return user, nil
}
