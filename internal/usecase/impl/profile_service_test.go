package impl

import (
	"context"
	"strings"
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	mockRepo "souq/internal/mocks/repository"
	mockSvc "souq/internal/mocks/service"
	"souq/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	service   usecase.ProfileUsecase
	userRepo  *mockRepo.MockUserRepository
	storeRepo *mockRepo.MockStoreCategoryRepository
	storage   *mockSvc.MockFileStorage
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	userRepo := mockRepo.NewMockUserRepository(t)
	storeRepo := mockRepo.NewMockStoreCategoryRepository(t)
	storage := mockSvc.NewMockFileStorage(t)

	service := NewProfileService(ProfileServiceParams{
		UserRepo:          userRepo,
		StoreCategoryRepo: storeRepo,
		Storage:           storage,
		Logger:            testLogger(),
	})

	return &profileFixture{service: service, userRepo: userRepo, storeRepo: storeRepo, storage: storage}
}

func TestProfileService_GetProfile_SellerIncludesStoreCategories(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	categoryID := int64(3)

	f.userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(&entity.User{ID: 42, Role: entity.RoleSeller, StoreName: "Sara Electronics"}, nil)
	f.storeRepo.On("ListByUser", mock.Anything, int64(42)).
		Return([]*entity.StoreCategory{{ID: 1, UserID: 42, CategoryID: &categoryID}}, nil)

	output, err := f.service.GetProfile(ctx, 42)
	require.NoError(t, err)
	require.Len(t, output.StoreCategories, 1)
	assert.Equal(t, &categoryID, output.StoreCategories[0].CategoryID)
}

func TestProfileService_GetProfile_UnknownUser(t *testing.T) {
	f := newProfileFixture(t)

	f.userRepo.On("FindByID", mock.Anything, int64(99)).
		Return(nil, repository.ErrUserNotFound)

	_, err := f.service.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileService_UpdateProfile_BuyerIgnoresStoreFields(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(&entity.User{ID: 42, Role: entity.RoleBuyer, FirstName: "Sara", LastName: "Hadi"}, nil)
	f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := f.service.UpdateProfile(ctx, 42, usecase.UpdateProfileInput{
		FirstName: "Sara",
		LastName:  "Hadi",
		City:      "Basra",
		StoreName: "Should be ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Basra", user.City)
	assert.Empty(t, user.StoreName)
}

func TestProfileService_UploadProfileImage_ReplacesPrevious(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(&entity.User{ID: 42, ProfileImage: "old.jpg"}, nil)
	f.storage.On("Save", mock.Anything, "new.png", int64(4), mock.Anything).Return("new-key.png", nil)
	f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	f.storage.On("Remove", mock.Anything, "old.jpg").Return(nil)

	user, err := f.service.UploadProfileImage(ctx, 42, usecase.ImageUpload{
		Filename: "new.png",
		Size:     4,
		Payload:  strings.NewReader("pppp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-key.png", user.ProfileImage)
}

func TestProfileService_AddStoreCategory_BuyerForbidden(t *testing.T) {
	f := newProfileFixture(t)
	categoryID := int64(3)

	f.userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(&entity.User{ID: 42, Role: entity.RoleBuyer}, nil)

	_, err := f.service.AddStoreCategory(context.Background(), 42, usecase.StoreCategorySelection{CategoryID: &categoryID})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProfileService_AddStoreCategory_Duplicate(t *testing.T) {
	f := newProfileFixture(t)
	categoryID := int64(3)

	f.userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(&entity.User{ID: 42, Role: entity.RoleSeller, StoreName: "S"}, nil)
	f.storeRepo.On("CreateStoreCategory", mock.Anything, mock.AnythingOfType("*entity.StoreCategory")).
		Return(repository.ErrDuplicateStoreCategory)

	_, err := f.service.AddStoreCategory(context.Background(), 42, usecase.StoreCategorySelection{CategoryID: &categoryID})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestProfileService_RemoveStoreCategory_OnlyOwn(t *testing.T) {
	f := newProfileFixture(t)

	f.storeRepo.On("ListByUser", mock.Anything, int64(42)).
		Return([]*entity.StoreCategory{{ID: 1, UserID: 42}}, nil)

	err := f.service.RemoveStoreCategory(context.Background(), 42, 5)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
