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
	mockUC "souq/internal/mocks/usecase"
	"souq/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	service      usecase.RequestUsecase
	requestRepo  *mockRepo.MockRequestRepository
	categoryRepo *mockRepo.MockCategoryRepository
	storeRepo    *mockRepo.MockStoreCategoryRepository
	userRepo     *mockRepo.MockUserRepository
	storage      *mockSvc.MockFileStorage
	notifier     *mockUC.MockNotifier
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	requestRepo := mockRepo.NewMockRequestRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	storeRepo := mockRepo.NewMockStoreCategoryRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	storage := mockSvc.NewMockFileStorage(t)
	notifier := mockUC.NewMockNotifier(t)

	service := NewRequestService(RequestServiceParams{
		RequestRepo:       requestRepo,
		CategoryRepo:      categoryRepo,
		StoreCategoryRepo: storeRepo,
		UserRepo:          userRepo,
		Storage:           storage,
		Notifier:          notifier,
		Logger:            testLogger(),
	})

	return &requestFixture{
		service:      service,
		requestRepo:  requestRepo,
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
		userRepo:     userRepo,
		storage:      storage,
		notifier:     notifier,
	}
}

func TestRequestService_CreateRequest_CategoryOnly(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3)).
		Return(&entity.Category{ID: 3, Name: "Electronics"}, nil)
	f.requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Request")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Request).ID = 10 }).
		Return(nil)

	request, err := f.service.CreateRequest(ctx, 42, usecase.CreateRequestInput{
		Title:       "Need 20 laptops",
		Description: "Bulk order for an office",
		CategoryID:  3,
		City:        "Baghdad",
		District:    "Karrada",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), request.ID)
	assert.Equal(t, int64(42), request.UserID)
	assert.Equal(t, entity.RequestStatusPending, request.Status)
	assert.Nil(t, request.ApprovedAt)
}

func TestRequestService_CreateRequest_WithImages(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3)).
		Return(&entity.Category{ID: 3}, nil)
	f.storage.On("Save", mock.Anything, "a.jpg", int64(4), mock.Anything).Return("k1.jpg", nil)
	f.storage.On("Save", mock.Anything, "b.png", int64(4), mock.Anything).Return("k2.png", nil)
	f.requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Request")).Return(nil)

	request, err := f.service.CreateRequest(ctx, 42, usecase.CreateRequestInput{
		Title:       "Need 20 laptops",
		Description: "Bulk order",
		CategoryID:  3,
		City:        "Baghdad",
		District:    "Karrada",
		Images: []usecase.ImageUpload{
			{Filename: "a.jpg", Size: 4, Payload: strings.NewReader("aaaa")},
			{Filename: "b.png", Size: 4, Payload: strings.NewReader("bbbb")},
		},
	})
	require.NoError(t, err)
	require.Len(t, request.Images, 2)
	assert.Equal(t, "k1.jpg", request.Images[0].ImagePath)
	assert.Equal(t, "k2.png", request.Images[1].ImagePath)
}

func TestRequestService_CreateRequest_TooManyImages(t *testing.T) {
	f := newRequestFixture(t)

	images := make([]usecase.ImageUpload, 4)
	for i := range images {
		images[i] = usecase.ImageUpload{Filename: "a.jpg", Size: 1, Payload: strings.NewReader("a")}
	}

	_, err := f.service.CreateRequest(context.Background(), 42, usecase.CreateRequestInput{
		Title:       "Need 20 laptops",
		Description: "Bulk order",
		CategoryID:  3,
		City:        "Baghdad",
		District:    "Karrada",
		Images:      images,
	})
	assert.ErrorIs(t, err, domainerrors.ErrTooManyImages)
}

func TestRequestService_CreateRequest_ChainMismatch(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	subCategory1ID := int64(5)

	f.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3)).
		Return(&entity.Category{ID: 3}, nil)
	f.categoryRepo.On("FindSubCategory1ByID", mock.Anything, subCategory1ID).
		Return(&entity.SubCategory1{ID: 5, CategoryID: 99}, nil)

	_, err := f.service.CreateRequest(ctx, 42, usecase.CreateRequestInput{
		Title:          "Need 20 laptops",
		Description:    "Bulk order",
		CategoryID:     3,
		SubCategory1ID: &subCategory1ID,
		City:           "Baghdad",
		District:       "Karrada",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCategoryChain)
}

func TestRequestService_CreateRequest_LeafWithoutParent(t *testing.T) {
	f := newRequestFixture(t)
	subCategory2ID := int64(12)

	f.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3)).
		Return(&entity.Category{ID: 3}, nil)

	_, err := f.service.CreateRequest(context.Background(), 42, usecase.CreateRequestInput{
		Title:          "Need 20 laptops",
		Description:    "Bulk order",
		CategoryID:     3,
		SubCategory2ID: &subCategory2ID,
		City:           "Baghdad",
		District:       "Karrada",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCategoryChain)
}

func TestRequestService_CreateRequest_CleansUpImagesOnFailure(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3)).
		Return(&entity.Category{ID: 3}, nil)
	f.storage.On("Save", mock.Anything, "a.jpg", int64(4), mock.Anything).Return("k1.jpg", nil)
	f.requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Request")).
		Return(domainerrors.NewDatabaseExecuteError(assert.AnError, "insert failed"))
	f.storage.On("Remove", mock.Anything, "k1.jpg").Return(nil)

	_, err := f.service.CreateRequest(ctx, 42, usecase.CreateRequestInput{
		Title:       "Need 20 laptops",
		Description: "Bulk order",
		CategoryID:  3,
		City:        "Baghdad",
		District:    "Karrada",
		Images: []usecase.ImageUpload{
			{Filename: "a.jpg", Size: 4, Payload: strings.NewReader("aaaa")},
		},
	})
	assert.Error(t, err)
}

func TestRequestService_Review_ApprovalDispatchesOnce(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	owner := &entity.User{ID: 42, PhoneNumber: "+9647701234567", FirstName: "Sara", LastName: "Hadi"}
	pending := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusPending, CategoryID: 3, User: owner}

	sellerA := &entity.User{ID: 1, PhoneNumber: "+9647700000001", Role: entity.RoleSeller, StoreName: "A"}
	sellerB := &entity.User{ID: 2, PhoneNumber: "+9647700000002", Role: entity.RoleSeller, StoreName: "B"}
	phoneless := &entity.User{ID: 3, Role: entity.RoleSeller, StoreName: "C"}

	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(pending, nil)
	f.requestRepo.On("UpdateStatus", mock.Anything, pending).Return(nil)
	f.notifier.On("NotifyUserApproval", mock.Anything, owner, pending).Return(true)
	f.storeRepo.On("FindRelevantSellers", mock.Anything, pending).
		Return([]*entity.User{sellerA, sellerB, phoneless}, nil)
	f.notifier.On("NotifyStoreMatch", mock.Anything, sellerA, pending).Return(true)
	f.notifier.On("NotifyStoreMatch", mock.Anything, sellerB, pending).Return(true)
	f.notifier.On("NotifyStoreMatch", mock.Anything, phoneless, pending).Return(false)

	output, err := f.service.Review(ctx, 10, usecase.ReviewRequestInput{Status: entity.RequestStatusApproved})
	require.NoError(t, err)
	assert.False(t, output.AlreadyReviewed)
	assert.Equal(t, 2, output.SellersNotified)
	assert.Equal(t, entity.RequestStatusApproved, output.Request.Status)
	require.NotNil(t, output.Request.ApprovedAt)

	f.notifier.AssertNumberOfCalls(t, "NotifyStoreMatch", 3)
	f.notifier.AssertNumberOfCalls(t, "NotifyUserApproval", 1)
}

func TestRequestService_Review_SecondDecisionIsNoOp(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	approved := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusApproved}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(approved, nil)

	output, err := f.service.Review(ctx, 10, usecase.ReviewRequestInput{Status: entity.RequestStatusApproved})
	require.NoError(t, err)
	assert.True(t, output.AlreadyReviewed)
	assert.Zero(t, output.SellersNotified)

	// No UpdateStatus, no dispatch.
	f.requestRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyUserApproval", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyStoreMatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Review_LostTransitionRaceIsNoOp(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	// The row is still pending when we read it, but a concurrent review
	// claims the transition before our update lands.
	pending := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusPending}
	approved := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusApproved}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(pending, nil).Once()
	f.requestRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*entity.Request")).
		Return(repository.ErrRequestAlreadyReviewed)
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(approved, nil).Once()

	output, err := f.service.Review(ctx, 10, usecase.ReviewRequestInput{Status: entity.RequestStatusApproved})
	require.NoError(t, err)
	assert.True(t, output.AlreadyReviewed)
	assert.Zero(t, output.SellersNotified)

	f.notifier.AssertNotCalled(t, "NotifyUserApproval", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyStoreMatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Review_RejectionSkipsDispatch(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	pending := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusPending}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(pending, nil)
	f.requestRepo.On("UpdateStatus", mock.Anything, pending).Return(nil)

	output, err := f.service.Review(ctx, 10, usecase.ReviewRequestInput{
		Status:     entity.RequestStatusRejected,
		AdminNotes: "not specific enough",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, output.Request.Status)
	assert.Nil(t, output.Request.ApprovedAt)
	assert.Equal(t, "not specific enough", output.Request.AdminNotes)

	f.notifier.AssertNotCalled(t, "NotifyStoreMatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Review_RejectsNonTerminalDecision(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.service.Review(context.Background(), 10, usecase.ReviewRequestInput{
		Status: entity.RequestStatusPending,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestRequestService_Review_NotFound(t *testing.T) {
	f := newRequestFixture(t)

	f.requestRepo.On("FindByID", mock.Anything, int64(99)).
		Return(nil, repository.ErrRequestNotFound)

	_, err := f.service.Review(context.Background(), 99, usecase.ReviewRequestInput{
		Status: entity.RequestStatusApproved,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}

func TestRequestService_ListApproved_ForcesStatus(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.requestRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.RequestFilter) bool {
		return filter.Status != nil && *filter.Status == entity.RequestStatusApproved
	})).Return([]*entity.Request{{ID: 10}}, int64(1), nil)

	page, err := f.service.ListApproved(ctx, usecase.ListRequestsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestRequestService_ListMine_ScopesToUser(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.requestRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.RequestFilter) bool {
		return filter.UserID != nil && *filter.UserID == int64(42)
	})).Return([]*entity.Request{}, int64(0), nil)

	_, err := f.service.ListMine(ctx, 42, usecase.ListRequestsInput{})
	require.NoError(t, err)
}

func TestRequestService_GetRequest_HidesPendingFromStrangers(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	pending := &entity.Request{ID: 10, UserID: 42, Status: entity.RequestStatusPending}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(pending, nil)

	_, err := f.service.GetRequest(ctx, 10, nil)
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)

	_, err = f.service.GetRequest(ctx, 10, &entity.AuthSession{UserID: 7})
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)

	owner, err := f.service.GetRequest(ctx, 10, &entity.AuthSession{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(10), owner.ID)

	admin, err := f.service.GetRequest(ctx, 10, &entity.AuthSession{UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(10), admin.ID)
}

func TestRequestService_DeleteRequest_OwnerOnly(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	request := &entity.Request{ID: 10, UserID: 42}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(request, nil)

	stranger := &entity.AuthSession{UserID: 7}
	err := f.service.DeleteRequest(ctx, 10, stranger)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRequestService_DeleteRequest_AdminRemovesImages(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	request := &entity.Request{
		ID:     10,
		UserID: 42,
		Images: []*entity.RequestImage{{ImagePath: "k1.jpg"}},
	}
	f.requestRepo.On("FindByID", mock.Anything, int64(10)).Return(request, nil)
	f.requestRepo.On("Delete", mock.Anything, int64(10)).Return(nil)
	f.storage.On("Remove", mock.Anything, "k1.jpg").Return(nil)

	admin := &entity.AuthSession{UserID: 1, IsAdmin: true}
	require.NoError(t, f.service.DeleteRequest(ctx, 10, admin))
}
