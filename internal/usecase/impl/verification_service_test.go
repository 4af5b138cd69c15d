package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"souq/config"
	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/infra/session"
	mockRepo "souq/internal/mocks/repository"
	mockUC "souq/internal/mocks/usecase"
	"souq/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App = &config.AppConfig{
		BaseURL:            "https://souq.example",
		DefaultCountryCode: "+964",
		AdminPhones:        []string{"+9647709999999"},
	}
	cfg.Session = &config.SessionConfig{IdleTimeout: time.Minute}
	cfg.Verification = &config.VerificationConfig{MaxAttempts: 3}
	cfg.Messaging = &config.MessagingConfig{}
	cfg.Uploads = &config.UploadsConfig{}

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type verificationFixture struct {
	service   usecase.VerificationUsecase
	sessions  *session.MemoryStore
	userRepo  *mockRepo.MockUserRepository
	storeRepo *mockRepo.MockStoreCategoryRepository
	notifier  *mockUC.MockNotifier
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()

	sessions := session.NewMemoryStore()
	t.Cleanup(func() { sessions.Close() })

	userRepo := mockRepo.NewMockUserRepository(t)
	storeRepo := mockRepo.NewMockStoreCategoryRepository(t)
	notifier := mockUC.NewMockNotifier(t)

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			Users:           userRepo,
			StoreCategories: storeRepo,
		},
	}

	service := NewVerificationService(VerificationServiceParams{
		Sessions:  sessions,
		TxManager: txManager,
		UserRepo:  userRepo,
		Notifier:  notifier,
		Config:    testConfig(),
		Logger:    testLogger(),
	})

	return &verificationFixture{
		service:   service,
		sessions:  sessions,
		userRepo:  userRepo,
		storeRepo: storeRepo,
		notifier:  notifier,
	}
}

// captureCode wires the notifier expectation and records the code it was
// handed, so tests can submit the real generated value.
func (f *verificationFixture) captureCode(phone string, code *string) {
	f.notifier.On("SendVerificationCode", mock.Anything, phone, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { *code = args.String(2) }).
		Return(true)
}

func TestVerificationService_StartLogin_NormalizesLocalNumber(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	output, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "07701234567"})
	require.NoError(t, err)
	assert.Equal(t, "+9647701234567", output.PhoneNumber)
	assert.Equal(t, entity.FlowNewUserRegistration, output.Flow)
	assert.Len(t, code, 4)
}

func TestVerificationService_StartLogin_HonorsSubmittedCountryCode(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+971501234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+971501234567", &code)

	output, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{
		PhoneNumber: "0501234567",
		CountryCode: "971",
	})
	require.NoError(t, err)
	assert.Equal(t, "+971501234567", output.PhoneNumber)
}

func TestVerificationService_StartLogin_ExistingAccountGetsLoginFlow(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(&entity.User{ID: 1, PhoneNumber: "+9647701234567"}, nil)

	var code string
	f.captureCode("+9647701234567", &code)

	output, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)
	assert.Equal(t, entity.FlowExistingUserLogin, output.Flow)
}

func TestVerificationService_StartLogin_RejectsGarbage(t *testing.T) {
	f := newVerificationFixture(t)

	_, err := f.service.StartLogin(context.Background(), "sess-1", usecase.StartLoginInput{PhoneNumber: "not a phone"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVerificationService_SubmitCode_LogsInExistingUser(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: 42, PhoneNumber: "+9647701234567", FirstName: "Sara", LastName: "Hadi", Role: entity.RoleBuyer}

	f.userRepo.On("FindByPhoneNumber", mock.Anything, user.PhoneNumber).Return(user, nil)

	var code string
	f.captureCode(user.PhoneNumber, &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: user.PhoneNumber})
	require.NoError(t, err)

	output, err := f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)
	assert.True(t, output.LoggedIn)
	require.NotNil(t, output.User)
	assert.Equal(t, int64(42), output.User.ID)

	auth, err := f.service.CurrentSession(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, int64(42), auth.UserID)
	assert.False(t, auth.IsAdmin)
}

func TestVerificationService_SubmitCode_AdminPhoneGetsAdminSession(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: 9, PhoneNumber: "+9647709999999", FirstName: "Omar", LastName: "Ali", Role: entity.RoleBuyer}

	f.userRepo.On("FindByPhoneNumber", mock.Anything, user.PhoneNumber).Return(user, nil)

	var code string
	f.captureCode(user.PhoneNumber, &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: user.PhoneNumber})
	require.NoError(t, err)

	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	auth, err := f.service.CurrentSession(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.True(t, auth.IsAdmin)
}

func TestVerificationService_SubmitCode_IsSessionScoped(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)

	// The code belongs to sess-1; another session cannot spend it.
	_, err = f.service.SubmitCode(ctx, "sess-2", usecase.SubmitCodeInput{Code: code})
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpiredOrUnverified)
}

func TestVerificationService_SubmitCode_ConsumedOnce(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: 42, PhoneNumber: "+9647701234567", Role: entity.RoleBuyer}

	f.userRepo.On("FindByPhoneNumber", mock.Anything, user.PhoneNumber).Return(user, nil)

	var code string
	f.captureCode(user.PhoneNumber, &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: user.PhoneNumber})
	require.NoError(t, err)

	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	// A successful submit consumes the code and clears the verification state.
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpiredOrUnverified)
}

func TestVerificationService_SubmitCode_WrongCodeThenRight(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: 42, PhoneNumber: "+9647701234567", Role: entity.RoleBuyer}

	f.userRepo.On("FindByPhoneNumber", mock.Anything, user.PhoneNumber).Return(user, nil)

	var code string
	f.captureCode(user.PhoneNumber, &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: user.PhoneNumber})
	require.NoError(t, err)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}

	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: wrong})
	assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)

	// The session survives a wrong guess under the attempt cap.
	output, err := f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)
	assert.True(t, output.LoggedIn)
}

func TestVerificationService_SubmitCode_AttemptCapBurnsSession(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}

	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: wrong})
	assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: wrong})
	assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: wrong})
	assert.ErrorIs(t, err, domainerrors.ErrTooManyAttempts)

	// The burned session rejects even the right code.
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpiredOrUnverified)
}

func TestVerificationService_ResendCode_ReplacesCodeInPlace(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)
	first := code

	output, err := f.service.ResendCode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "+9647701234567", output.PhoneNumber)
	assert.Equal(t, entity.FlowNewUserRegistration, output.Flow)

	if first != code {
		// The stale code is dead after a resend.
		_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: first})
		assert.ErrorIs(t, err, domainerrors.ErrCodeMismatch)
	}

	// The fresh code verifies the phone on the registration flow.
	result, err := f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.Equal(t, entity.FlowNewUserRegistration, result.Flow)
}

func TestVerificationService_ResendCode_WithoutSession(t *testing.T) {
	f := newVerificationFixture(t)

	_, err := f.service.ResendCode(context.Background(), "sess-unknown")
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpiredOrUnverified)
}

func TestVerificationService_CompleteRegistration_CreatesSellerWithStoreCategories(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 7 }).
		Return(nil)
	f.storeRepo.On("CreateStoreCategory", mock.Anything, mock.AnythingOfType("*entity.StoreCategory")).
		Return(nil).
		Twice()

	categoryID := int64(3)
	subCategory2ID := int64(12)

	output, err := f.service.CompleteRegistration(ctx, "sess-1", usecase.CompleteRegistrationInput{
		FirstName: "Sara",
		LastName:  "Hadi",
		Role:      entity.RoleSeller,
		StoreName: "Sara Electronics",
		StoreCategories: []usecase.StoreCategorySelection{
			{CategoryID: &categoryID},
			{SubCategory2ID: &subCategory2ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), output.User.ID)
	assert.Equal(t, "+9647701234567", output.User.PhoneNumber)
	assert.True(t, output.User.IsPhoneVerified)

	auth, err := f.service.CurrentSession(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, int64(7), auth.UserID)
	assert.Equal(t, "Sara Electronics", auth.DisplayName)
	assert.Equal(t, entity.RoleSeller, auth.Role)
}

func TestVerificationService_CompleteRegistration_RequiresVerifiedPhone(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)

	// The code was never submitted, so the phone is unverified.
	_, err = f.service.CompleteRegistration(ctx, "sess-1", usecase.CompleteRegistrationInput{
		FirstName: "Sara",
		LastName:  "Hadi",
		Role:      entity.RoleBuyer,
	})
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpiredOrUnverified)
}

func TestVerificationService_CompleteRegistration_RejectsAmbiguousStoreCategory(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	categoryID := int64(3)
	subCategory1ID := int64(5)

	_, err = f.service.CompleteRegistration(ctx, "sess-1", usecase.CompleteRegistrationInput{
		FirstName: "Sara",
		LastName:  "Hadi",
		Role:      entity.RoleSeller,
		StoreName: "Sara Electronics",
		StoreCategories: []usecase.StoreCategorySelection{
			{CategoryID: &categoryID, SubCategory1ID: &subCategory1ID},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVerificationService_CompleteRegistration_RejectsTakenEmail(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByPhoneNumber", mock.Anything, "+9647701234567").
		Return(nil, repository.ErrUserNotFound)

	var code string
	f.captureCode("+9647701234567", &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: "+9647701234567"})
	require.NoError(t, err)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	f.userRepo.On("ExistsByEmail", mock.Anything, "sara@example.com").Return(true, nil)

	_, err = f.service.CompleteRegistration(ctx, "sess-1", usecase.CompleteRegistrationInput{
		FirstName: "Sara",
		LastName:  "Hadi",
		Email:     "sara@example.com",
		Role:      entity.RoleBuyer,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateIdentity)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerificationService_Logout_ClearsEverything(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: 42, PhoneNumber: "+9647701234567", Role: entity.RoleBuyer}

	f.userRepo.On("FindByPhoneNumber", mock.Anything, user.PhoneNumber).Return(user, nil)

	var code string
	f.captureCode(user.PhoneNumber, &code)

	_, err := f.service.StartLogin(ctx, "sess-1", usecase.StartLoginInput{PhoneNumber: user.PhoneNumber})
	require.NoError(t, err)
	_, err = f.service.SubmitCode(ctx, "sess-1", usecase.SubmitCodeInput{Code: code})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, "sess-1"))

	auth, err := f.service.CurrentSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestVerificationService_CurrentSession_UnknownIsNil(t *testing.T) {
	f := newVerificationFixture(t)

	auth, err := f.service.CurrentSession(context.Background(), "sess-unknown")
	require.NoError(t, err)
	assert.Nil(t, auth)
}
