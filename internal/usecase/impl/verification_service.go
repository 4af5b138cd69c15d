package impl

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"

	"souq/config"
	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	verifyKeyPrefix = "verify:"
	authKeyPrefix   = "auth:"

	codeDigits = 4
)

// normalizedPhonePattern is the accepted shape after normalization.
var normalizedPhonePattern = regexp.MustCompile(`^\+[0-9]{7,15}$`)

type verificationService struct {
	sessions  service.SessionStore
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	notifier  usecase.Notifier
	config    *config.Config
	logger    *slog.Logger
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	Sessions  service.SessionStore
	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Notifier  usecase.Notifier
	Config    *config.Config
	Logger    *slog.Logger
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	return &verificationService{
		sessions:  params.Sessions,
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		notifier:  params.Notifier,
		config:    params.Config,
		logger:    params.Logger,
	}
}

// StartLogin normalizes the phone, picks the flow by account existence and
// sends a fresh code. Any verification state already held by this session is
// replaced wholesale, so a visitor restarting with a new number never keeps
// the old number's code.
func (s *verificationService) StartLogin(ctx context.Context, sessionID string, input usecase.StartLoginInput) (*usecase.StartLoginOutput, error) {
	phone, err := s.normalizePhone(input.PhoneNumber, input.CountryCode)
	if err != nil {
		return nil, err
	}

	flow := entity.FlowNewUserRegistration
	if _, err := s.userRepo.FindByPhoneNumber(ctx, phone); err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to look up account by phone")
		}
	} else {
		flow = entity.FlowExistingUserLogin
	}

	code, err := generateCode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	state := &entity.VerificationSession{
		PhoneNumber: phone,
		Code:        code,
		Flow:        flow,
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode verification state")
	}

	if err := s.sessions.Set(ctx, verifyKeyPrefix+sessionID, payload, s.config.Session.IdleTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to store verification state")
	}

	if !s.notifier.SendVerificationCode(ctx, phone, code) {
		s.logger.Warn("Verification code was not delivered",
			slog.String("phone", phone),
		)
	}

	return &usecase.StartLoginOutput{Flow: flow, PhoneNumber: phone}, nil
}

// SubmitCode runs the compare-then-clear step as one atomic update on the
// session key. A correct code is consumed inside the critical section, so the
// same code can never be accepted twice even under concurrent submissions.
func (s *verificationService) SubmitCode(ctx context.Context, sessionID string, input usecase.SubmitCodeInput) (*usecase.SubmitCodeOutput, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("verification code is required")
	}

	var state entity.VerificationSession
	var stateErr error

	err := s.sessions.Update(ctx, verifyKeyPrefix+sessionID, s.config.Session.IdleTimeout, func(current []byte) ([]byte, error) {
		stateErr = nil
		if current == nil {
			return nil, domainerrors.ErrSessionExpiredOrUnverified
		}
		if err := json.Unmarshal(current, &state); err != nil {
			return nil, errors.Wrap(err, "failed to decode verification state")
		}
		if state.Code == "" {
			return nil, domainerrors.ErrSessionExpiredOrUnverified
		}

		if state.Code != code {
			state.Attempts++
			if state.Attempts >= s.config.Verification.MaxAttempts {
				// Burn the whole session; the visitor has to start over.
				stateErr = domainerrors.ErrTooManyAttempts

				return nil, nil
			}
			stateErr = domainerrors.ErrCodeMismatch

			return json.Marshal(&state)
		}

		state.Code = ""
		state.Attempts = 0
		state.PhoneVerified = true

		return json.Marshal(&state)
	})
	if err != nil {
		return nil, err
	}
	if stateErr != nil {
		return nil, stateErr
	}

	if state.Flow == entity.FlowNewUserRegistration {
		return &usecase.SubmitCodeOutput{Flow: state.Flow}, nil
	}

	user, err := s.userRepo.FindByPhoneNumber(ctx, state.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrSessionExpiredOrUnverified.WrapMessage("account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account by phone")
	}

	if err := s.logIn(ctx, sessionID, user); err != nil {
		return nil, err
	}

	return &usecase.SubmitCodeOutput{Flow: state.Flow, LoggedIn: true, User: user}, nil
}

// CompleteRegistration creates the account for a verified registration
// session, together with a seller's specialty edges, in one transaction.
func (s *verificationService) CompleteRegistration(ctx context.Context, sessionID string, input usecase.CompleteRegistrationInput) (*usecase.CompleteRegistrationOutput, error) {
	raw, err := s.sessions.Get(ctx, verifyKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionExpiredOrUnverified
		}

		return nil, errors.Wrap(err, "failed to load verification state")
	}

	var state entity.VerificationSession
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrap(err, "failed to decode verification state")
	}
	if state.Flow != entity.FlowNewUserRegistration || !state.PhoneVerified {
		return nil, domainerrors.ErrSessionExpiredOrUnverified
	}

	if err := validateRegistration(&input); err != nil {
		return nil, err
	}

	// Pre-check for a field-scoped message; the unique constraint on
	// users.email remains the source of truth under concurrent signups.
	if input.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check email uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
	}

	user := &entity.User{
		PhoneNumber:      state.PhoneNumber,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		City:             input.City,
		District:         input.District,
		Location:         input.Location,
		Email:            input.Email,
		Role:             input.Role,
		IsPhoneVerified:  true,
		StoreName:        input.StoreName,
		StoreDescription: input.StoreDescription,
		WebsiteURL1:      input.WebsiteURL1,
		WebsiteURL2:      input.WebsiteURL2,
		WebsiteURL3:      input.WebsiteURL3,
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		if input.Role != entity.RoleSeller {
			return nil
		}

		for _, selection := range input.StoreCategories {
			edge := &entity.StoreCategory{
				UserID:         user.ID,
				CategoryID:     selection.CategoryID,
				SubCategory1ID: selection.SubCategory1ID,
				SubCategory2ID: selection.SubCategory2ID,
			}
			if err := repos.StoreCategoryRepo().CreateStoreCategory(ctx, edge); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.logIn(ctx, sessionID, user); err != nil {
		return nil, err
	}

	return &usecase.CompleteRegistrationOutput{User: user}, nil
}

// ResendCode replaces the session's code in place, keeping the flow and the
// phone number, and resets the attempt budget.
func (s *verificationService) ResendCode(ctx context.Context, sessionID string) (*usecase.StartLoginOutput, error) {
	code, err := generateCode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	var state entity.VerificationSession

	err = s.sessions.Update(ctx, verifyKeyPrefix+sessionID, s.config.Session.IdleTimeout, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domainerrors.ErrSessionExpiredOrUnverified
		}
		if err := json.Unmarshal(current, &state); err != nil {
			return nil, errors.Wrap(err, "failed to decode verification state")
		}
		if state.PhoneVerified {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("the phone is already verified")
		}

		state.Code = code
		state.Attempts = 0

		return json.Marshal(&state)
	})
	if err != nil {
		return nil, err
	}

	if !s.notifier.SendVerificationCode(ctx, state.PhoneNumber, code) {
		s.logger.Warn("Verification code was not delivered",
			slog.String("phone", state.PhoneNumber),
		)
	}

	return &usecase.StartLoginOutput{Flow: state.Flow, PhoneNumber: state.PhoneNumber}, nil
}

// CurrentSession returns the authenticated state for a session id, sliding
// the idle timeout forward on every hit. A missing key means logged out.
func (s *verificationService) CurrentSession(ctx context.Context, sessionID string) (*entity.AuthSession, error) {
	raw, err := s.sessions.Get(ctx, authKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load auth state")
	}

	var auth entity.AuthSession
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil, errors.Wrap(err, "failed to decode auth state")
	}

	if err := s.sessions.Set(ctx, authKeyPrefix+sessionID, raw, s.config.Session.IdleTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to refresh auth state")
	}

	return &auth, nil
}

// Logout discards both the verification and the authenticated state.
func (s *verificationService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, verifyKeyPrefix+sessionID); err != nil {
		return errors.Wrap(err, "failed to clear verification state")
	}
	if err := s.sessions.Delete(ctx, authKeyPrefix+sessionID); err != nil {
		return errors.Wrap(err, "failed to clear auth state")
	}

	return nil
}

// logIn writes the authenticated state and drops the verification state.
func (s *verificationService) logIn(ctx context.Context, sessionID string, user *entity.User) error {
	auth := &entity.AuthSession{
		UserID:      user.ID,
		DisplayName: user.DisplayName(),
		Role:        user.Role,
		IsAdmin:     s.isAdminPhone(user.PhoneNumber),
	}
	payload, err := json.Marshal(auth)
	if err != nil {
		return errors.Wrap(err, "failed to encode auth state")
	}

	if err := s.sessions.Set(ctx, authKeyPrefix+sessionID, payload, s.config.Session.IdleTimeout); err != nil {
		return errors.Wrap(err, "failed to store auth state")
	}

	return s.sessions.Delete(ctx, verifyKeyPrefix+sessionID)
}

func (s *verificationService) isAdminPhone(phone string) bool {
	for _, admin := range s.config.App.AdminPhones {
		if admin == phone {
			return true
		}
	}

	return false
}

// normalizePhone brings a submitted phone number to E.164. A locally written
// number keeps only its significant digits and gains the given country code,
// falling back to the configured default, so "07701234567" and "7701234567"
// land on the same account.
func (s *verificationService) normalizePhone(raw, countryCode string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}

		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return "", domainerrors.ErrInvalidInput.WrapMessage("phone number is required")
	}

	prefix := strings.TrimSpace(countryCode)
	if prefix == "" {
		prefix = s.config.App.DefaultCountryCode
	} else if !strings.HasPrefix(prefix, "+") {
		prefix = "+" + prefix
	}

	var phone string
	if strings.HasPrefix(cleaned, "+") {
		phone = cleaned
	} else {
		phone = prefix + strings.TrimLeft(cleaned, "0")
	}

	if !normalizedPhonePattern.MatchString(phone) {
		return "", domainerrors.ErrInvalidInput.WrapMessage("phone number is not valid")
	}

	return phone, nil
}

// validateRegistration checks the profile fields before any write.
func validateRegistration(input *usecase.CompleteRegistrationInput) error {
	if !input.Role.Valid() {
		return domainerrors.ErrInvalidInput.WrapMessage("role must be buyer or seller")
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return domainerrors.ErrInvalidInput.WrapMessage("first and last name are required")
	}
	if input.Role == entity.RoleSeller && strings.TrimSpace(input.StoreName) == "" {
		return domainerrors.ErrInvalidInput.WrapMessage("store name is required for sellers")
	}

	for _, selection := range input.StoreCategories {
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
			return domainerrors.ErrInvalidInput.WrapMessage("each store category must pick exactly one taxonomy node")
		}
	}

	return nil
}

// generateCode draws a uniformly random fixed-length numeric code.
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	value, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, value), nil
}
