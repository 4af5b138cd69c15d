// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"souq/internal/domain/entity"
)

// --- Input DTOs ---

// StartLoginInput defines the data required to start phone verification.
type StartLoginInput struct {
	PhoneNumber string

	// CountryCode overrides the configured default prefix for locally
	// written numbers. Ignored when the number already carries one.
	CountryCode string
}

// SubmitCodeInput defines the data required to submit a verification code.
type SubmitCodeInput struct {
	Code string
}

// StoreCategorySelection is one taxonomy node a registering seller claims.
// Exactly one field must be set.
type StoreCategorySelection struct {
	CategoryID     *int64
	SubCategory1ID *int64
	SubCategory2ID *int64
}

// CompleteRegistrationInput defines the profile data submitted after the
// phone has been verified on the registration flow.
type CompleteRegistrationInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	City        string
	District    string
	Location    string
	Email       string
	Role        entity.UserRole

	// Seller-only fields, ignored for buyers.
	StoreName        string
	StoreDescription string
	WebsiteURL1      string
	WebsiteURL2      string
	WebsiteURL3      string
	StoreCategories  []StoreCategorySelection
}

// --- Output DTOs ---

// StartLoginOutput reports which flow the visitor landed on.
type StartLoginOutput struct {
	// Flow is existing-user login when the phone already has an account,
	// new-user registration otherwise.
	Flow entity.VerificationFlow `json:"flow"`

	// PhoneNumber is the normalized form the code was sent to.
	PhoneNumber string `json:"phoneNumber"`
}

// SubmitCodeOutput reports the result of a correct code submission.
type SubmitCodeOutput struct {
	Flow entity.VerificationFlow `json:"flow"`

	// LoggedIn is true on the existing-user flow, where a correct code
	// completes the login. On the registration flow the visitor still has to
	// complete their profile.
	LoggedIn bool `json:"loggedIn"`

	// User is set once the visitor is logged in.
	User *entity.User `json:"user,omitempty"`
}

// CompleteRegistrationOutput returns the newly created, logged-in user.
type CompleteRegistrationOutput struct {
	User *entity.User `json:"user"`
}

// VerificationUsecase drives the phone verification state machine. Every
// operation takes the visitor's opaque session id explicitly; all flow state
// lives in the session store under that id.
type VerificationUsecase interface {
	// StartLogin normalizes the phone, chooses the flow by account existence,
	// generates a fresh one-time code and sends it to the phone.
	StartLogin(ctx context.Context, sessionID string, input StartLoginInput) (*StartLoginOutput, error)

	// SubmitCode compares the submitted code against the session's code in a
	// single atomic step. A correct code is consumed and either logs the
	// visitor in or marks the phone verified for registration. A wrong code
	// counts against the attempt budget.
	SubmitCode(ctx context.Context, sessionID string, input SubmitCodeInput) (*SubmitCodeOutput, error)

	// CompleteRegistration creates the account for a session whose phone has
	// been verified on the registration flow, then logs the visitor in.
	CompleteRegistration(ctx context.Context, sessionID string, input CompleteRegistrationInput) (*CompleteRegistrationOutput, error)

	// ResendCode replaces the session's code with a fresh one and sends it,
	// keeping the rest of the verification state intact.
	ResendCode(ctx context.Context, sessionID string) (*StartLoginOutput, error)

	// CurrentSession returns the authenticated state for a session id, or
	// nil when the visitor is not logged in.
	CurrentSession(ctx context.Context, sessionID string) (*entity.AuthSession, error)

	// Logout discards all state held under the session id.
	Logout(ctx context.Context, sessionID string) error
}
