package usecase

import (
	"context"
	"time"

	"souq/internal/domain/entity"
)

// --- Input DTOs ---

// UpdateProfileInput defines the mutable profile fields. The phone number and
// role are fixed at registration and cannot be changed here.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	City        string
	District    string
	Location    string
	Email       string

	// Seller-only fields, ignored for buyers.
	StoreName        string
	StoreDescription string
	WebsiteURL1      string
	WebsiteURL2      string
	WebsiteURL3      string
}

// --- Output DTOs ---

// ProfileOutput bundles a user with their specialty edges.
type ProfileOutput struct {
	User            *entity.User            `json:"user"`
	StoreCategories []*entity.StoreCategory `json:"storeCategories"`
}

// ProfileUsecase defines account-profile operations for the logged-in user.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*entity.User, error)

	// UploadProfileImage stores a new profile image and records its path.
	UploadProfileImage(ctx context.Context, userID int64, image ImageUpload) (*entity.User, error)

	// AddStoreCategory declares one more specialty edge for a seller.
	AddStoreCategory(ctx context.Context, userID int64, selection StoreCategorySelection) (*entity.StoreCategory, error)

	// RemoveStoreCategory drops one of the caller's specialty edges.
	RemoveStoreCategory(ctx context.Context, userID int64, storeCategoryID int64) error
}
