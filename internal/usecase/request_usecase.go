package usecase

import (
	"context"
	"io"

	"souq/internal/domain/entity"
)

// --- Input DTOs ---

// ImageUpload is one image payload attached to a request.
type ImageUpload struct {
	Filename string
	Size     int64
	Payload  io.Reader
}

// CreateRequestInput defines the data required to post a sourcing request.
type CreateRequestInput struct {
	Title          string
	Description    string
	CategoryID     int64
	SubCategory1ID *int64
	SubCategory2ID *int64
	City           string
	District       string
	Location       string
	Images         []ImageUpload
}

// ReviewRequestInput defines an admin's lifecycle decision.
type ReviewRequestInput struct {
	Status     entity.RequestStatus
	AdminNotes string
}

// ListRequestsInput narrows a request listing.
type ListRequestsInput struct {
	Status     *entity.RequestStatus
	CategoryID *int64
	Search     string
	Page       int
	PageSize   int
}

// --- Output DTOs ---

// RequestPage is one page of a request listing.
type RequestPage struct {
	Requests []*entity.Request `json:"requests"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// ReviewRequestOutput reports the outcome of a lifecycle decision.
type ReviewRequestOutput struct {
	Request *entity.Request `json:"request"`

	// AlreadyReviewed is true when the request was in a terminal status
	// before this call; the decision was a no-op and nothing was dispatched.
	AlreadyReviewed bool `json:"alreadyReviewed"`

	// SellersNotified counts the matched sellers a message was handed to.
	SellersNotified int `json:"sellersNotified"`
}

// RequestUsecase defines sourcing-request operations, from posting through
// the admin review that triggers the seller fan-out.
type RequestUsecase interface {
	// CreateRequest validates the category chain, stores the images and
	// persists the request in pending status.
	CreateRequest(ctx context.Context, userID int64, input CreateRequestInput) (*entity.Request, error)

	// GetRequest returns one request. Requests that are not approved are
	// visible only to their owner and to admins; everyone else sees not-found.
	GetRequest(ctx context.Context, id int64, actor *entity.AuthSession) (*entity.Request, error)

	// ListApproved returns the public feed of approved requests.
	ListApproved(ctx context.Context, input ListRequestsInput) (*RequestPage, error)

	// ListAll returns requests in any status for the admin screen.
	ListAll(ctx context.Context, input ListRequestsInput) (*RequestPage, error)

	// ListMine returns the caller's own requests in any status.
	ListMine(ctx context.Context, userID int64, input ListRequestsInput) (*RequestPage, error)

	// Review applies an admin decision. Approval notifies the buyer and fans
	// out to matching sellers; reviewing an already-reviewed request is a
	// no-op that dispatches nothing.
	Review(ctx context.Context, id int64, input ReviewRequestInput) (*ReviewRequestOutput, error)

	// DeleteRequest removes a request. Non-admin callers may only delete
	// their own.
	DeleteRequest(ctx context.Context, id int64, actor *entity.AuthSession) error
}
