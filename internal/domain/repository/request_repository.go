package repository

import (
	"context"
	"errors"

	"souq/internal/domain/entity"
)

// ErrRequestNotFound is returned when a request does not exist.
var ErrRequestNotFound = errors.New("request not found")

// ErrRequestAlreadyReviewed is returned by UpdateStatus when the row already
// left the pending state, so the transition was not applied.
var ErrRequestAlreadyReviewed = errors.New("request already reviewed")

// RequestFilter narrows request listings.
type RequestFilter struct {
	Status     *entity.RequestStatus
	CategoryID *int64
	UserID     *int64
	Search     string
	Page       int
	PageSize   int
}

// RequestRepository defines persistence for sourcing requests and their images.
type RequestRepository interface {
	// Create persists a new request together with its image records.
	Create(ctx context.Context, request *entity.Request) error

	// FindByID retrieves a request with its images and owner preloaded.
	FindByID(ctx context.Context, id int64) (*entity.Request, error)

	// List returns requests matching the filter, newest first, plus the total
	// count for pagination.
	List(ctx context.Context, filter RequestFilter) ([]*entity.Request, int64, error)

	// UpdateStatus persists a lifecycle transition (status, approval time,
	// admin notes) without touching the request body. The update applies only
	// while the row is still pending; a row that already reached a terminal
	// status yields ErrRequestAlreadyReviewed.
	UpdateStatus(ctx context.Context, request *entity.Request) error

	// Delete removes a request; its images are cascade-deleted with it.
	Delete(ctx context.Context, id int64) error
}
