package repository

import (
	"context"
	"errors"

	"souq/internal/domain/entity"
)

// ErrDuplicateStoreCategory is returned when the (user, node) specialty edge
// already exists.
var ErrDuplicateStoreCategory = errors.New("store category already exists")

// StoreCategoryRepository defines persistence for seller specialty edges and
// the matching query that powers the notification fan-out.
type StoreCategoryRepository interface {
	// CreateStoreCategory records that a seller serves a taxonomy node.
	CreateStoreCategory(ctx context.Context, edge *entity.StoreCategory) error

	// ListByUser returns all specialty edges declared by one seller.
	ListByUser(ctx context.Context, userID int64) ([]*entity.StoreCategory, error)

	// DeleteStoreCategory removes one specialty edge.
	DeleteStoreCategory(ctx context.Context, id int64) error

	// FindRelevantSellers returns the distinct set of seller-role users whose
	// specialty edges intersect the request's category chain: an edge matches
	// when its node equals the request's category, or its subcategory1 (when
	// set), or its subcategory2 (when set). Sellers without a phone number are
	// included; filtering them is the dispatcher's concern.
	FindRelevantSellers(ctx context.Context, request *entity.Request) ([]*entity.User, error)
}
