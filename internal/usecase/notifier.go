package usecase

import (
	"context"

	"souq/internal/domain/entity"
)

// Notifier renders and dispatches the outbound message templates. Sends are
// best effort with at-least-once intent: each method reports whether the
// message was handed to the channel, and a failure never propagates as an
// error to the triggering operation.
type Notifier interface {
	// SendVerificationCode delivers a one-time code to a phone number.
	SendVerificationCode(ctx context.Context, phoneNumber string, code string) bool

	// NotifyStoreMatch tells one seller about an approved request that
	// intersects their specialties.
	NotifyStoreMatch(ctx context.Context, seller *entity.User, request *entity.Request) bool

	// NotifyUserApproval tells the request owner their request went live.
	NotifyUserApproval(ctx context.Context, owner *entity.User, request *entity.Request) bool
}
