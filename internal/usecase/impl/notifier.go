package impl

import (
	"context"
	"fmt"
	"log/slog"

	"souq/config"
	deliveryctx "souq/internal/delivery/context"
	"souq/internal/domain/entity"
	"souq/internal/domain/service"
	"souq/internal/usecase"

	"go.uber.org/fx"
)

type notifier struct {
	channel service.MessageChannel
	config  *config.Config
	logger  *slog.Logger
}

// NotifierParams holds dependencies for the Notifier, injected by Fx.
type NotifierParams struct {
	fx.In

	Channel service.MessageChannel
	Config  *config.Config
	Logger  *slog.Logger
}

// NewNotifier creates the message notifier.
func NewNotifier(params NotifierParams) usecase.Notifier {
	return &notifier{
		channel: params.Channel,
		config:  params.Config,
		logger:  params.Logger,
	}
}

// SendVerificationCode delivers a one-time code to a phone number.
func (n *notifier) SendVerificationCode(ctx context.Context, phoneNumber string, code string) bool {
	text := fmt.Sprintf("Your verification code is %s. Do not share it with anyone.", code)

	return n.send(ctx, phoneNumber, text, "verification_code")
}

// NotifyStoreMatch tells one seller about an approved request that intersects
// their specialties. Sellers without a phone number are skipped.
func (n *notifier) NotifyStoreMatch(ctx context.Context, seller *entity.User, request *entity.Request) bool {
	if seller.PhoneNumber == "" {
		n.logger.Debug("Skipping seller without phone number",
			slog.Int64("seller_id", seller.ID),
			slog.Int64("request_id", request.ID),
		)

		return false
	}

	text := fmt.Sprintf(
		"Hello %s, a new request matching your store was posted: \"%s\" in %s. See the details: %s",
		seller.DisplayName(), request.Title, request.City, n.requestLink(request),
	)

	return n.send(ctx, seller.PhoneNumber, text, "store_match")
}

// NotifyUserApproval tells the request owner their request went live.
func (n *notifier) NotifyUserApproval(ctx context.Context, owner *entity.User, request *entity.Request) bool {
	if owner.PhoneNumber == "" {
		return false
	}

	text := fmt.Sprintf(
		"Hello %s, your request \"%s\" has been approved and matching stores have been notified: %s",
		owner.DisplayName(), request.Title, n.requestLink(request),
	)

	return n.send(ctx, owner.PhoneNumber, text, "user_approval")
}

func (n *notifier) requestLink(request *entity.Request) string {
	return fmt.Sprintf("%s/requests/%d", n.config.App.BaseURL, request.ID)
}

// send hands one message to the channel. Failures are logged and reported as
// false so a flaky gateway never aborts the operation that triggered the send.
func (n *notifier) send(ctx context.Context, phoneNumber string, text string, kind string) bool {
	logger := deliveryctx.GetLoggerOrDefault(ctx, n.logger)
	if err := n.channel.Send(ctx, phoneNumber, text); err != nil {
		logger.Error("Failed to send message",
			slog.String("kind", kind),
			slog.String("to", phoneNumber),
			slog.Any("error", err),
		)

		return false
	}

	return true
}
