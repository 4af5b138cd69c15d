package messaging

import (
	"log/slog"

	"souq/config"
	"souq/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	ProviderWhatsApp = "whatsapp"
	ProviderLog      = "log"
)

// ChannelParams holds dependencies for the MessageChannel, injected by Fx.
type ChannelParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMessageChannel creates a MessageChannel based on configuration.
func NewMessageChannel(params ChannelParams) (service.MessageChannel, error) {
	cfg := params.Config.Messaging
	logger := params.Logger

	switch cfg.Provider {
	case ProviderWhatsApp:
		if cfg.APIURL == "" {
			return nil, errors.New("api url is required for whatsapp provider")
		}
		logger.Info("Using WhatsApp message channel",
			slog.String("api_url", cfg.APIURL),
		)

		return NewWhatsAppChannel(cfg.APIURL, cfg.APIKey, cfg.SendTimeout, logger), nil

	case ProviderLog, "":
		logger.Info("Using log-only message channel")

		return NewLogChannel(logger), nil

	default:
		return nil, errors.Errorf("unknown messaging provider: %s", cfg.Provider)
	}
}

// Module provides the messaging FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMessageChannel),
)
