package messaging

import (
	"context"
	"log/slog"
)

// logChannel writes outbound messages to the logger instead of sending them.
// It stands in for the real gateway in development and tests.
type logChannel struct {
	logger *slog.Logger
}

// NewLogChannel creates a log-only message channel.
func NewLogChannel(logger *slog.Logger) *logChannel {
	return &logChannel{logger: logger}
}

func (c *logChannel) Send(_ context.Context, phoneNumber string, text string) error {
	c.logger.Info("[LogChannel] outbound message",
		slog.String("to", phoneNumber),
		slog.String("text", text),
	)

	return nil
}
