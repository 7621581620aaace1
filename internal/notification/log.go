package notification

import (
	"context"
	"log/slog"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/email"
)

// LogDispatcher records notifications in the log instead of delivering them.
// It is used when no broker is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, channel Channel, msg Message) error {
	d.logger.InfoContext(ctx, "notification (not delivered)",
		"channel", channel.String(),
		"reference", msg.Reference,
		"recipient", email.Mask(msg.Recipient.Email),
		"subject", msg.Subject,
		"urgency", string(msg.Urgency),
	)
	return nil
}
