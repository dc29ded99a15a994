package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogDispatcher writes messages to the log instead of sending them.
// It is used when no SMTP relay is configured (local development).
type LogDispatcher struct {
	log *slog.Logger
}

// NewLogDispatcher returns a Dispatcher that only logs.
func NewLogDispatcher(log *slog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(ctx context.Context, msg Message) (Receipt, error) {
	receipt := Receipt{MessageID: uuid.NewString()}
	d.log.InfoContext(ctx, "mail not sent: no smtp relay configured",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", receipt.MessageID,
	)
	return receipt, nil
}
