// Package service contains the business logic for the trip planner API.
// Every write follows the same read-modify-write contract: load the whole
// document, compute a new value with a pure domain function, save the whole
// document once, then announce the change. There is no locking; if two
// requests interleave, the later save wins.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkordes/trip-planner/internal/events"
)

// notifier wraps an events.Publisher so publish failures are logged rather
// than returned; by the time we publish, the write has already succeeded.
type notifier struct {
	pub events.Publisher
	log *slog.Logger
	now func() time.Time
}

func newNotifier(pub events.Publisher, log *slog.Logger) notifier {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return notifier{pub: pub, log: log, now: time.Now}
}

func (n notifier) changed(ctx context.Context, document, operation string) {
	ev := events.DocumentChanged{Document: document, Operation: operation, At: n.now().UTC()}
	if err := n.pub.Publish(ctx, ev); err != nil {
		n.log.WarnContext(ctx, "publish change event failed",
			"document", document,
			"operation", operation,
			"error", err,
		)
	}
}

// timestamp renders the current time the way posts and comments store it.
func (n notifier) timestamp() string {
	return n.now().UTC().Format(time.RFC3339)
}
