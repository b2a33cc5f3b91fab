package providers

import (
	"context"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// EventBus publishes and subscribes to ledger events. Publishing is best
// effort: the ledger logs failures and carries on.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel.
	Publish(ctx context.Context, channel string, event *entities.LedgerEvent) error

	// Subscribe subscribes to events on a channel. The returned channel is
	// closed when ctx is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.LedgerEvent, error)

	// Unsubscribe drops every subscriber of a channel.
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions.
	Close() error
}

// EventChannelLedger carries every roster mutation event.
const EventChannelLedger = "ledger:events"
