// Package subscribers holds in-process consumers of item domain events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/itemstore/pkg/app"
	"github.com/ghuser/itemstore/pkg/events"
	"github.com/ghuser/itemstore/pkg/logger"
	"github.com/ghuser/itemstore/pkg/telemetry"
	domainevents "github.com/ghuser/itemstore/services/item/domain/events"
)

// Audit logs every item event and counts them per topic.
type Audit struct {
	log    logger.Logger
	events metric.Int64Counter
}

// auditEnvelope holds the fields shared by every item event payload.
type auditEnvelope struct {
	EventID string `json:"event_id"`
	Version int    `json:"version"`
	ItemID  int64  `json:"item_id"`
}

// NewAudit returns an Audit recording to the itemstore.item.events counter of meter.
func NewAudit(log logger.Logger, meter metric.Meter) (*Audit, error) {
	counter, err := meter.Int64Counter("itemstore.item.events",
		metric.WithDescription("Item domain events observed by the audit subscriber"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create item events counter: %w", err)
	}
	return &Audit{log: log, events: counter}, nil
}

// Handler returns the events.Handler for topic.
// A payload that is not valid JSON is logged and acknowledged; retrying it cannot help.
func (a *Audit) Handler(topic string) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var env auditEnvelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			a.log.WarnContext(ctx, "audit: undecodable item event",
				"topic", topic, "message_uuid", msg.UUID, "error", err)
			return nil
		}

		a.log.InfoContext(ctx, "item event",
			"topic", topic,
			"event_id", env.EventID,
			"event_version", env.Version,
			"item_id", env.ItemID,
		)
		a.events.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
		return nil
	}
}

// Subscribe attaches the audit handler to every item topic on bus. Handler
// errors reported by the bus are logged until ctx is done or the bus closes.
func (a *Audit) Subscribe(ctx context.Context, bus *events.EventBus) error {
	for _, topic := range domainevents.Topics {
		errCh, err := bus.Subscribe(ctx, topic, a.Handler(topic))
		if err != nil {
			return fmt.Errorf("subscribe audit to %s: %w", topic, err)
		}
		go func() {
			for err := range errCh {
				a.log.ErrorContext(ctx, "audit: item event dropped", "topic", topic, "error", err)
			}
		}()
	}
	return nil
}

// Register wires the audit subscriber onto the application's event bus using
// the global meter provider. A nil bus is a no-op.
func Register(ctx context.Context, a *app.Application) error {
	if a.EventBus == nil {
		return nil
	}
	audit, err := NewAudit(a.Logger, telemetry.Meter("item"))
	if err != nil {
		return err
	}
	return audit.Subscribe(ctx, a.EventBus)
}
