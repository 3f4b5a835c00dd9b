package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the item repository after a commit.
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// Topics lists every item topic, in lifecycle order.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}

// ItemChangedEvent is published after an Item is inserted or overwritten.
// It carries the full state as committed.
type ItemChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      int64     `json:"item_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after an Item row is removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
