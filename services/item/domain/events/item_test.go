package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/itemstore/services/item/domain/events"
)

func TestItemChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      1,
		Name:        "Widget",
		Description: "A widget",
		Price:       9.99,
		Quantity:    5,
		OccurredAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "name", "description", "price", "quantity", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
	if raw["price"] != 9.99 {
		t.Errorf("price: got %v, want 9.99", raw["price"])
	}
}

func TestItemDeletedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.ItemDeletedEvent{EventID: uuid.New(), Version: 1, ItemID: 3, OccurredAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "item_id", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
	if _, ok := raw["name"]; ok {
		t.Error("deleted event must not carry item fields")
	}
}

func TestTopics(t *testing.T) {
	want := []string{"item.created", "item.updated", "item.deleted"}
	if len(events.Topics) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(events.Topics))
	}
	for i, topic := range want {
		if events.Topics[i] != topic {
			t.Errorf("Topics[%d]: got %q, want %q", i, events.Topics[i], topic)
		}
	}
}
