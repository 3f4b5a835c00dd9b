package models

import "testing"

func TestNewItem(t *testing.T) {
	f := Fields{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}

	t.Run("copies every field", func(t *testing.T) {
		item := NewItem(f)
		if item.Name != f.Name || item.Description != f.Description || item.Price != f.Price || item.Quantity != f.Quantity {
			t.Fatalf("fields not copied: %+v", item)
		}
	})

	t.Run("is unsaved", func(t *testing.T) {
		item := NewItem(f)
		if item.ID != 0 {
			t.Fatalf("expected zero ID, got %d", item.ID)
		}
	})

	t.Run("accepts negative price and quantity", func(t *testing.T) {
		item := NewItem(Fields{Name: "Refund", Description: "", Price: -1.5, Quantity: -3})
		if item.Price != -1.5 || item.Quantity != -3 {
			t.Fatalf("negative values altered: %+v", item)
		}
	})
}

func TestItem_Overwrite(t *testing.T) {
	item := &Item{ID: 7, Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}

	item.Overwrite(Fields{Name: "Widget2", Description: "A widget", Price: 9.99, Quantity: 5})

	if item.ID != 7 {
		t.Fatalf("ID changed to %d", item.ID)
	}
	if item.Name != "Widget2" {
		t.Fatalf("expected Name Widget2, got %q", item.Name)
	}
	item.Overwrite(Fields{})
	if item.Name != "" || item.Description != "" || item.Price != 0 || item.Quantity != 0 {
		t.Fatalf("overwrite must replace every field, got %+v", item)
	}
}
