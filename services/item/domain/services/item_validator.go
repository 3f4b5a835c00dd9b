// Package services contains stateless domain services for the item bounded context.
// They check invariants of the aggregate before it reaches storage; text
// content and the sign of price or quantity are stored as given.
package services

import (
	"fmt"
	"math"

	"github.com/ghuser/itemstore/services/item/domain/models"
)

// ValidateFields checks that f can be stored and served back as JSON.
// Price must be finite: SQLite stores NaN as NULL and JSON has no Inf.
func ValidateFields(f models.Fields) error {
	if math.IsNaN(f.Price) || math.IsInf(f.Price, 0) {
		return fmt.Errorf("price must be a finite number (got %v)", f.Price)
	}
	return nil
}

// ValidateItemID checks that id can address a stored item.
func ValidateItemID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive (got %d)", id)
	}
	return nil
}
