package repositories

import (
	"context"

	"github.com/ghuser/itemstore/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every method is its own atomic unit of work.
type ItemRepository interface {
	// Save inserts a new Item and sets its generated ID.
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no row has the given id.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// List returns every item ordered by id. No pagination.
	List(ctx context.Context) ([]*models.Item, error)

	// Update overwrites all fields of the item with the given id and returns the
	// stored result. Returns ErrItemNotFound (and writes nothing) if it is absent.
	Update(ctx context.Context, id int64, fields models.Fields) (*models.Item, error)

	// Delete removes the item with the given id. Returns ErrItemNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
