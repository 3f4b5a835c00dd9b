package services

import (
	"github.com/ghuser/itemstore/pkg/app"
	"github.com/ghuser/itemstore/services/item/infrastructure/persistence/sqlite"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := sqlite.NewItemRepository(a.Db, a.EventBus, a.Logger)
	return &Services{
		Item: NewItemService(repo),
	}
}
