package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstore/pkg/app"
	"github.com/ghuser/itemstore/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemstore/services/item/application/services"
	"github.com/ghuser/itemstore/services/item/application/web"
)

// ItemRoutes registers the inventory page, its static assets and the item
// endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) error {
	svcs := appsvcs.New(a)
	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("item routes: %w", err)
	}

	r.Group(func(r chi.Router) {
		r.Get("/", handlers.NewIndexHandler(svcs, renderer, a.Logger).Execute)
		r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs, a.Logger).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs, a.Logger).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs, a.Logger).Execute)
				r.Put("/", handlers.NewPutItemHandler(svcs, a.Logger).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs, a.Logger).Execute)
			})
		})
	})
	return nil
}
