package handlers

import (
	"bytes"
	"net/http"

	"github.com/ghuser/itemstore/pkg/logger"
	appsvcs "github.com/ghuser/itemstore/services/item/application/services"
	"github.com/ghuser/itemstore/services/item/application/web"
)

// IndexHandler handles GET / by rendering the inventory page.
type IndexHandler struct {
	svc      *appsvcs.Services
	renderer *web.Renderer
	log      logger.Logger
}

// NewIndexHandler returns an IndexHandler backed by the given services and renderer.
func NewIndexHandler(svc *appsvcs.Services, renderer *web.Renderer, log logger.Logger) *IndexHandler {
	return &IndexHandler{svc: svc, renderer: renderer, log: log}
}

// Execute lists every item and renders the page.
//
//	@Summary	Inventory page
//	@Tags		pages
//	@Produce	html
//	@Success	200	{string}	string	"HTML page"
//	@Failure	503	{object}	ErrorResponse
//	@Router		/ [get]
func (h *IndexHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, "render index", err)
		return
	}

	// render fully before writing so a template failure can still become a 500
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, items); err != nil {
		writeError(w, r, h.log, "render index", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
