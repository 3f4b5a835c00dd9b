package handlers

import (
	"net/http"

	"github.com/ghuser/itemstore/pkg/httpx"
	"github.com/ghuser/itemstore/pkg/logger"
	appsvcs "github.com/ghuser/itemstore/services/item/application/services"
)

// ListItemsHandler handles GET /items/ requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, log logger.Logger) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, log: log}
}

// Execute returns every item ordered by id.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ItemListResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/items/ [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, "list items", err)
		return
	}

	resp := ItemListResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
