package handlers

import (
	"net/http"

	"github.com/ghuser/itemstore/pkg/httpx"
	"github.com/ghuser/itemstore/pkg/logger"
	pkgvalidator "github.com/ghuser/itemstore/pkg/validator"
	appsvcs "github.com/ghuser/itemstore/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, log logger.Logger) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, log: log}
}

// Execute removes an item.
//
//	@Summary	Delete item
//	@Tags		items
//	@Produce	json
//	@Param		id	path	int	true	"Item ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	httpx.ValidationErrorBody
//	@Failure	503	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pkgvalidator.PathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, "delete item", err)
		return
	}

	httpx.NoContent(w)
}
