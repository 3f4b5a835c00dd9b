package handlers

import (
	"net/http"

	"github.com/ghuser/itemstore/pkg/httpx"
	"github.com/ghuser/itemstore/pkg/logger"
	pkgvalidator "github.com/ghuser/itemstore/pkg/validator"
	appsvcs "github.com/ghuser/itemstore/services/item/application/services"
)

// PostItemHandler handles POST /items/ requests.
type PostItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, log logger.Logger) *PostItemHandler {
	return &PostItemHandler{svc: svc, log: log}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates a new item. Fields may be sent as a form or as JSON.
//	@Tags			items
//	@Accept			x-www-form-urlencoded,json
//	@Produce		json
//	@Param			request	body		ItemRequest	true	"Item fields"
//	@Success		201		{object}	ItemEnvelope
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	httpx.ValidationErrorBody
//	@Failure		503		{object}	ErrorResponse
//	@Router			/items/ [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.Fields())
	if err != nil {
		writeError(w, r, h.log, "create item", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, success(item))
}
