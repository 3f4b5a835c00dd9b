package handlers

import (
	"net/http"

	"github.com/jinzhu/copier"

	"github.com/ghuser/itemstore/pkg/errhttp"
	"github.com/ghuser/itemstore/pkg/logger"
	"github.com/ghuser/itemstore/pkg/telemetry"
	"github.com/ghuser/itemstore/services/item/domain/models"
)

// ItemRequest is the request body for POST /items/ and PUT /items/{id}.
// It is accepted as form fields or as a JSON object. Every field is required;
// an empty string counts as present.
type ItemRequest struct {
	Name        *string  `json:"name"        validate:"required" example:"Widget"`
	Description *string  `json:"description" validate:"required" example:"A widget"`
	Price       *float64 `json:"price"       validate:"required,finite" example:"9.99"`
	Quantity    *int64   `json:"quantity"    validate:"required" example:"5"`
} // @name ItemRequest

// Fields converts a validated request into domain fields.
func (r *ItemRequest) Fields() models.Fields {
	return models.Fields{
		Name:        *r.Name,
		Description: *r.Description,
		Price:       *r.Price,
		Quantity:    *r.Quantity,
	}
}

// ItemResponse is the wire shape of one stored item.
type ItemResponse struct {
	ID          int64   `json:"id"          example:"1"`
	Name        string  `json:"name"        example:"Widget"`
	Description string  `json:"description" example:"A widget"`
	Price       float64 `json:"price"       example:"9.99"`
	Quantity    int64   `json:"quantity"    example:"5"`
} // @name Item

// ItemEnvelope is returned by successful create and update calls.
type ItemEnvelope struct {
	Status string       `json:"status" example:"success"`
	Item   ItemResponse `json:"item"`
} // @name ItemEnvelope

// ItemListResponse is returned by GET /items/.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ItemListResponse

// ErrorResponse is returned on all non-validation error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toResponse(item *models.Item) ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, item)
	return resp
}

func success(item *models.Item) ItemEnvelope {
	return ItemEnvelope{Status: "success", Item: toResponse(item)}
}

// writeError logs and reports server-side failures, then writes the mapped
// error response.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	if status := errhttp.Status(err); status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), op+" failed", "status", status, "error", err)
		telemetry.CaptureError(r.Context(), op, err)
	}
	errhttp.WriteError(w, err)
}
