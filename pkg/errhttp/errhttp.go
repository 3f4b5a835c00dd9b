// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to mapError for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemstore/pkg/database"
	"github.com/ghuser/itemstore/pkg/httpx"
	itemdomain "github.com/ghuser/itemstore/services/item/domain"
)

// Client-facing messages. Engine and internal failures never expose err.Error().
const (
	msgNotFound = "item not found"
	msgInvalid  = "invalid item"
	msgDatabase = "Database error occurred"
	msgInternal = "Internal server error"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := mapError(err)
	httpx.JSONError(w, status, msg)
}

// Status returns the HTTP status WriteError would use for err.
func Status(err error) int {
	status, _ := mapError(err)
	return status
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound, msgNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItem):
		return http.StatusUnprocessableEntity, msgInvalid // 422
	case errors.Is(err, database.ErrDatabase):
		return http.StatusServiceUnavailable, msgDatabase // 503
	default:
		return http.StatusInternalServerError, msgInternal // 500
	}
}
