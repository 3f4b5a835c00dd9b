package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ValidationMessage is the top-level error text of every 422 response.
const ValidationMessage = "Validation failed"

// internalErrorBody is written when a response value cannot be encoded.
const internalErrorBody = `{"error":"Internal server error"}` + "\n"

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically.
//
// v is encoded before the status line goes out; if encoding fails the client
// gets a 500 rather than the requested status with an empty body.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(internalErrorBody)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationErrorBody is the body of a 422 response: one message per
// offending field, keyed by the field's wire name.
type ValidationErrorBody struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

// ValidationError writes a 422 response listing every offending field.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, ValidationErrorBody{
		Error:  ValidationMessage,
		Fields: fields,
	})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
