package validator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgvalidator "github.com/ghuser/itemstore/pkg/validator"
)

type sampleStruct struct {
	Name  string `validate:"required,min=1,max=10"`
	Count int    `validate:"gte=0"`
}

func TestValidate_valid(t *testing.T) {
	if err := pkgvalidator.Validate(&sampleStruct{Name: "hello"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input sampleStruct
		field string
		want  string
	}{
		{"required", sampleStruct{}, "Name", "This field is required"},
		{"max", sampleStruct{Name: "12345678901"}, "Name", "Maximum length is 10"},
		{"gte", sampleStruct{Name: "ok", Count: -1}, "Count", "Must be greater than or equal to 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&tt.input))
			if m[tt.field] != tt.want {
				t.Errorf("%s: got %q, want %q", tt.field, m[tt.field], tt.want)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type itemReq struct {
	Name        *string  `json:"name"        validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,finite"`
	Quantity    *int64   `json:"quantity"    validate:"required"`
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestValidateRequest_form(t *testing.T) {
	w := httptest.NewRecorder()
	r := formRequest(url.Values{
		"name":        {"Widget"},
		"description": {"A widget"},
		"price":       {"9.99"},
		"quantity":    {"5"},
	})

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.Name != "Widget" || *req.Description != "A widget" || *req.Price != 9.99 || *req.Quantity != 5 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_multipartForm(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"name": "Widget", "description": "", "price": "-1", "quantity": "0"} {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	r := httptest.NewRequest(http.MethodPut, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.Description != "" || *req.Price != -1 || *req.Quantity != 0 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_formEmptyStringIsPresent(t *testing.T) {
	w := httptest.NewRecorder()
	r := formRequest(url.Values{"name": {""}, "description": {""}, "price": {"0"}, "quantity": {"0"}})

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name == nil || *req.Name != "" {
		t.Errorf("expected empty name to be kept, got %v", req.Name)
	}
}

func TestValidateRequest_formNonNumeric(t *testing.T) {
	w := httptest.NewRecorder()
	r := formRequest(url.Values{"name": {"Widget"}, "description": {"d"}, "price": {"abc"}, "quantity": {"1.5"}})

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for non-numeric fields")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Error != "Validation failed" {
		t.Errorf("unexpected error: %q", body.Error)
	}
	if body.Fields["price"] != "Must be a numeric value" {
		t.Errorf("price: got %q", body.Fields["price"])
	}
	if body.Fields["quantity"] != "Must be an integer" {
		t.Errorf("quantity: got %q", body.Fields["quantity"])
	}
	if len(body.Fields) != 2 {
		t.Errorf("expected exactly 2 field errors, got %v", body.Fields)
	}
}

func TestValidateRequest_nonFinitePrice(t *testing.T) {
	for _, price := range []string{"Inf", "-Inf", "+Infinity", "NaN", "nan", "1e999"} {
		t.Run(price, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := formRequest(url.Values{"name": {"Widget"}, "description": {"d"}, "price": {price}, "quantity": {"1"}})

			if _, ok := pkgvalidator.ValidateRequest[itemReq](w, r); ok {
				t.Fatalf("expected ok=false for price %q", price)
			}
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
			body := decodeError(t, w)
			if body.Fields["price"] != "Must be a numeric value" {
				t.Errorf("price: got %q", body.Fields["price"])
			}
			if len(body.Fields) != 1 {
				t.Errorf("expected only price to be reported, got %v", body.Fields)
			}
		})
	}
}

func TestValidateRequest_jsonNonFinitePrice(t *testing.T) {
	for _, price := range []string{`"Inf"`, `"NaN"`, `1e999`} {
		t.Run(price, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := jsonRequest(`{"name":"Widget","description":"","price":` + price + `,"quantity":1}`)

			if _, ok := pkgvalidator.ValidateRequest[itemReq](w, r); ok {
				t.Fatalf("expected ok=false for price %s", price)
			}
			if body := decodeError(t, w); body.Fields["price"] != "Must be a numeric value" {
				t.Errorf("price: got %q", body.Fields["price"])
			}
		})
	}
}

func TestValidateRequest_missingFieldsAllReported(t *testing.T) {
	w := httptest.NewRecorder()
	r := formRequest(url.Values{"name": {"Widget"}})

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing fields")
	}
	body := decodeError(t, w)
	for _, field := range []string{"description", "price", "quantity"} {
		if body.Fields[field] != "This field is required" {
			t.Errorf("%s: got %q", field, body.Fields[field])
		}
	}
	if _, ok := body.Fields["name"]; ok {
		t.Error("name was supplied and must not be reported")
	}
}

func TestValidateRequest_json(t *testing.T) {
	w := httptest.NewRecorder()
	r := jsonRequest(`{"name":"Widget","description":"A widget","price":9.99,"quantity":5}`)

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.Price != 9.99 || *req.Quantity != 5 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_jsonNumericStringsAreCoerced(t *testing.T) {
	w := httptest.NewRecorder()
	r := jsonRequest(`{"name":"Widget","description":"","price":"9.99","quantity":"5"}`)

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.Price != 9.99 || *req.Quantity != 5 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_jsonInvalidValues(t *testing.T) {
	w := httptest.NewRecorder()
	r := jsonRequest(`{"name":["x"],"description":null,"price":"cheap","quantity":5}`)

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false")
	}
	body := decodeError(t, w)
	want := map[string]string{
		"name":        "Must be a scalar value",
		"description": "This field is required",
		"price":       "Must be a numeric value",
	}
	for field, msg := range want {
		if body.Fields[field] != msg {
			t.Errorf("%s: got %q, want %q", field, body.Fields[field], msg)
		}
	}
	if _, ok := body.Fields["quantity"]; ok {
		t.Error("quantity is valid and must not be reported")
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, jsonRequest("{bad json"))
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_trailingJSON(t *testing.T) {
	valid := `{"name":"Widget","description":"","price":1,"quantity":1}`
	for name, body := range map[string]string{
		"garbage":      valid + " trailing",
		"second value": valid + `{"name":"x"}`,
		"stray brace":  valid + "}",
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()

			if _, ok := pkgvalidator.ValidateRequest[itemReq](w, jsonRequest(body)); ok {
				t.Fatal("expected ok=false for trailing data")
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Invalid JSON") {
				t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
			}
		})
	}
}

func TestValidateRequest_trailingWhitespaceIsAccepted(t *testing.T) {
	w := httptest.NewRecorder()
	r := jsonRequest("{\"name\":\"Widget\",\"description\":\"\",\"price\":1,\"quantity\":1}\n\t ")

	if _, ok := pkgvalidator.ValidateRequest[itemReq](w, r); !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
}

func TestValidateRequest_bodyTooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := jsonRequest(`{"name":"` + strings.Repeat("x", 64) + `"}`)
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for oversized body")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

// --- PathInt64 ---

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathInt64(t *testing.T) {
	w := httptest.NewRecorder()
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/items/42", http.NoBody), "id", "42")

	id, ok := pkgvalidator.PathInt64(w, r, "id")
	if !ok || id != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", id, ok)
	}
}

func TestPathInt64_notAnInteger(t *testing.T) {
	w := httptest.NewRecorder()
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/items/abc", http.NoBody), "id", "abc")

	if _, ok := pkgvalidator.PathInt64(w, r, "id"); ok {
		t.Fatal("expected ok=false")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Fields["id"] != "Must be an integer" {
		t.Errorf("id: got %q", body.Fields["id"])
	}
}
