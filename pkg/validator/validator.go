// Package validator binds request bodies into typed request structs and
// validates them, reporting every offending field in one 422 response.
//
// Form bodies (urlencoded or multipart) are decoded with go-playground/form;
// JSON objects are flattened to the same key/value shape first, so both
// encodings share one coercion path. Struct fields are addressed by their
// json tag name in both cases.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/ghuser/itemstore/pkg/httpx"
)

const maxMultipartMemory = 1 << 20

var (
	errInvalidJSON  = errors.New("invalid json body")
	errInvalidForm  = errors.New("invalid form body")
	errBodyTooLarge = errors.New("request body too large")
)

var (
	validate    *validator.Validate
	formDecoder *form.Decoder
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// finite rejects the NaN and Inf values strconv.ParseFloat accepts.
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		switch f := fl.Field(); f.Kind() {
		case reflect.Float32, reflect.Float64:
			return !math.IsNaN(f.Float()) && !math.IsInf(f.Float(), 0)
		default:
			return true
		}
	})

	formDecoder = form.NewDecoder()
	formDecoder.SetTagName("json")
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "numeric", "finite":
		return "Must be a numeric value"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidateRequest decodes the request body into T, validates it, and writes an
// appropriate error response if either step fails.
//
// The body is read as JSON when Content-Type is application/json and as form
// fields otherwise. Values that cannot be coerced to the field's type and
// fields that are missing are collected into a single 422 response; a coercion
// failure wins over "required" for the same field. Malformed JSON is a 400.
//
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	values, fields, err := requestValues(r)
	if err != nil {
		writeBindError(w, err)
		return nil, false
	}

	var req T
	if err := formDecoder.Decode(&req, values); err != nil {
		var de form.DecodeErrors
		if !errors.As(err, &de) {
			writeBindError(w, errInvalidForm)
			return nil, false
		}
		for name := range de {
			if _, ok := fields[name]; !ok {
				fields[name] = coercionMessage(reflect.TypeOf(req), name)
			}
		}
	}

	if err := Validate(&req); err != nil {
		for name, msg := range FormatValidationErrors(err) {
			if _, ok := fields[name]; !ok {
				fields[name] = msg
			}
		}
	}

	if len(fields) > 0 {
		httpx.ValidationError(w, fields)
		return nil, false
	}
	return &req, true
}

// PathInt64 parses the chi URL parameter name as an integer. A non-integer
// value writes a 422 naming the parameter.
func PathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.ValidationError(w, map[string]string{name: "Must be an integer"})
		return 0, false
	}
	return v, true
}

// requestValues returns the body as form values plus any field errors already
// known before decoding (JSON values that are neither scalar nor null).
func requestValues(r *http.Request) (url.Values, map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return jsonValues(r)
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, nil, bodyError(err, errInvalidForm)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, nil, bodyError(err, errInvalidForm)
		}
	}
	return r.PostForm, map[string]string{}, nil
}

func jsonValues(r *http.Request) (url.Values, map[string]string, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, bodyError(err, errInvalidJSON)
	}
	// exactly one value per body
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, bodyError(err, errInvalidJSON)
	}

	values := url.Values{}
	fields := map[string]string{}
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			// null is treated as absent
		case string:
			values.Set(k, v)
		case json.Number:
			values.Set(k, v.String())
		case bool:
			values.Set(k, strconv.FormatBool(v))
		default:
			fields[k] = "Must be a scalar value"
		}
	}
	return values, fields, nil
}

func bodyError(err, fallback error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return fallback
}

func writeBindError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, errInvalidJSON):
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
	default:
		httpx.JSONError(w, http.StatusBadRequest, "Invalid form body")
	}
}

// coercionMessage describes why the wire value for the field tagged name
// could not be converted to its Go type.
func coercionMessage(t reflect.Type, name string) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if strings.SplitN(f.Tag.Get("json"), ",", 2)[0] != name {
				continue
			}
			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			switch ft.Kind() {
			case reflect.Float32, reflect.Float64:
				return "Must be a numeric value"
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
				reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				return "Must be an integer"
			case reflect.Bool:
				return "Must be a boolean"
			}
		}
	}
	return "Invalid value"
}
