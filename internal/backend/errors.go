package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	dErrors "veriadmin/pkg/domain-errors"
)

// NetworkErrorMessage is shown when the backend could not be reached or
// answered with something unreadable.
const NetworkErrorMessage = "Network error or unexpected error occurred"

// FieldError is the structured per-field rejection the backend returns.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// TransportError means no usable response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func parseAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status}
	var body struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		e.Message = strings.TrimSpace(string(raw))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}
	e.Message = body.Message
	if e.Message == "" {
		e.Message = body.Error
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	e.Fields = parseFieldErrors(body.Errors)
	return e
}

// parseFieldErrors accepts a [{field, message}] list or a {field: {message}}
// map.
func parseFieldErrors(raw json.RawMessage) []FieldError {
	if len(raw) == 0 {
		return nil
	}
	var list []FieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var byField map[string]struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &byField); err == nil {
		out := make([]FieldError, 0, len(byField))
		for field, v := range byField {
			out = append(out, FieldError{Field: field, Message: v.Message})
		}
		return out
	}
	return nil
}

// pathRequired matches the server's prose for a missing field, e.g.
// "city: Path `city` is required."
var pathRequired = regexp.MustCompile("Path `([A-Za-z0-9_.]+)` is required")

// TranslateError turns any client error into a domain error whose Fields
// map form fields to messages and whose Message is the general banner.
//
// Structured field errors are used when present, with legacy names mapped
// onto form fields. Otherwise the message is
// scanned for "Path `x` is required" and each hit becomes "<Label> is
// required" on field x; the raw message is kept as the banner. Failures to
// reach the backend become NetworkErrorMessage.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, NetworkErrorMessage)
	}

	fields := map[string]string{}
	for _, f := range apiErr.Fields {
		if f.Field != "" {
			fields[canonicalField(f.Field)] = f.Message
		}
	}
	if len(fields) == 0 {
		for _, m := range pathRequired.FindAllStringSubmatch(apiErr.Message, -1) {
			field := canonicalField(m[1])
			fields[field] = FieldLabel(field) + " is required"
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return &dErrors.Error{
		Code:    codeForStatus(apiErr.Status, fields != nil),
		Message: apiErr.Message,
		Fields:  fields,
		Err:     apiErr,
	}
}

func codeForStatus(status int, hasFields bool) dErrors.Code {
	switch {
	case hasFields, status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return dErrors.CodeValidation
	case status == http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case status == http.StatusForbidden:
		return dErrors.CodeForbidden
	case status == http.StatusNotFound:
		return dErrors.CodeNotFound
	case status == http.StatusConflict:
		return dErrors.CodeConflict
	case status >= 500:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeBadRequest
	}
}

// canonicalField maps legacy server field names onto form field names.
func canonicalField(name string) string {
	switch name {
	case "stateProvince":
		return "state"
	case "cityRegions":
		return "cityRegion"
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

var fieldLabels = map[string]string{
	"lga":        "LGA",
	"cityRegion": "City region",
}

// FieldLabel turns a camelCase field name into a sentence-case label:
// "houseNumber" becomes "House number".
func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
