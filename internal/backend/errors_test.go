package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "veriadmin/pkg/domain-errors"
)

func TestTranslateError(t *testing.T) {
	t.Run("required path prose becomes a field error", func(t *testing.T) {
		err := TranslateError(&APIError{Status: http.StatusBadRequest, Message: "city: Path `city` is required."})

		assert.Equal(t, map[string]string{"city": "City is required"}, dErrors.FieldsOf(err))
		var de *dErrors.Error
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "city: Path `city` is required.", de.Message)
		assert.Equal(t, dErrors.CodeValidation, de.Code)
	})

	t.Run("several missing paths", func(t *testing.T) {
		msg := "Location validation failed: houseNumber: Path `houseNumber` is required., stateProvince: Path `stateProvince` is required."
		err := TranslateError(&APIError{Status: http.StatusBadRequest, Message: msg})

		assert.Equal(t, map[string]string{
			"houseNumber": "House number is required",
			"state":       "State is required",
		}, dErrors.FieldsOf(err))
	})

	t.Run("structured errors win over prose", func(t *testing.T) {
		err := TranslateError(&APIError{
			Status:  http.StatusUnprocessableEntity,
			Message: "lga: Path `lga` is required.",
			Fields:  []FieldError{{Field: "street", Message: "Street is too long"}},
		})

		assert.Equal(t, map[string]string{"street": "Street is too long"}, dErrors.FieldsOf(err))
	})

	t.Run("structured legacy field names land on form fields", func(t *testing.T) {
		apiErr := parseAPIError(http.StatusBadRequest, []byte(`{"message":"invalid city regions","errors":[`+
			`{"field":"stateProvince","message":"State is required"},`+
			`{"field":"cityRegions","message":"City region is required"}]}`))
		err := TranslateError(apiErr)

		assert.Equal(t, map[string]string{
			"state":      "State is required",
			"cityRegion": "City region is required",
		}, dErrors.FieldsOf(err))
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("plain rejection keeps its message without fields", func(t *testing.T) {
		err := TranslateError(&APIError{Status: http.StatusConflict, Message: "Location already exists"})

		assert.Nil(t, dErrors.FieldsOf(err))
		assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	t.Run("status codes", func(t *testing.T) {
		cases := map[int]dErrors.Code{
			http.StatusUnauthorized:        dErrors.CodeUnauthorized,
			http.StatusForbidden:           dErrors.CodeForbidden,
			http.StatusNotFound:            dErrors.CodeNotFound,
			http.StatusBadGateway:          dErrors.CodeUnavailable,
			http.StatusTeapot:              dErrors.CodeBadRequest,
			http.StatusUnprocessableEntity: dErrors.CodeValidation,
		}
		for status, want := range cases {
			assert.Equal(t, want, dErrors.CodeOf(TranslateError(&APIError{Status: status, Message: "x"})), status)
		}
	})

	t.Run("transport failure shows the network banner", func(t *testing.T) {
		err := TranslateError(&TransportError{Op: "create_location", Err: context.DeadlineExceeded})

		var de *dErrors.Error
		require.True(t, errors.As(err, &de))
		assert.Equal(t, NetworkErrorMessage, de.Message)
		assert.Equal(t, dErrors.CodeUnavailable, de.Code)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("wrapped api error is found", func(t *testing.T) {
		err := TranslateError(fmt.Errorf("save: %w", &APIError{Status: http.StatusNotFound, Message: "gone"}))
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})
}

func TestParseAPIError(t *testing.T) {
	t.Run("error key and field map", func(t *testing.T) {
		e := parseAPIError(http.StatusBadRequest, []byte(`{"error":"bad","errors":{"cityRegionFee":{"message":"Fee must be a number"}}}`))
		assert.Equal(t, "bad", e.Message)
		assert.Equal(t, []FieldError{{Field: "cityRegionFee", Message: "Fee must be a number"}}, e.Fields)
	})

	t.Run("non-json body", func(t *testing.T) {
		e := parseAPIError(http.StatusBadGateway, []byte("  "))
		assert.Equal(t, "Bad Gateway", e.Message)
	})
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "House number", FieldLabel("houseNumber"))
	assert.Equal(t, "LGA", FieldLabel("lga"))
	assert.Equal(t, "City region", FieldLabel("cityRegion"))
	assert.Equal(t, "Country", FieldLabel("country"))
}
