package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reserveBody struct {
	TypeCode     string `json:"type_code" binding:"required,lettertype" validate:"required,lettertype"`
	DivisionCode string `json:"division_code" binding:"required,divisioncode" validate:"required,divisioncode"`
}

func TestRegisterValidations(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	tests := []struct {
		name  string
		body  reserveBody
		valid bool
	}{
		{"valid", reserveBody{"02", "RIN"}, true},
		{"lowercase division", reserveBody{"02", "rin"}, true},
		{"one digit type", reserveBody{"2", "RIN"}, false},
		{"letters in type", reserveBody{"AB", "RIN"}, false},
		{"long division", reserveBody{"02", "RINX"}, false},
		{"missing", reserveBody{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.body)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	err := v.Struct(reserveBody{TypeCode: "2"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be a two-digit letter type code", fields["type_code"])
	assert.Equal(t, "This field is required", fields["division_code"])
}

func TestHandleValidationError_WithGinBinding(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/reserve", func(c *gin.Context) {
		var body reserveBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/reserve",
		strings.NewReader(`{"type_code":"99x","division_code":"RIN"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"type_code"`)

	w = serve(router, httptest.NewRequest(http.MethodPost, "/reserve", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed request body")
}
