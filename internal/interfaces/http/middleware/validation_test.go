package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createItemRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Status string  `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED"`
}

func newValidatedRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/items", func(c *gin.Context) {
		var req createItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func TestHandleValidationError_ReportsJSONFieldNames(t *testing.T) {
	router := newValidatedRouter()

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"amount":-5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"name"`)
	assert.Contains(t, body, `"amount"`)
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, "Must be greater than 0")
}

func TestHandleValidationError_OneofMessage(t *testing.T) {
	router := newValidatedRouter()

	req := httptest.NewRequest(http.MethodPost, "/items",
		strings.NewReader(`{"name":"till float","amount":25,"status":"PAUSED"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Must be one of: ACTIVE CLOSED")
}

func TestValidRequestPassesBinding(t *testing.T) {
	router := newValidatedRouter()

	req := httptest.NewRequest(http.MethodPost, "/items",
		strings.NewReader(`{"name":"till float","amount":25,"status":"ACTIVE"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}

func TestSetupValidator_UsesFormTagForQueryBinding(t *testing.T) {
	SetupValidator()

	type listRequest struct {
		PageSize int `form:"page_size" binding:"omitempty,max=100"`
	}
	var req listRequest
	req.PageSize = 500

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}
