package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INSUFFICIENT_BALANCE", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"PLAN_COMPLETED", http.StatusUnprocessableEntity},
		{"SOURCE_IN_USE", http.StatusUnprocessableEntity},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestGetHTTPStatus_InvalidPrefixFallsBackToBadRequest(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_AMOUNT"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_CATEGORY"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_PAYMENT_METHOD"))
}

func TestGetHTTPStatus_UnknownCodeIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ELSE"))
}
