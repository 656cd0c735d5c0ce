package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"email taken maps to already exists", "EMAIL_TAKEN", ErrCodeAlreadyExists},
		{"constraint violation maps to conflict", "CONSTRAINT_VIOLATION", ErrCodeConflict},
		{"state conflict maps to conflict", "STATE_CONFLICT", ErrCodeConflict},
		{"mutation forbidden maps to invalid state", "MUTATION_FORBIDDEN", ErrCodeInvalidState},
		{"illegal transition maps to invalid state", "ILLEGAL_TRANSITION", ErrCodeInvalidState},
		{"reconciliation failure maps to business rule", "RECONCILIATION_FAILED", ErrCodeBusinessRule},
		{"invalid credentials maps to unauthorized", "INVALID_CREDENTIALS", ErrCodeUnauthorized},
		{"field validation code", "INVALID_NAME", ErrCodeValidation},
		{"another field validation code", "INVALID_SALE_DATE", ErrCodeValidation},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "WEIRD_CODE", "WEIRD_CODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.in))
		})
	}
}

func TestNormalizedDomainCodesHaveStatus(t *testing.T) {
	// Every domain code must normalize to something with an explicit status.
	for domainCode := range DomainErrorCodeMapping {
		normalized := NormalizeErrorCode(domainCode)
		_, ok := ErrorCodeHTTPStatus[normalized]
		assert.True(t, ok, "domain code %s normalizes to unmapped code %s", domainCode, normalized)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-123")

	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "name is required"},
		{Field: "stock", Message: "stock cannot be negative"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 2, 20)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.Equal(t, 20, resp.Meta.Limit)
}
