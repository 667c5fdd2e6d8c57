package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"cooked/internal/errors"
)

func TestNewErrorInfo(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		code          string
		details       any
		wantDetails   any
		wantRetryable bool
	}{
		{name: "validation keeps details", status: http.StatusBadRequest, code: "VALIDATION_FAILED", details: "ratingValue must be 1-5", wantDetails: "ratingValue must be 1-5"},
		{name: "conflict", status: http.StatusConflict, code: "ILLEGAL_TRANSITION", details: nil, wantDetails: nil},
		{name: "session expired hides reason", status: http.StatusUnauthorized, code: "SESSION_EXPIRED", details: "token lifetime elapsed", wantDetails: nil},
		{name: "transport hides cause and is retryable", status: http.StatusBadGateway, code: "TRANSPORT_ERROR", details: "dial tcp: refused", wantDetails: nil, wantRetryable: true},
		{name: "internal hides details", status: http.StatusInternalServerError, code: "INTERNAL_ERROR", details: "boom", wantDetails: nil},
		{name: "empty string details dropped", status: http.StatusNotFound, code: "BOOKING_NOT_FOUND", details: "", wantDetails: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewErrorInfo(tt.status, tt.code, "msg", tt.details)

			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, "msg", info.Message)
			assert.Equal(t, tt.wantDetails, info.Details)
			assert.Equal(t, tt.wantRetryable, info.Retryable)
		})
	}
}

func TestNewErrorInfo_FromTaxonomy(t *testing.T) {
	transport := NewTransportError(errors.New("connection refused"))
	info := NewErrorInfo(transport.HTTPCode(), transport.ErrorCode(), transport.Message(), transport.Details())

	assert.Equal(t, "TRANSPORT_ERROR", info.Code)
	assert.Equal(t, "Could not reach server", info.Message)
	assert.Nil(t, info.Details)
	assert.True(t, info.Retryable)

	illegal := NewIllegalTransitionError(7, "PENDING", "receive_payment")
	info = NewErrorInfo(illegal.HTTPCode(), illegal.ErrorCode(), illegal.Message(), illegal.Details())
	assert.Equal(t, "ILLEGAL_TRANSITION", info.Code)
	assert.False(t, info.Retryable)
}
