package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusFor(CodeUnauthorized))
	assert.Equal(t, http.StatusBadRequest, StatusFor(CodeInvalidRequest))
	assert.Equal(t, http.StatusConflict, StatusFor(CodeAlreadyConnected))
	assert.Equal(t, http.StatusTooManyRequests, StatusFor(CodeRateLimited))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(CodeStoreUnavailable))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(ErrorCode("no_such_code")),
		"unknown codes fall back to 500")
}

func TestNewCarriesStatus(t *testing.T) {
	err := New(CodePostNotFound, "post not found")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "post_not_found: post not found", err.Error())
}

func TestWrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(CodeInternalError, "store query failed", cause)
	require.ErrorIs(t, err, cause)
}
