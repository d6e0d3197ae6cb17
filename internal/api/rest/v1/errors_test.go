//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid parameter", gateway.NewInvalidParameter(gateway.SHA256, "hash_length", "not allowed"), http.StatusBadRequest},
		{"output length", gateway.NewOutputLengthExceeded(gateway.BLAKE3, 2048, 1024), http.StatusBadRequest},
		{"crypto failure", gateway.NewCryptoOperationFailed(gateway.AES256GCM, "authentication failed", nil), http.StatusUnprocessableEntity},
		{"session closed", gateway.NewSessionClosed(gateway.SHA256), http.StatusNotFound},
		{"already finalized", gateway.NewAlreadyFinalized(gateway.SHA256), http.StatusConflict},
		{"unsupported", gateway.NewUnsupportedVariant(gateway.SHA256, "no primitive"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", gateway.NewSessionClosed(gateway.SHA256)), http.StatusNotFound},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestWriteError_HidesForeignErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeError(c, errors.New("pq: password authentication failed for user secret"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "internal error", response.Message)
	assert.Empty(t, response.Kind)
}

func TestWriteError_ExposesField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeError(c, gateway.NewInvalidParameter(gateway.AES256GCM, "nonce", "expected 12 bytes, got 8"))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "nonce", response.Field)
	assert.Equal(t, "invalid parameter", response.Kind)
	assert.Contains(t, response.Message, "nonce")
}
