//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// serveSessions routes one request through the full router so bodiless
// statuses are flushed the way a real server writes them.
func serveSessions(t *testing.T, sessions *MockSessionService, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	SetupRoutes(r, new(MockGatewayService), sessions, nil, testutil.SetupTestLogger(t))

	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Open(t *testing.T) {
	mockSessions := new(MockSessionService)
	mockAudit := new(MockAuditService)
	handler := NewSessionHandler(mockSessions, mockAudit, testutil.SetupTestLogger(t))

	mockSessions.
		On("Open", mock.Anything, gateway.BLAKE3, mock.AnythingOfType("*gateway.ParameterSet")).
		Return("session-1", nil)
	mockAudit.
		On("Record", mock.Anything, mock.MatchedBy(func(r *gateway.OperationRecord) bool {
			return r.Operation == OperationOpenSession && r.Variant == "blake3"
		})).
		Return(nil)

	c, w := newJSONContext("POST", "/sessions", `{"variant": "blake3", "params": {"hash_length": 64}}`)
	handler.Open(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "session-1", response.ID)
	assert.Equal(t, "blake3", response.Variant)
	mockSessions.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestSessionHandler_Open_NonStreamingVariant(t *testing.T) {
	mockSessions := new(MockSessionService)
	handler := NewSessionHandler(mockSessions, nil, testutil.SetupTestLogger(t))

	mockSessions.
		On("Open", mock.Anything, gateway.AES256GCM, mock.Anything).
		Return("", gateway.NewInvalidParameter(gateway.AES256GCM, "variant", "variant does not support sessions"))

	c, w := newJSONContext("POST", "/sessions", `{"variant": "aes-256-gcm"}`)
	handler.Open(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "variant", response.Field)
}

func TestSessionHandler_Update(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"accepted", nil, http.StatusNoContent},
		{"unknown session", gateway.NewSessionClosed(gateway.VariantUnknown), http.StatusNotFound},
		{"finalized session", gateway.NewAlreadyFinalized(gateway.SHA256), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSessions := new(MockSessionService)
			mockSessions.On("Variant", "abc").Return(gateway.SHA256, nil)
			mockSessions.On("Update", mock.Anything, "abc", []byte("hello")).Return(tt.err)

			// "aGVsbG8=" is base64("hello")
			w := serveSessions(t, mockSessions, "POST", BasePath+"/sessions/abc/update", `{"chunk": "aGVsbG8="}`)

			assert.Equal(t, tt.status, w.Code)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Finalize(t *testing.T) {
	length := 100

	tests := []struct {
		name   string
		body   string
		length *int
	}{
		{"empty body", "", nil},
		{"empty object", "{}", nil},
		{"explicit length", `{"hash_length": 100}`, &length},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSessions := new(MockSessionService)
			mockAudit := new(MockAuditService)
			handler := NewSessionHandler(mockSessions, mockAudit, testutil.SetupTestLogger(t))

			mockSessions.On("Variant", "abc").Return(gateway.SHAKE256, nil)
			mockSessions.On("Finalize", mock.Anything, "abc", tt.length).Return([]byte{0x46, 0xb9}, nil)
			mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(r *gateway.OperationRecord) bool {
				return r.Operation == OperationFinalizeSession && r.Variant == "shake256" && r.OutputSize == 2
			})).Return(nil)

			c, w := newJSONContext("POST", "/sessions/abc/finalize", tt.body)
			c.Params = gin.Params{{Key: "id", Value: "abc"}}
			handler.Finalize(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"output": "Rrk="}`, w.Body.String())
			mockSessions.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Finalize_Rejected(t *testing.T) {
	mockSessions := new(MockSessionService)
	handler := NewSessionHandler(mockSessions, nil, testutil.SetupTestLogger(t))

	c, w := newJSONContext("POST", "/sessions/abc/finalize", `{"hash_length": -1}`)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Finalize(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSessions.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)

	mockSessions.On("Variant", "abc").Return(gateway.SHAKE256, nil)
	mockSessions.
		On("Finalize", mock.Anything, "abc", mock.Anything).
		Return(nil, gateway.NewOutputLengthExceeded(gateway.SHAKE256, 100000, 65536))

	c, w = newJSONContext("POST", "/sessions/abc/finalize", `{"hash_length": 100000}`)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Finalize(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "output length exceeded", response.Kind)
}

func TestSessionHandler_Abandon(t *testing.T) {
	mockSessions := new(MockSessionService)
	mockSessions.On("Variant", "abc").Return(gateway.HMAC, nil)
	mockSessions.On("Abandon", mock.Anything, "abc").Return(nil)
	mockSessions.On("Variant", "gone").Return(gateway.VariantUnknown, gateway.NewSessionClosed(gateway.VariantUnknown))
	mockSessions.On("Abandon", mock.Anything, "gone").Return(gateway.NewSessionClosed(gateway.VariantUnknown))

	w := serveSessions(t, mockSessions, "DELETE", BasePath+"/sessions/abc", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = serveSessions(t, mockSessions, "DELETE", BasePath+"/sessions/gone", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	mockSessions.AssertExpectations(t)
}
