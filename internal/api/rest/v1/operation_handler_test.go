//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOperationHandler_List(t *testing.T) {
	mockAudit := new(MockAuditService)
	handler := NewOperationHandler(mockAudit)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []*gateway.OperationRecord{
		{ID: "r1", Variant: "sha256", Operation: OperationCompute, InputSize: 3, OutputSize: 32, Outcome: gateway.OutcomeSuccess, DateTimeCreated: created},
	}
	mockAudit.
		On("List", mock.Anything, mock.MatchedBy(func(q *gateway.OperationQuery) bool {
			return q.Variant == "sha256" && q.Outcome == "success" && q.Limit == 5 && q.Offset == 10
		})).
		Return(records, nil)

	c, w := newJSONContext("GET", "/operations?variant=sha256&outcome=success&limit=5&offset=10", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []OperationRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "r1", response[0].ID)
	assert.Equal(t, 32, response[0].OutputSize)
	assert.True(t, created.Equal(response[0].DateTimeCreated))
	mockAudit.AssertExpectations(t)
}

func TestOperationHandler_List_BadQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad limit", "/operations?limit=ten"},
		{"bad offset", "/operations?offset=-x"},
		{"bad date", "/operations?dateTimeCreated=yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAudit := new(MockAuditService)
			handler := NewOperationHandler(mockAudit)

			c, w := newJSONContext("GET", tt.url, "")
			handler.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockAudit.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestOperationHandler_List_ServiceError(t *testing.T) {
	mockAudit := new(MockAuditService)
	handler := NewOperationHandler(mockAudit)

	mockAudit.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	c, w := newJSONContext("GET", "/operations", "")
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockAudit.AssertExpectations(t)
}
