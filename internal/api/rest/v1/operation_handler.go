package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/gin-gonic/gin"
)

// OperationHandler defines the interface for reading the audit trail
type OperationHandler interface {
	List(ctx *gin.Context)
}

// operationHandler struct holds the services
type operationHandler struct {
	auditService gateway.AuditService
}

// NewOperationHandler creates a new OperationHandler
func NewOperationHandler(auditService gateway.AuditService) OperationHandler {
	return &operationHandler{
		auditService: auditService,
	}
}

// List handles the GET request to list operation records with optional query parameters
// @Summary List audited operations
// @Description Fetch operation records filtered by variant, operation, outcome and creation date, with pagination and sorting options.
// @Tags Operation
// @Produce json
// @Param variant query string false "Variant name"
// @Param operation query string false "Operation name"
// @Param outcome query string false "success or failure"
// @Param dateTimeCreated query string false "Earliest creation date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} OperationRecordResponse
// @Failure 400 {object} ErrorResponse
// @Router /operations [get]
func (handler *operationHandler) List(ctx *gin.Context) {
	query := gateway.NewOperationQuery()

	if variant := ctx.Query("variant"); len(variant) > 0 {
		query.Variant = variant
	}
	if operation := ctx.Query("operation"); len(operation) > 0 {
		query.Operation = operation
	}
	if outcome := ctx.Query("outcome"); len(outcome) > 0 {
		query.Outcome = outcome
	}
	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid dateTimeCreated: %v", err)})
			return
		}
		query.DateTimeCreated = parsedTime
	}
	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		raw := ctx.Query(name)
		if len(raw) == 0 {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid %s: %s", name, raw)})
			return
		}
		*target = value
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err.Error())})
		return
	}

	records, err := handler.auditService.List(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: "list query failed"})
		return
	}

	listResponse := []OperationRecordResponse{}
	for _, record := range records {
		listResponse = append(listResponse, OperationRecordResponse{
			ID:              record.ID,
			Variant:         record.Variant,
			Operation:       record.Operation,
			InputSize:       record.InputSize,
			OutputSize:      record.OutputSize,
			Outcome:         record.Outcome,
			ErrorKind:       record.ErrorKind,
			DateTimeCreated: record.DateTimeCreated,
		})
	}

	ctx.JSON(http.StatusOK, listResponse)
}
