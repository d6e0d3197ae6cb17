package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SessionHandler defines the interface for streaming session operations
type SessionHandler interface {
	Open(ctx *gin.Context)
	Update(ctx *gin.Context)
	Finalize(ctx *gin.Context)
	Abandon(ctx *gin.Context)
}

// sessionHandler struct holds the services
type sessionHandler struct {
	sessionService gateway.SessionService
	auditor        *operationAuditor
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService gateway.SessionService, auditService gateway.AuditService, logger logger.Logger) SessionHandler {
	return &sessionHandler{
		sessionService: sessionService,
		auditor:        newOperationAuditor(auditService, logger),
	}
}

// Open handles the POST request opening a streaming session
// @Summary Open a streaming hash or MAC session
// @Tags Session
// @Accept json
// @Produce json
// @Param requestBody body OpenSessionRequest true "Variant and parameters"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (handler *sessionHandler) Open(ctx *gin.Context) {
	var request OpenSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid session request", err)
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, "validation failed", err)
		return
	}

	variant, err := gateway.ParseVariant(request.Variant)
	if err != nil {
		writeError(ctx, err)
		return
	}
	params, err := request.Params.ToDomain()
	if err != nil {
		writeError(ctx, err)
		return
	}
	defer params.Wipe()

	id, err := handler.sessionService.Open(ctx.Request.Context(), variant, params)
	handler.auditor.record(ctx.Request.Context(), variant, OperationOpenSession, 0, 0, err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, SessionResponse{ID: id, Variant: variant.String()})
}

// Update handles the POST request feeding a chunk into a session
// @Summary Feed a chunk into a session
// @Tags Session
// @Accept json
// @Param id path string true "Session ID"
// @Param requestBody body UpdateSessionRequest true "Chunk"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/update [post]
func (handler *sessionHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var request UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid update request", err)
		return
	}

	variant, _ := handler.sessionService.Variant(id)
	err := handler.sessionService.Update(ctx.Request.Context(), id, request.Chunk)
	handler.auditor.record(ctx.Request.Context(), variant, OperationUpdateSession, len(request.Chunk), 0, err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Finalize handles the POST request producing a session's output
// @Summary Finalize a session
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param requestBody body FinalizeSessionRequest false "Optional output length"
// @Success 200 {object} ComputeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/finalize [post]
func (handler *sessionHandler) Finalize(ctx *gin.Context) {
	id := ctx.Param("id")

	var request FinalizeSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "invalid finalize request", err)
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, "validation failed", err)
		return
	}

	variant, _ := handler.sessionService.Variant(id)
	output, err := handler.sessionService.Finalize(ctx.Request.Context(), id, request.HashLength)
	handler.auditor.record(ctx.Request.Context(), variant, OperationFinalizeSession, 0, len(output), err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ComputeResponse{Output: output})
}

// Abandon handles the DELETE request discarding a session
// @Summary Abandon a session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (handler *sessionHandler) Abandon(ctx *gin.Context) {
	id := ctx.Param("id")

	variant, _ := handler.sessionService.Variant(id)
	err := handler.sessionService.Abandon(ctx.Request.Context(), id)
	handler.auditor.record(ctx.Request.Context(), variant, OperationAbandonSession, 0, 0, err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
