package v1

import (
	"context"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// Audited operation names
const (
	OperationCompute            = "compute"
	OperationVerify             = "verify"
	OperationOpenSession        = "session_open"
	OperationUpdateSession      = "session_update"
	OperationFinalizeSession    = "session_finalize"
	OperationAbandonSession     = "session_abandon"
	OperationGenerateKeyPair    = "generate_keypair"
	OperationDeriveSharedSecret = "derive_shared_secret"
)

// operationAuditor writes one audit record per handled call. A nil service
// disables recording. Failures are logged and never reach the caller.
type operationAuditor struct {
	service gateway.AuditService
	logger  logger.Logger
}

func newOperationAuditor(service gateway.AuditService, logger logger.Logger) *operationAuditor {
	return &operationAuditor{service: service, logger: logger}
}

func (a *operationAuditor) record(ctx context.Context, variant gateway.Variant, operation string, inputSize, outputSize int, err error) {
	if a == nil || a.service == nil {
		return
	}

	record := &gateway.OperationRecord{
		Variant:    variant.String(),
		Operation:  operation,
		InputSize:  inputSize,
		OutputSize: outputSize,
		Outcome:    gateway.OutcomeSuccess,
	}
	if err != nil {
		record.Outcome = gateway.OutcomeFailure
		record.ErrorKind = gateway.KindOf(err).String()
	}

	if recordErr := a.service.Record(context.WithoutCancel(ctx), record); recordErr != nil && a.logger != nil {
		a.logger.Warn("Failed to record ", operation, " for ", variant, ": ", recordErr)
	}
}
