package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[gateway.Kind]int{
	gateway.KindInvalidParameter:      http.StatusBadRequest,
	gateway.KindOutputLengthExceeded:  http.StatusBadRequest,
	gateway.KindCryptoOperationFailed: http.StatusUnprocessableEntity,
	gateway.KindSessionClosed:         http.StatusNotFound,
	gateway.KindAlreadyFinalized:      http.StatusConflict,
	gateway.KindUnsupportedVariant:    http.StatusInternalServerError,
}

// statusFor maps a gateway error kind onto an HTTP status code.
func statusFor(err error) int {
	if status, ok := statusByKind[gateway.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err with the status of its kind. Only the gateway's own
// non-secret message is exposed.
func writeError(ctx *gin.Context, err error) {
	response := ErrorResponse{Message: "internal error"}
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		response = ErrorResponse{Message: gwErr.Error(), Kind: gwErr.Kind.String(), Field: gwErr.Field}
	}
	ctx.JSON(statusFor(err), response)
}

func badRequest(ctx *gin.Context, prefix string, err error) {
	ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: prefix + ": " + err.Error(), Kind: gateway.KindInvalidParameter.String()})
}
