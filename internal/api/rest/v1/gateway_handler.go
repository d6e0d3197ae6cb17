package v1

import (
	"net/http"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GatewayHandler defines the interface for the one-shot gateway operations
type GatewayHandler interface {
	ListVariants(ctx *gin.Context)
	Compute(ctx *gin.Context)
	Verify(ctx *gin.Context)
	GenerateKeyPair(ctx *gin.Context)
	DeriveSharedSecret(ctx *gin.Context)
}

// gatewayHandler struct holds the services
type gatewayHandler struct {
	gatewayService gateway.GatewayService
	auditor        *operationAuditor
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(gatewayService gateway.GatewayService, auditService gateway.AuditService, logger logger.Logger) GatewayHandler {
	return &gatewayHandler{
		gatewayService: gatewayService,
		auditor:        newOperationAuditor(auditService, logger),
	}
}

// ListVariants handles the GET request listing every registered variant
// @Summary List supported variants
// @Tags Gateway
// @Produce json
// @Success 200 {array} gateway.VariantInfo
// @Router /variants [get]
func (handler *gatewayHandler) ListVariants(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.gatewayService.Variants())
}

// Compute handles the POST request running a one-shot primitive
// @Summary Compute a digest, MAC, ciphertext, password hash or signature
// @Tags Gateway
// @Accept json
// @Produce json
// @Param requestBody body ComputeRequest true "Variant, parameters and input"
// @Success 200 {object} ComputeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /compute [post]
func (handler *gatewayHandler) Compute(ctx *gin.Context) {
	variant, params, request, ok := bindCompute(ctx)
	if !ok {
		return
	}
	defer params.Wipe()

	output, err := handler.gatewayService.Compute(ctx.Request.Context(), variant, params, request.Input)
	handler.auditor.record(ctx.Request.Context(), variant, OperationCompute, len(request.Input), len(output), err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ComputeResponse{Output: output})
}

// Verify handles the POST request checking a tag, password hash or signature
// @Summary Verify a MAC tag, password hash or signature
// @Tags Gateway
// @Accept json
// @Produce json
// @Param requestBody body ComputeRequest true "Variant, parameters and input"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Router /verify [post]
func (handler *gatewayHandler) Verify(ctx *gin.Context) {
	variant, params, request, ok := bindCompute(ctx)
	if !ok {
		return
	}
	defer params.Wipe()

	valid, err := handler.gatewayService.Verify(ctx.Request.Context(), variant, params, request.Input)
	handler.auditor.record(ctx.Request.Context(), variant, OperationVerify, len(request.Input), 0, err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{Valid: valid})
}

// GenerateKeyPair handles the POST request creating fresh key material
// @Summary Generate a key pair
// @Tags Gateway
// @Accept json
// @Produce json
// @Param requestBody body KeyPairRequest true "Variant and optional RSA key size"
// @Success 201 {object} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Router /keypairs [post]
func (handler *gatewayHandler) GenerateKeyPair(ctx *gin.Context) {
	var request KeyPairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid key pair request", err)
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

	pair, err := handler.gatewayService.GenerateKeyPair(ctx.Request.Context(), variant, &gateway.ParameterSet{KeyBits: request.KeyBits})
	outputSize := 0
	if pair != nil {
		outputSize = len(pair.PrivateKey) + len(pair.PublicKey)
	}
	handler.auditor.record(ctx.Request.Context(), variant, OperationGenerateKeyPair, 0, outputSize, err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, KeyPairResponse{
		Variant:    variant.String(),
		PrivateKey: pair.PrivateKey,
		PublicKey:  pair.PublicKey,
	})
}

// DeriveSharedSecret handles the POST request running key agreement
// @Summary Derive a shared secret
// @Tags Gateway
// @Accept json
// @Produce json
// @Param requestBody body SharedSecretRequest true "Variant, own private key and peer public key"
// @Success 200 {object} SharedSecretResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /shared-secrets [post]
func (handler *gatewayHandler) DeriveSharedSecret(ctx *gin.Context) {
	var request SharedSecretRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid shared secret request", err)
		return
	}
	defer clear(request.PrivateKey)
	if err := request.Validate(); err != nil {
		badRequest(ctx, "validation failed", err)
		return
	}

	variant, err := gateway.ParseVariant(request.Variant)
	if err != nil {
		writeError(ctx, err)
		return
	}

	secret, err := handler.gatewayService.DeriveSharedSecret(ctx.Request.Context(), variant, request.PrivateKey, request.PeerPublicKey)
	handler.auditor.record(ctx.Request.Context(), variant, OperationDeriveSharedSecret, len(request.PeerPublicKey), len(secret), err)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SharedSecretResponse{SharedSecret: secret})
}

// bindCompute decodes and validates a ComputeRequest. On failure it has
// already written the response.
func bindCompute(ctx *gin.Context) (gateway.Variant, *gateway.ParameterSet, *ComputeRequest, bool) {
	var request ComputeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid request body", err)
		return gateway.VariantUnknown, nil, nil, false
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, "validation failed", err)
		return gateway.VariantUnknown, nil, nil, false
	}

	variant, err := gateway.ParseVariant(request.Variant)
	if err != nil {
		writeError(ctx, err)
		return gateway.VariantUnknown, nil, nil, false
	}
	params, err := request.Params.ToDomain()
	if err != nil {
		writeError(ctx, err)
		return gateway.VariantUnknown, nil, nil, false
	}
	return variant, params, &request, true
}
