package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// gatewayService implements the GatewayService interface by dispatching each
// variant to the processor of its family
type gatewayService struct {
	validator  *Validator
	processors cryptoalg.Processors
	logger     logger.Logger
}

// NewGatewayService creates a new gatewayService instance
func NewGatewayService(processors *cryptoalg.Processors, logger logger.Logger) (gateway.GatewayService, error) {
	if processors == nil || processors.Hash == nil || processors.MAC == nil || processors.Cipher == nil ||
		processors.Password == nil || processors.RSA == nil || processors.Signature == nil || processors.KeyAgreement == nil {
		return nil, fmt.Errorf("a processor for every family is required")
	}
	return &gatewayService{
		validator:  NewValidator(),
		processors: *processors,
		logger:     logger,
	}, nil
}

// Compute validates params against the variant's rule and runs the one-shot primitive.
func (s *gatewayService) Compute(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet, input []byte) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, normalize(variant, err)
	}

	owned := params.Clone()
	defer owned.Wipe()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered panic in ", variant, " compute")
			out, err = nil, recovered(variant, r)
		}
	}()

	if err := s.validator.Validate(variant, owned, input); err != nil {
		return nil, normalize(variant, err)
	}

	switch variant.Family() {
	case gateway.FamilyHash:
		out, err = s.processors.Hash.Digest(variant, owned, input)
	case gateway.FamilyMAC:
		out, err = s.processors.MAC.Compute(variant, owned, input)
	case gateway.FamilyCipher:
		if owned.EffectiveOperation() == gateway.OperationDecrypt {
			out, err = s.processors.Cipher.Decrypt(variant, owned, input)
		} else {
			out, err = s.processors.Cipher.Encrypt(variant, owned, input)
		}
	case gateway.FamilyPassword:
		out, err = s.processors.Password.Hash(variant, owned, input)
	case gateway.FamilyAsymmetricEncryption:
		out, err = s.computeOAEP(owned, input)
	case gateway.FamilySignature:
		out, err = s.processors.Signature.Sign(variant, owned, input)
	case gateway.FamilyKeyAgreement:
		return nil, gateway.NewInvalidParameter(variant, "variant", "key agreement variants derive shared secrets, not one-shot outputs")
	default:
		return nil, gateway.NewUnsupportedVariant(variant, "no family bound to variant")
	}

	if err != nil {
		err = normalize(variant, err)
		s.logger.Warn("Compute failed for ", variant, ": ", gateway.KindOf(err))
		return nil, err
	}
	return out, nil
}

// Verify checks a MAC tag, an encoded password hash or a signature.
func (s *gatewayService) Verify(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet, input []byte) (valid bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, normalize(variant, err)
	}

	owned := params.Clone()
	defer owned.Wipe()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered panic in ", variant, " verify")
			valid, err = false, recovered(variant, r)
		}
	}()

	if err := s.validator.ValidateVerify(variant, owned, input); err != nil {
		return false, normalize(variant, err)
	}

	switch variant.Family() {
	case gateway.FamilyMAC:
		valid, err = s.processors.MAC.Verify(variant, owned, input)
	case gateway.FamilyPassword:
		valid, err = s.processors.Password.Verify(variant, owned, input)
	case gateway.FamilySignature:
		valid, err = s.processors.Signature.Verify(variant, owned, input)
	default:
		return false, gateway.NewUnsupportedVariant(variant, "no verifier bound to variant")
	}

	if err != nil {
		return false, normalize(variant, err)
	}
	return valid, nil
}

// OpenSession validates params and allocates the variant's accumulator.
func (s *gatewayService) OpenSession(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (sess gateway.Session, err error) {
	if err := ctx.Err(); err != nil {
		return nil, normalize(variant, err)
	}

	owned := params.Clone()
	defer func() {
		if r := recover(); r != nil {
			owned.Wipe()
			sess, err = nil, recovered(variant, r)
		}
	}()

	if err := s.validator.ValidateOpen(variant, owned); err != nil {
		owned.Wipe()
		return nil, normalize(variant, err)
	}

	var acc cryptoalg.Accumulator
	switch variant.Family() {
	case gateway.FamilyHash:
		acc, err = s.processors.Hash.NewAccumulator(variant, owned)
	case gateway.FamilyMAC:
		acc, err = s.processors.MAC.NewAccumulator(variant, owned)
	default:
		owned.Wipe()
		return nil, gateway.NewUnsupportedVariant(variant, "no accumulator bound to variant")
	}
	if err != nil {
		owned.Wipe()
		return nil, normalize(variant, err)
	}

	s.logger.Debug("Opened ", variant, " session")
	return newSession(variant, owned, acc, s.validator, s.logger), nil
}

// GenerateKeyPair creates key material for signature, RSA-OAEP and key agreement variants.
func (s *gatewayService) GenerateKeyPair(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (pair *gateway.KeyPair, err error) {
	if err := ctx.Err(); err != nil {
		return nil, normalize(variant, err)
	}

	owned := params.Clone()
	defer func() {
		if r := recover(); r != nil {
			pair, err = nil, recovered(variant, r)
		}
	}()

	if err := s.validator.ValidateKeyGeneration(variant, owned); err != nil {
		return nil, normalize(variant, err)
	}

	switch variant.Family() {
	case gateway.FamilySignature, gateway.FamilyAsymmetricEncryption:
		pair, err = s.processors.Signature.GenerateKeyPair(variant, owned)
	case gateway.FamilyKeyAgreement:
		pair, err = s.processors.KeyAgreement.GenerateKeyPair(variant)
	default:
		return nil, gateway.NewUnsupportedVariant(variant, "no key generator bound to variant")
	}
	if err != nil {
		return nil, normalize(variant, err)
	}
	return pair, nil
}

// DeriveSharedSecret runs ECDH or X25519 between privateKey and peerPublicKey.
func (s *gatewayService) DeriveSharedSecret(ctx context.Context, variant gateway.Variant, privateKey, peerPublicKey []byte) (secret []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, normalize(variant, err)
	}

	defer func() {
		if r := recover(); r != nil {
			secret, err = nil, recovered(variant, r)
		}
	}()

	if err := s.validator.ValidateKeyAgreement(variant, privateKey, peerPublicKey); err != nil {
		return nil, normalize(variant, err)
	}

	secret, err = s.processors.KeyAgreement.DeriveSharedSecret(variant, privateKey, peerPublicKey)
	if err != nil {
		return nil, normalize(variant, err)
	}
	return secret, nil
}

// Variants lists every registered variant.
func (s *gatewayService) Variants() []gateway.VariantInfo {
	return s.validator.Info()
}

// computeOAEP parses the DER key for the requested direction and checks the
// OAEP length bounds against its modulus before running the primitive.
func (s *gatewayService) computeOAEP(params *gateway.ParameterSet, input []byte) ([]byte, error) {
	if params.EffectiveOperation() == gateway.OperationDecrypt {
		privateKey, err := s.processors.RSA.ParsePrivateKey(params.Key)
		if err != nil {
			return nil, err
		}
		if len(input) != privateKey.Size() {
			return nil, gateway.NewInvalidParameter(gateway.RSAOAEP, "input", fmt.Sprintf("ciphertext must be %d bytes, got %d", privateKey.Size(), len(input)))
		}
		return s.processors.RSA.Decrypt(params.Hash, privateKey, input, params.Label)
	}

	publicKey, err := s.processors.RSA.ParsePublicKey(params.Key)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateOAEPPlaintext(params.Hash, publicKey.Size(), len(input)); err != nil {
		return nil, err
	}
	return s.processors.RSA.Encrypt(params.Hash, publicKey, input, params.Label)
}
