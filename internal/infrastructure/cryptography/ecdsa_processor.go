package cryptography

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// ecdsaProcessor struct that implements the ECDSAProcessor interface
type ecdsaProcessor struct {
	logger logger.Logger
}

// NewECDSAProcessor creates and returns a new instance of ecdsaProcessor
func NewECDSAProcessor(logger logger.Logger) (cryptoalg.ECDSAProcessor, error) {
	return &ecdsaProcessor{
		logger: logger,
	}, nil
}

// GenerateKeys generates an ECDSA key pair on the specified elliptic curve.
// Supported curves: P-224, P-256, P-384 P-521.
func (e *ecdsaProcessor) GenerateKeys(curve elliptic.Curve) (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate elliptic curve keys: %w", err)
	}

	publicKey := &privateKey.PublicKey
	e.logger.Info("Generated EC key pairs curve=", curve.Params().Name)
	return privateKey, publicKey, nil
}

// Sign signs a pre-hashed digest and returns an ASN.1 DER signature.
func (e *ecdsaProcessor) Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}

	signature, err := ecdsa.SignASN1(rand.Reader, privateKey, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	e.logger.Debug("ECDSA signing succeeded")
	return signature, nil
}

// Verify verifies an ASN.1 DER signature. A malformed signature is reported
// as invalid, not as an error.
func (e *ecdsaProcessor) Verify(digest, signature []byte, publicKey *ecdsa.PublicKey) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("public key cannot be nil")
	}

	valid := ecdsa.VerifyASN1(publicKey, digest, signature)

	e.logger.Debug("ECDSA verification done valid=", valid)
	return valid, nil
}

// ParsePrivateKey parses a fixed-width big-endian scalar.
func (e *ecdsaProcessor) ParsePrivateKey(curve elliptic.Curve, scalar []byte) (*ecdsa.PrivateKey, error) {
	privateKey, err := ecdsa.ParseRawPrivateKey(curve, scalar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return privateKey, nil
}

// ParsePublicKey parses an uncompressed SEC1 point and checks it is on the curve.
func (e *ecdsaProcessor) ParsePublicKey(curve elliptic.Curve, point []byte) (*ecdsa.PublicKey, error) {
	publicKey, err := ecdsa.ParseUncompressedPublicKey(curve, point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return publicKey, nil
}
