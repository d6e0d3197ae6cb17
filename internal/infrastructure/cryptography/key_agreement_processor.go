package cryptography

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"golang.org/x/crypto/curve25519"
)

// keyAgreementProcessor struct that implements the KeyAgreementProcessor interface
type keyAgreementProcessor struct {
	logger logger.Logger
}

// NewKeyAgreementProcessor creates and returns a new instance of keyAgreementProcessor
func NewKeyAgreementProcessor(logger logger.Logger) (cryptoalg.KeyAgreementProcessor, error) {
	return &keyAgreementProcessor{
		logger: logger,
	}, nil
}

// GenerateKeyPair returns a raw private scalar and its public key.
// NIST public keys are uncompressed SEC1 points.
func (p *keyAgreementProcessor) GenerateKeyPair(variant gateway.Variant) (*gateway.KeyPair, error) {
	curve, err := ecdhCurve(variant)
	if err != nil {
		return nil, err
	}
	priv, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s key: %w", variant, err)
	}

	p.logger.Info("Generated key agreement key pair variant=", variant)
	return &gateway.KeyPair{
		Variant:    variant,
		PrivateKey: priv.Bytes(),
		PublicKey:  priv.PublicKey().Bytes(),
	}, nil
}

// DeriveSharedSecret computes the raw shared secret. Peer points off the curve
// and X25519 low-order points are rejected.
func (p *keyAgreementProcessor) DeriveSharedSecret(variant gateway.Variant, privateKey, peerPublicKey []byte) ([]byte, error) {
	if variant == gateway.X25519 {
		if len(privateKey) != curve25519.ScalarSize || len(peerPublicKey) != curve25519.PointSize {
			return nil, fmt.Errorf("%w: x25519 keys must be %d bytes", ErrInvalidPoint, curve25519.ScalarSize)
		}
		// X25519 returns an error for the all-zero output of low-order points
		secret, err := curve25519.X25519(privateKey, peerPublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		return secret, nil
	}

	curve, err := ecdhCurve(variant)
	if err != nil {
		return nil, err
	}
	priv, err := curve.NewPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	peer, err := curve.NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	secret, err := priv.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	p.logger.Debug("Derived shared secret variant=", variant)
	return secret, nil
}

func ecdhCurve(variant gateway.Variant) (ecdh.Curve, error) {
	switch variant {
	case gateway.ECDHP256:
		return ecdh.P256(), nil
	case gateway.ECDHP384:
		return ecdh.P384(), nil
	case gateway.X25519:
		return ecdh.X25519(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
}
