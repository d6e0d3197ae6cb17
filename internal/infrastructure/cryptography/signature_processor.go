package cryptography

import (
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	defaultRSAKeyBits = 2048
	ecdsaDigestSize   = 32
)

// signatureProcessor struct that implements the SignatureProcessor interface
type signatureProcessor struct {
	ecdsa  cryptoalg.ECDSAProcessor
	rsa    cryptoalg.RSAProcessor
	logger logger.Logger
}

// NewSignatureProcessor creates and returns a new instance of signatureProcessor
func NewSignatureProcessor(ecdsaProcessor cryptoalg.ECDSAProcessor, rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (cryptoalg.SignatureProcessor, error) {
	if ecdsaProcessor == nil || rsaProcessor == nil {
		return nil, fmt.Errorf("ecdsa and rsa processors are required")
	}
	return &signatureProcessor{
		ecdsa:  ecdsaProcessor,
		rsa:    rsaProcessor,
		logger: logger,
	}, nil
}

// GenerateKeyPair creates key material for signature variants and RSA-OAEP.
func (p *signatureProcessor) GenerateKeyPair(variant gateway.Variant, params *gateway.ParameterSet) (*gateway.KeyPair, error) {
	switch variant {
	case gateway.ECDSAP256:
		priv, pub, err := p.ecdsa.GenerateKeys(elliptic.P256())
		if err != nil {
			return nil, err
		}
		privBytes, err := priv.Bytes()
		if err != nil {
			return nil, fmt.Errorf("failed to encode private key: %w", err)
		}
		pubBytes, err := pub.Bytes()
		if err != nil {
			return nil, fmt.Errorf("failed to encode public key: %w", err)
		}
		return &gateway.KeyPair{Variant: variant, PrivateKey: privBytes, PublicKey: pubBytes}, nil
	case gateway.ECDSASecp256k1:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
		}
		defer priv.Zero()
		return &gateway.KeyPair{
			Variant:    variant,
			PrivateKey: priv.Serialize(),
			PublicKey:  priv.PubKey().SerializeUncompressed(),
		}, nil
	case gateway.Ed25519:
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
		}
		seed := append([]byte{}, priv.Seed()...)
		SecureZero(priv)
		return &gateway.KeyPair{Variant: variant, PrivateKey: seed, PublicKey: pub}, nil
	case gateway.RSAPSS, gateway.RSAPKCS1v15, gateway.RSAOAEP:
		bits := defaultRSAKeyBits
		if params != nil && params.KeyBits != 0 {
			bits = params.KeyBits
		}
		priv, _, err := p.rsa.GenerateKeys(bits)
		if err != nil {
			return nil, err
		}
		privDER, pubDER, err := p.rsa.MarshalKeys(priv)
		if err != nil {
			return nil, err
		}
		return &gateway.KeyPair{Variant: variant, PrivateKey: privDER, PublicKey: pubDER}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
}

// Sign signs message with the private key in params.Key. ECDSA variants sign
// a 32-byte digest supplied by the caller.
func (p *signatureProcessor) Sign(variant gateway.Variant, params *gateway.ParameterSet, message []byte) ([]byte, error) {
	if params == nil || len(params.Key) == 0 {
		return nil, fmt.Errorf("a private key is required for %s", variant)
	}

	switch variant {
	case gateway.ECDSAP256:
		digest, err := ecdsaDigest(message)
		if err != nil {
			return nil, err
		}
		priv, err := p.ecdsa.ParsePrivateKey(elliptic.P256(), params.Key)
		if err != nil {
			return nil, err
		}
		return p.ecdsa.Sign(digest, priv)
	case gateway.ECDSASecp256k1:
		digest, err := ecdsaDigest(message)
		if err != nil {
			return nil, err
		}
		priv, err := parseSecp256k1PrivateKey(params.Key)
		if err != nil {
			return nil, err
		}
		defer priv.Zero()
		return secpecdsa.Sign(priv, digest).Serialize(), nil
	case gateway.Ed25519:
		if len(params.Key) != ed25519.SeedSize {
			return nil, fmt.Errorf("%w: ed25519 seed must be %d bytes", ErrMalformedKey, ed25519.SeedSize)
		}
		priv := ed25519.NewKeyFromSeed(params.Key)
		defer SecureZero(priv)
		return ed25519.Sign(priv, message), nil
	case gateway.RSAPSS, gateway.RSAPKCS1v15:
		priv, err := p.rsa.ParsePrivateKey(params.Key)
		if err != nil {
			return nil, err
		}
		return p.rsa.Sign(variant, params.Hash, priv, message)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
}

// Verify checks params.Signature over message with the public key in params.Key.
// Malformed signatures verify as false; malformed keys are errors.
func (p *signatureProcessor) Verify(variant gateway.Variant, params *gateway.ParameterSet, message []byte) (bool, error) {
	if params == nil || len(params.Key) == 0 {
		return false, fmt.Errorf("a public key is required for %s", variant)
	}

	switch variant {
	case gateway.ECDSAP256:
		digest, err := ecdsaDigest(message)
		if err != nil {
			return false, err
		}
		pub, err := p.ecdsa.ParsePublicKey(elliptic.P256(), params.Key)
		if err != nil {
			return false, err
		}
		return p.ecdsa.Verify(digest, params.Signature, pub)
	case gateway.ECDSASecp256k1:
		digest, err := ecdsaDigest(message)
		if err != nil {
			return false, err
		}
		pub, err := secp256k1.ParsePubKey(params.Key)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		sig, err := secpecdsa.ParseDERSignature(params.Signature)
		if err != nil {
			return false, nil
		}
		return sig.Verify(digest, pub), nil
	case gateway.Ed25519:
		if len(params.Key) != ed25519.PublicKeySize {
			return false, fmt.Errorf("%w: ed25519 public key must be %d bytes", ErrMalformedKey, ed25519.PublicKeySize)
		}
		return ed25519.Verify(params.Key, message, params.Signature), nil
	case gateway.RSAPSS, gateway.RSAPKCS1v15:
		pub, err := p.rsa.ParsePublicKey(params.Key)
		if err != nil {
			return false, err
		}
		return p.rsa.Verify(variant, params.Hash, pub, message, params.Signature)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
}

func parseSecp256k1PrivateKey(scalar []byte) (*secp256k1.PrivateKey, error) {
	if len(scalar) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: secp256k1 scalar must be %d bytes", ErrInvalidPoint, secp256k1.PrivKeyBytesLen)
	}
	var k secp256k1.ModNScalar
	overflow := k.SetByteSlice(scalar)
	if overflow || k.IsZero() {
		k.Zero()
		return nil, fmt.Errorf("%w: secp256k1 scalar out of range", ErrInvalidPoint)
	}
	return secp256k1.NewPrivateKey(&k), nil
}

// ecdsaDigest checks that an ECDSA message is a pre-hashed 32-byte digest.
func ecdsaDigest(message []byte) ([]byte, error) {
	if len(message) != ecdsaDigestSize {
		return nil, fmt.Errorf("ecdsa input must be a %d-byte digest, got %d bytes", ecdsaDigestSize, len(message))
	}
	return message, nil
}
