package cryptography

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// GenerateKeys generates an RSA key pair with the specified bit size.
// Supported sizes: 2048, 3072, 4096 bits.
func (r *rsaProcessor) GenerateKeys(keySize int) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	switch keySize {
	case 2048, 3072, 4096:
	default:
		return nil, nil, fmt.Errorf("unsupported RSA key size %d", keySize)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	publicKey := &privateKey.PublicKey
	r.logger.Info("Generated RSA key pairs bits=", keySize)
	return privateKey, publicKey, nil
}

// MarshalKeys encodes a private key as PKCS#8 DER and its public key as SPKI DER.
func (r *rsaProcessor) MarshalKeys(privateKey *rsa.PrivateKey) ([]byte, []byte, error) {
	if privateKey == nil {
		return nil, nil, errors.New("private key cannot be nil")
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		SecureZero(privDER)
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return privDER, pubDER, nil
}

// ParsePrivateKey parses PKCS#8 first, then PKCS#1.
func (r *rsaProcessor) ParsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if parsed, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		privateKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: private key is not of type RSA", ErrMalformedKey)
		}
		return privateKey, nil
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse private key in either PKCS#8 or PKCS#1 format", ErrMalformedKey)
	}
	return privateKey, nil
}

// ParsePublicKey parses SPKI first, then PKCS#1.
func (r *rsaProcessor) ParsePublicKey(der []byte) (*rsa.PublicKey, error) {
	if parsed, err := x509.ParsePKIXPublicKey(der); err == nil {
		publicKey, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: public key is not of type RSA", ErrMalformedKey)
		}
		return publicKey, nil
	}

	publicKey, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse public key in either SPKI or PKCS#1 format", ErrMalformedKey)
	}
	return publicKey, nil
}

// Encrypt encrypts plaintext using RSA-OAEP. The same hash is used for MGF1.
func (r *rsaProcessor) Encrypt(hash gateway.Variant, publicKey *rsa.PublicKey, plaintext, label []byte) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	h, err := oaepHash(hash)
	if err != nil {
		return nil, err
	}

	ciphertext, err := rsa.EncryptOAEP(h.New(), rand.Reader, publicKey, plaintext, label)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	r.logger.Debug("RSA-OAEP encryption succeeded hash=", hash)
	return ciphertext, nil
}

// Decrypt decrypts RSA-OAEP ciphertext using the private key.
func (r *rsaProcessor) Decrypt(hash gateway.Variant, privateKey *rsa.PrivateKey, ciphertext, label []byte) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	h, err := oaepHash(hash)
	if err != nil {
		return nil, err
	}

	plaintext, err := rsa.DecryptOAEP(h.New(), nil, privateKey, ciphertext, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	r.logger.Debug("RSA-OAEP decryption succeeded hash=", hash)
	return plaintext, nil
}

// Sign hashes message and signs it with RSA-PSS or RSA-PKCS#1 v1.5.
func (r *rsaProcessor) Sign(scheme, hash gateway.Variant, privateKey *rsa.PrivateKey, message []byte) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	h, err := signatureHash(hash)
	if err != nil {
		return nil, err
	}
	digest := hashMessage(h, message)

	var signature []byte
	switch scheme {
	case gateway.RSAPSS:
		signature, err = rsa.SignPSS(rand.Reader, privateKey, h, digest, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
	case gateway.RSAPKCS1v15:
		signature, err = rsa.SignPKCS1v15(nil, privateKey, h, digest)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	r.logger.Debug("RSA signing succeeded scheme=", scheme)
	return signature, nil
}

// Verify reports whether signature is a valid signature over message.
func (r *rsaProcessor) Verify(scheme, hash gateway.Variant, publicKey *rsa.PublicKey, message, signature []byte) (bool, error) {
	if publicKey == nil {
		return false, errors.New("public key cannot be nil")
	}
	h, err := signatureHash(hash)
	if err != nil {
		return false, err
	}
	digest := hashMessage(h, message)

	switch scheme {
	case gateway.RSAPSS:
		err = rsa.VerifyPSS(publicKey, h, digest, signature, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto})
	case gateway.RSAPKCS1v15:
		err = rsa.VerifyPKCS1v15(publicKey, h, digest, signature)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedVariant, scheme)
	}

	r.logger.Debug("RSA verification done scheme=", scheme, " valid=", err == nil)
	return err == nil, nil
}

func oaepHash(v gateway.Variant) (crypto.Hash, error) {
	switch v {
	case gateway.SHA1:
		return crypto.SHA1, nil
	case gateway.VariantUnknown, gateway.SHA256:
		return crypto.SHA256, nil
	case gateway.SHA384:
		return crypto.SHA384, nil
	case gateway.SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported OAEP hash %s", v)
	}
}

func signatureHash(v gateway.Variant) (crypto.Hash, error) {
	switch v {
	case gateway.VariantUnknown, gateway.SHA256:
		return crypto.SHA256, nil
	case gateway.SHA384:
		return crypto.SHA384, nil
	case gateway.SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported signature hash %s", v)
	}
}

func hashMessage(h crypto.Hash, message []byte) []byte {
	hasher := h.New()
	hasher.Write(message)
	return hasher.Sum(nil)
}
