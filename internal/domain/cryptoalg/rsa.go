package cryptoalg

import (
	"crypto/rsa"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
)

// RSAProcessor handles RSA encryption (OAEP) and signatures (PSS, PKCS#1 v1.5).
// Keys travel as DER: PKCS#8 or PKCS#1 private keys, SPKI or PKCS#1 public keys.
type RSAProcessor interface {
	// GenerateKeys generates an RSA key pair with the specified bit size.
	GenerateKeys(keySize int) (*rsa.PrivateKey, *rsa.PublicKey, error)

	// MarshalKeys encodes a private key as PKCS#8 DER and its public key as SPKI DER.
	MarshalKeys(privateKey *rsa.PrivateKey) ([]byte, []byte, error)

	// ParsePrivateKey parses PKCS#8 first, then PKCS#1.
	ParsePrivateKey(der []byte) (*rsa.PrivateKey, error)

	// ParsePublicKey parses SPKI first, then PKCS#1.
	ParsePublicKey(der []byte) (*rsa.PublicKey, error)

	// Encrypt encrypts plaintext using RSA-OAEP with the given hash and optional label.
	Encrypt(hash gateway.Variant, publicKey *rsa.PublicKey, plaintext, label []byte) ([]byte, error)

	// Decrypt decrypts RSA-OAEP ciphertext.
	Decrypt(hash gateway.Variant, privateKey *rsa.PrivateKey, ciphertext, label []byte) ([]byte, error)

	// Sign signs the hash of message with RSA-PSS or RSA-PKCS#1 v1.5.
	Sign(scheme, hash gateway.Variant, privateKey *rsa.PrivateKey, message []byte) ([]byte, error)

	// Verify reports whether signature is valid. A malformed signature is not an error.
	Verify(scheme, hash gateway.Variant, publicKey *rsa.PublicKey, message, signature []byte) (bool, error)
}
