package cryptoalg

import "github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

// CipherProcessor handles symmetric encryption: AEAD, stream and block modes.
// AEAD output is ciphertext followed by the tag, except AES-SIV which
// prepends its synthetic IV.
type CipherProcessor interface {
	// Encrypt encrypts plaintext with params.Key and params.Nonce.
	Encrypt(variant gateway.Variant, params *gateway.ParameterSet, plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt and fails closed on tag or padding errors.
	Decrypt(variant gateway.Variant, params *gateway.ParameterSet, ciphertext []byte) ([]byte, error)
}
