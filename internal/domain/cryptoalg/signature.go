package cryptoalg

import "github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

// SignatureProcessor signs and verifies for every signature variant. params.Key
// holds the private key when signing and the public key when verifying.
type SignatureProcessor interface {
	GenerateKeyPair(variant gateway.Variant, params *gateway.ParameterSet) (*gateway.KeyPair, error)
	Sign(variant gateway.Variant, params *gateway.ParameterSet, message []byte) ([]byte, error)
	Verify(variant gateway.Variant, params *gateway.ParameterSet, message []byte) (bool, error)
}

// KeyAgreementProcessor generates ephemeral key pairs and derives shared secrets.
type KeyAgreementProcessor interface {
	GenerateKeyPair(variant gateway.Variant) (*gateway.KeyPair, error)
	DeriveSharedSecret(variant gateway.Variant, privateKey, peerPublicKey []byte) ([]byte, error)
}
