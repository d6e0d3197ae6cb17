package cryptoalg

import (
	"crypto/ecdsa"
	"crypto/elliptic"
)

// ECDSAProcessor handles ECDSA over the NIST curves supported by crypto/ecdsa.
// Signatures are ASN.1 DER; messages are pre-hashed digests.
type ECDSAProcessor interface {
	// GenerateKeys generates an ECDSA key pair on the specified elliptic curve.
	GenerateKeys(curve elliptic.Curve) (*ecdsa.PrivateKey, *ecdsa.PublicKey, error)

	// Sign signs digest and returns a DER signature.
	Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error)

	// Verify verifies a DER signature over digest.
	Verify(digest, signature []byte, publicKey *ecdsa.PublicKey) (bool, error)

	// ParsePrivateKey parses a raw big-endian scalar.
	ParsePrivateKey(curve elliptic.Curve, scalar []byte) (*ecdsa.PrivateKey, error)

	// ParsePublicKey parses an uncompressed SEC1 point.
	ParsePublicKey(curve elliptic.Curve, point []byte) (*ecdsa.PublicKey, error)
}
