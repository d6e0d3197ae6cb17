package cryptoalg

import "github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

// PasswordProcessor hashes and verifies passwords and derives keys.
type PasswordProcessor interface {
	// Hash returns a self-describing encoded hash for password variants and
	// raw key bytes for HKDF.
	Hash(variant gateway.Variant, params *gateway.ParameterSet, password []byte) ([]byte, error)

	// Verify checks password against params.EncodedHash in constant time.
	Verify(variant gateway.Variant, params *gateway.ParameterSet, password []byte) (bool, error)
}

// Cost ceilings shared by parameter validation and encoded-hash parsing, so
// every hash the gateway computes is one it can verify.
const (
	MaxArgon2TimeCost   = 10
	MaxArgon2MemoryCost = 4 * 1024 * 1024
	MaxArgon2Threads    = 255
	MaxPBKDF2Iterations = 10_000_000
	MaxScryptLogN       = 20
	MaxScryptR          = 32
	MaxScryptP          = 16
)
