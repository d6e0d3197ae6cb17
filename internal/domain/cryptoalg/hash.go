package cryptoalg

import "github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

// HashProcessor computes digests for the hash family, including keyed,
// derive-key and extendable-output modes.
type HashProcessor interface {
	// Digest hashes input in one shot. HashLength selects XOF or truncated output.
	Digest(variant gateway.Variant, params *gateway.ParameterSet, input []byte) ([]byte, error)

	// NewAccumulator returns streaming state equivalent to Digest.
	NewAccumulator(variant gateway.Variant, params *gateway.ParameterSet) (Accumulator, error)
}

// MACProcessor computes message authentication codes (HMAC over an inner hash, AES-CMAC).
type MACProcessor interface {
	// Compute returns the tag of input under params.Key.
	Compute(variant gateway.Variant, params *gateway.ParameterSet, input []byte) ([]byte, error)

	// Verify compares params.Tag against the tag of input in constant time.
	Verify(variant gateway.Variant, params *gateway.ParameterSet, input []byte) (bool, error)

	// NewAccumulator returns streaming state equivalent to Compute.
	NewAccumulator(variant gateway.Variant, params *gateway.ParameterSet) (Accumulator, error)
}
