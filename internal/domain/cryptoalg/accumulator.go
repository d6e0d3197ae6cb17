package cryptoalg

import "github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

// Accumulator is the mutable state of one streaming hash or MAC computation.
// It is owned by exactly one session.
type Accumulator interface {
	// Variant returns the variant the accumulator was built for.
	Variant() gateway.Variant

	// Write absorbs input. It never fails.
	Write(p []byte)

	// Sum produces the output and leaves the accumulator unusable.
	// A length of zero selects the variant default.
	Sum(length int) ([]byte, error)

	// Wipe zeroizes any key material held by the accumulator.
	Wipe()
}
