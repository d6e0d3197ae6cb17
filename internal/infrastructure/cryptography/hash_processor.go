package cryptography

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/jzelinskie/whirlpool"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// BLAKE3 and SHAKE produce this many bytes when no length is requested.
const defaultXOFLength = 32

// hashProcessor struct that implements the HashProcessor interface
type hashProcessor struct {
	logger logger.Logger
}

// NewHashProcessor creates and returns a new instance of hashProcessor
func NewHashProcessor(logger logger.Logger) (cryptoalg.HashProcessor, error) {
	return &hashProcessor{
		logger: logger,
	}, nil
}

// Digest hashes input in one shot through the same accumulator a session uses.
func (p *hashProcessor) Digest(variant gateway.Variant, params *gateway.ParameterSet, input []byte) ([]byte, error) {
	acc, err := p.NewAccumulator(variant, params)
	if err != nil {
		return nil, err
	}
	acc.Write(input)

	length := 0
	if params != nil && params.HashLength != nil {
		length = *params.HashLength
	}
	out, err := acc.Sum(length)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Computed ", variant, " digest input_size=", len(input), " output_size=", len(out))
	return out, nil
}

// NewAccumulator builds the streaming state for a hash variant.
func (p *hashProcessor) NewAccumulator(variant gateway.Variant, params *gateway.ParameterSet) (cryptoalg.Accumulator, error) {
	if params == nil {
		params = &gateway.ParameterSet{}
	}

	switch variant {
	case gateway.BLAKE3:
		return newBLAKE3Accumulator(params)
	case gateway.SHAKE128:
		return &xofAccumulator{variant: variant, xof: shakeReader{sha3.NewShake128()}}, nil
	case gateway.SHAKE256:
		return &xofAccumulator{variant: variant, xof: shakeReader{sha3.NewShake256()}}, nil
	case gateway.BLAKE2b:
		size := blake2b.Size
		if params.HashLength != nil && *params.HashLength > 0 {
			size = *params.HashLength
		}
		key := cloneKey(params.KeyedKey)
		h, err := blake2b.New(size, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create blake2b state: %w", err)
		}
		return &digestAccumulator{variant: variant, h: h, key: key, exact: true}, nil
	case gateway.BLAKE2s:
		key := cloneKey(params.KeyedKey)
		h, err := blake2s.New256(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create blake2s state: %w", err)
		}
		return &digestAccumulator{variant: variant, h: h, key: key, exact: true}, nil
	case gateway.MD4, gateway.Whirlpool:
		h, err := NewFixedHash(variant)
		if err != nil {
			return nil, err
		}
		return &digestAccumulator{variant: variant, h: h}, nil
	default:
		h, err := NewFixedHash(variant)
		if err != nil {
			return nil, err
		}
		return &digestAccumulator{variant: variant, h: h, exact: true}, nil
	}
}

// NewFixedHash returns an unkeyed hash.Hash for a fixed-output hash variant.
func NewFixedHash(variant gateway.Variant) (hash.Hash, error) {
	switch variant {
	case gateway.MD4:
		return md4.New(), nil
	case gateway.MD5:
		return md5.New(), nil
	case gateway.RIPEMD160:
		return ripemd160.New(), nil
	case gateway.Whirlpool:
		return whirlpool.New(), nil
	case gateway.SHA1:
		return sha1.New(), nil
	case gateway.SHA224:
		return sha256.New224(), nil
	case gateway.SHA256:
		return sha256.New(), nil
	case gateway.SHA384:
		return sha512.New384(), nil
	case gateway.SHA512:
		return sha512.New(), nil
	case gateway.SHA512_224:
		return sha512.New512_224(), nil
	case gateway.SHA512_256:
		return sha512.New512_256(), nil
	case gateway.SHA3_224:
		return sha3.New224(), nil
	case gateway.SHA3_256:
		return sha3.New256(), nil
	case gateway.SHA3_384:
		return sha3.New384(), nil
	case gateway.SHA3_512:
		return sha3.New512(), nil
	case gateway.Keccak256:
		return sha3.NewLegacyKeccak256(), nil
	case gateway.Keccak512:
		return sha3.NewLegacyKeccak512(), nil
	case gateway.BLAKE2b:
		return blake2b.New512(nil)
	case gateway.BLAKE2s:
		return blake2s.New256(nil)
	default:
		return nil, fmt.Errorf("variant %s has no fixed-output hash", variant)
	}
}

func newBLAKE3Accumulator(params *gateway.ParameterSet) (cryptoalg.Accumulator, error) {
	switch {
	case len(params.KeyedKey) > 0:
		key := cloneKey(params.KeyedKey)
		h, err := blake3.NewKeyed(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create keyed blake3 state: %w", err)
		}
		return &xofAccumulator{variant: gateway.BLAKE3, xof: blake3Reader{h}, key: key}, nil
	case params.DeriveKeyContext != nil:
		return &xofAccumulator{variant: gateway.BLAKE3, xof: blake3Reader{blake3.NewDeriveKey(*params.DeriveKeyContext)}}, nil
	default:
		return &xofAccumulator{variant: gateway.BLAKE3, xof: blake3Reader{blake3.New()}}, nil
	}
}

// digestAccumulator wraps a hash.Hash. Exact accumulators only emit their
// native size; the others may be truncated.
type digestAccumulator struct {
	variant gateway.Variant
	h       hash.Hash
	key     []byte
	exact   bool
}

func (a *digestAccumulator) Variant() gateway.Variant { return a.variant }

func (a *digestAccumulator) Write(p []byte) {
	// hash.Hash never returns an error from Write
	_, _ = a.h.Write(p)
}

func (a *digestAccumulator) Sum(length int) ([]byte, error) {
	if a.h == nil {
		return nil, fmt.Errorf("accumulator already consumed")
	}
	size := a.h.Size()
	if length == 0 {
		length = size
	}
	if length < 0 || length > size || (a.exact && length != size) {
		return nil, fmt.Errorf("output length %d not available for %s", length, a.variant)
	}

	out := a.h.Sum(nil)[:length]
	a.h = nil
	a.Wipe()
	return out, nil
}

func (a *digestAccumulator) Wipe() {
	SecureZero(a.key)
	a.key = nil
}

// xofReader is the squeeze side of an extendable-output function.
type xofReader interface {
	Write(p []byte)
	Squeeze(out []byte)
}

type blake3Reader struct{ h *blake3.Hasher }

func (r blake3Reader) Write(p []byte) { _, _ = r.h.Write(p) }

func (r blake3Reader) Squeeze(out []byte) {
	_, _ = r.h.Digest().Read(out)
}

type shakeReader struct{ h sha3.ShakeHash }

func (r shakeReader) Write(p []byte) { _, _ = r.h.Write(p) }

func (r shakeReader) Squeeze(out []byte) {
	_, _ = r.h.Read(out)
}

type xofAccumulator struct {
	variant gateway.Variant
	xof     xofReader
	key     []byte
}

func (a *xofAccumulator) Variant() gateway.Variant { return a.variant }

func (a *xofAccumulator) Write(p []byte) {
	a.xof.Write(p)
}

func (a *xofAccumulator) Sum(length int) ([]byte, error) {
	if a.xof == nil {
		return nil, fmt.Errorf("accumulator already consumed")
	}
	if length == 0 {
		length = defaultXOFLength
	}
	if length < 0 {
		return nil, fmt.Errorf("negative output length for %s", a.variant)
	}

	out := make([]byte, length)
	a.xof.Squeeze(out)
	a.xof = nil
	a.Wipe()
	return out, nil
}

func (a *xofAccumulator) Wipe() {
	SecureZero(a.key)
	a.key = nil
}

func cloneKey(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte{}, b...)
}
