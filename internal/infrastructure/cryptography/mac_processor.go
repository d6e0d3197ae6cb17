package cryptography

import (
	"crypto/hmac"
	"fmt"
	"hash"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/jacobsa/crypto/cmac"
)

// macProcessor struct that implements the MACProcessor interface
type macProcessor struct {
	logger logger.Logger
}

// NewMACProcessor creates and returns a new instance of macProcessor
func NewMACProcessor(logger logger.Logger) (cryptoalg.MACProcessor, error) {
	return &macProcessor{
		logger: logger,
	}, nil
}

// Compute returns the full-length tag of input.
func (p *macProcessor) Compute(variant gateway.Variant, params *gateway.ParameterSet, input []byte) ([]byte, error) {
	acc, err := p.NewAccumulator(variant, params)
	if err != nil {
		return nil, err
	}
	acc.Write(input)
	tag, err := acc.Sum(0)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Computed ", variant, " tag input_size=", len(input))
	return tag, nil
}

// Verify recomputes the tag and compares it with params.Tag in constant time.
func (p *macProcessor) Verify(variant gateway.Variant, params *gateway.ParameterSet, input []byte) (bool, error) {
	if params == nil {
		return false, fmt.Errorf("parameters are required")
	}
	expected, err := p.Compute(variant, params, input)
	if err != nil {
		return false, err
	}
	defer SecureZero(expected)

	return hmac.Equal(expected, params.Tag), nil
}

// NewAccumulator builds a keyed streaming MAC state.
func (p *macProcessor) NewAccumulator(variant gateway.Variant, params *gateway.ParameterSet) (cryptoalg.Accumulator, error) {
	if params == nil || len(params.Key) == 0 {
		return nil, fmt.Errorf("a non-empty key is required for %s", variant)
	}
	key := append([]byte{}, params.Key...)

	switch variant {
	case gateway.HMAC:
		inner := params.Hash
		if _, err := NewFixedHash(inner); err != nil {
			SecureZero(key)
			return nil, fmt.Errorf("unsupported hmac inner hash: %w", err)
		}
		h := hmac.New(func() hash.Hash {
			h, _ := NewFixedHash(inner)
			return h
		}, key)
		return &digestAccumulator{variant: variant, h: h, key: key, exact: true}, nil
	case gateway.AESCMAC:
		h, err := cmac.New(key)
		if err != nil {
			SecureZero(key)
			return nil, fmt.Errorf("failed to create cmac state: %w", err)
		}
		return &digestAccumulator{variant: variant, h: h, key: key, exact: true}, nil
	default:
		SecureZero(key)
		return nil, fmt.Errorf("variant %s is not a mac", variant)
	}
}
