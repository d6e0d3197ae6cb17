//go:build unit
// +build unit

package cryptography

import (
	"encoding/hex"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHashProcessor(t *testing.T) cryptoalg.HashProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewHashProcessor(logger)
	require.NoError(t, err)
	return processor
}

func TestHashProcessorKnownVectors(t *testing.T) {
	processor := setupHashProcessor(t)

	tests := []struct {
		name     string
		variant  gateway.Variant
		input    string
		expected string
	}{
		{"sha256 empty", gateway.SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"md5 abc", gateway.MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha1 abc", gateway.SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha3-256 empty", gateway.SHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{"keccak256 empty", gateway.Keccak256, "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"blake3 empty", gateway.BLAKE3, "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := processor.Digest(tt.variant, nil, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hex.EncodeToString(digest))
		})
	}
}

func TestHashProcessorFixedLengths(t *testing.T) {
	processor := setupHashProcessor(t)

	lengths := map[gateway.Variant]int{
		gateway.MD4: 16, gateway.MD5: 16, gateway.RIPEMD160: 20, gateway.Whirlpool: 64,
		gateway.SHA1: 20, gateway.SHA224: 28, gateway.SHA256: 32, gateway.SHA384: 48,
		gateway.SHA512: 64, gateway.SHA512_224: 28, gateway.SHA512_256: 32,
		gateway.SHA3_224: 28, gateway.SHA3_256: 32, gateway.SHA3_384: 48, gateway.SHA3_512: 64,
		gateway.Keccak256: 32, gateway.Keccak512: 64, gateway.BLAKE2b: 64, gateway.BLAKE2s: 32,
	}

	for variant, size := range lengths {
		t.Run(variant.String(), func(t *testing.T) {
			for _, input := range [][]byte{nil, []byte("a"), make([]byte, 1000)} {
				digest, err := processor.Digest(variant, nil, input)
				require.NoError(t, err)
				assert.Len(t, digest, size)
			}
		})
	}
}

func TestHashProcessorXOFPrefixConsistency(t *testing.T) {
	processor := setupHashProcessor(t)
	input := []byte("prefix consistency")

	for _, variant := range []gateway.Variant{gateway.BLAKE3, gateway.SHAKE128, gateway.SHAKE256} {
		t.Run(variant.String(), func(t *testing.T) {
			short, err := processor.Digest(variant, &gateway.ParameterSet{HashLength: gateway.IntPtr(17)}, input)
			require.NoError(t, err)
			long, err := processor.Digest(variant, &gateway.ParameterSet{HashLength: gateway.IntPtr(200)}, input)
			require.NoError(t, err)

			assert.Len(t, long, 200)
			assert.Equal(t, short, long[:17])
		})
	}
}

func TestHashProcessorStreamingEquivalence(t *testing.T) {
	processor := setupHashProcessor(t)
	input := make([]byte, 301)
	for i := range input {
		input[i] = byte(i)
	}

	for _, variant := range []gateway.Variant{gateway.SHA256, gateway.Whirlpool, gateway.BLAKE2s, gateway.BLAKE3, gateway.SHAKE256} {
		t.Run(variant.String(), func(t *testing.T) {
			expected, err := processor.Digest(variant, nil, input)
			require.NoError(t, err)

			for _, chunk := range []int{1, 7, 64, 300} {
				acc, err := processor.NewAccumulator(variant, nil)
				require.NoError(t, err)
				for off := 0; off < len(input); off += chunk {
					end := min(off+chunk, len(input))
					acc.Write(input[off:end])
				}
				out, err := acc.Sum(0)
				require.NoError(t, err)
				assert.Equal(t, expected, out, "chunk size %d", chunk)
			}
		})
	}
}

func TestHashProcessorModes(t *testing.T) {
	processor := setupHashProcessor(t)
	key := make([]byte, 32)
	input := []byte("modes")

	plain, err := processor.Digest(gateway.BLAKE3, nil, input)
	require.NoError(t, err)

	t.Run("blake3 keyed differs", func(t *testing.T) {
		keyed, err := processor.Digest(gateway.BLAKE3, &gateway.ParameterSet{KeyedKey: key}, input)
		require.NoError(t, err)
		assert.NotEqual(t, plain, keyed)
	})

	t.Run("blake3 derive key differs", func(t *testing.T) {
		derived, err := processor.Digest(gateway.BLAKE3, &gateway.ParameterSet{DeriveKeyContext: gateway.StringPtr("app 2024 session")}, input)
		require.NoError(t, err)
		assert.NotEqual(t, plain, derived)
	})

	t.Run("blake2b sized", func(t *testing.T) {
		out, err := processor.Digest(gateway.BLAKE2b, &gateway.ParameterSet{HashLength: gateway.IntPtr(20)}, input)
		require.NoError(t, err)
		assert.Len(t, out, 20)
	})

	t.Run("md4 truncation", func(t *testing.T) {
		full, err := processor.Digest(gateway.MD4, nil, input)
		require.NoError(t, err)
		short, err := processor.Digest(gateway.MD4, &gateway.ParameterSet{HashLength: gateway.IntPtr(8)}, input)
		require.NoError(t, err)
		assert.Equal(t, full[:8], short)
	})

	t.Run("fixed hash rejects other length", func(t *testing.T) {
		_, err := processor.Digest(gateway.SHA256, &gateway.ParameterSet{HashLength: gateway.IntPtr(16)}, input)
		assert.Error(t, err)
	})

	t.Run("accumulator consumed", func(t *testing.T) {
		acc, err := processor.NewAccumulator(gateway.SHA256, nil)
		require.NoError(t, err)
		_, err = acc.Sum(0)
		require.NoError(t, err)
		_, err = acc.Sum(0)
		assert.Error(t, err)
	})
}
