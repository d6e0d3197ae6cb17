//go:build unit
// +build unit

package gateway

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Variant
		wantErr  bool
	}{
		{"sha256", "sha256", SHA256, false},
		{"upper case", "AES-256-GCM", AES256GCM, false},
		{"padded", "  blake3 ", BLAKE3, false},
		{"triple des", "3des-cbc", TripleDESCBC, false},
		{"x25519", "x25519", X25519, false},
		{"unknown", "rot13", VariantUnknown, true},
		{"empty", "", VariantUnknown, true},
		{"argon2d not implemented", "argon2d", VariantUnknown, true},
		{"ripemd256 not implemented", "ripemd256", VariantUnknown, true},
		{"ripemd320 not implemented", "ripemd320", VariantUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVariant(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestVariantNamesRoundTrip(t *testing.T) {
	for _, v := range AllVariants() {
		t.Run(v.String(), func(t *testing.T) {
			parsed, err := ParseVariant(v.String())
			require.NoError(t, err)
			assert.Equal(t, v, parsed)
			assert.NotEqual(t, FamilyUnknown, v.Family())
		})
	}
}

func TestVariantFamilies(t *testing.T) {
	assert.Equal(t, FamilyHash, SHA3_512.Family())
	assert.Equal(t, FamilyMAC, HMAC.Family())
	assert.Equal(t, FamilyCipher, ChaCha20Poly1305.Family())
	assert.Equal(t, FamilyPassword, Argon2id.Family())
	assert.Equal(t, FamilyAsymmetricEncryption, RSAOAEP.Family())
	assert.Equal(t, FamilySignature, Ed25519.Family())
	assert.Equal(t, FamilyKeyAgreement, ECDHP384.Family())
	assert.Equal(t, FamilyUnknown, VariantUnknown.Family())

	assert.True(t, BLAKE3.IsXOF())
	assert.True(t, SHAKE128.IsXOF())
	assert.False(t, SHA256.IsXOF())

	assert.True(t, AESCMAC.IsStreaming())
	assert.True(t, Whirlpool.IsStreaming())
	assert.False(t, AES256GCM.IsStreaming())

	assert.False(t, Variant(9999).IsValid())
	assert.Equal(t, "unknown", Variant(9999).String())
}

func TestVariantJSON(t *testing.T) {
	type payload struct {
		Variant Variant `json:"variant"`
	}

	data, err := json.Marshal(payload{Variant: SHA512_256})
	require.NoError(t, err)
	assert.JSONEq(t, `{"variant":"sha512-256"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"variant":"keccak256"}`), &decoded))
	assert.Equal(t, Keccak256, decoded.Variant)

	assert.Error(t, json.Unmarshal([]byte(`{"variant":"nope"}`), &decoded))
}
