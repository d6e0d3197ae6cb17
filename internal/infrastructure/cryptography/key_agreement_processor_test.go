//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeyAgreementProcessor(t *testing.T) cryptoalg.KeyAgreementProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewKeyAgreementProcessor(logger)
	require.NoError(t, err)
	return processor
}

func TestKeyAgreementProcessor(t *testing.T) {
	processor := setupKeyAgreementProcessor(t)

	tests := []struct {
		variant   gateway.Variant
		pubLen    int
		secretLen int
	}{
		{gateway.ECDHP256, 65, 32},
		{gateway.ECDHP384, 97, 48},
		{gateway.X25519, 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			alice, err := processor.GenerateKeyPair(tt.variant)
			require.NoError(t, err)
			bob, err := processor.GenerateKeyPair(tt.variant)
			require.NoError(t, err)
			assert.Len(t, alice.PublicKey, tt.pubLen)

			ab, err := processor.DeriveSharedSecret(tt.variant, alice.PrivateKey, bob.PublicKey)
			require.NoError(t, err)
			ba, err := processor.DeriveSharedSecret(tt.variant, bob.PrivateKey, alice.PublicKey)
			require.NoError(t, err)

			assert.Len(t, ab, tt.secretLen)
			assert.Equal(t, ab, ba)
		})
	}

	t.Run("X25519LowOrderPoint", func(t *testing.T) {
		pair, err := processor.GenerateKeyPair(gateway.X25519)
		require.NoError(t, err)
		_, err = processor.DeriveSharedSecret(gateway.X25519, pair.PrivateKey, make([]byte, 32))
		assert.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("P256OffCurvePeer", func(t *testing.T) {
		pair, err := processor.GenerateKeyPair(gateway.ECDHP256)
		require.NoError(t, err)
		peer := make([]byte, 65)
		peer[0] = 0x04
		_, err = processor.DeriveSharedSecret(gateway.ECDHP256, pair.PrivateKey, peer)
		assert.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("WrongFamily", func(t *testing.T) {
		_, err := processor.GenerateKeyPair(gateway.Ed25519)
		assert.ErrorIs(t, err, ErrUnsupportedVariant)
	})
}
