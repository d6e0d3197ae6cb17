//go:build unit
// +build unit

package cryptography

import (
	"crypto/elliptic"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupECDSAProcessor(t *testing.T) cryptoalg.ECDSAProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewECDSAProcessor(logger)
	require.NoError(t, err)
	return processor
}

func TestECDSAProcessor(t *testing.T) {
	processor := setupECDSAProcessor(t)

	t.Run("GenerateKeys", func(t *testing.T) {
		priv, pub, err := processor.GenerateKeys(elliptic.P256())
		assert.NoError(t, err)
		assert.NotNil(t, priv)
		assert.NotNil(t, pub)
		assert.Equal(t, elliptic.P256(), pub.Curve)
	})

	t.Run("SignVerify", func(t *testing.T) {
		priv, pub, err := processor.GenerateKeys(elliptic.P256())
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("This is a test message."))
		sig, err := processor.Sign(digest[:], priv)
		require.NoError(t, err)

		valid, err := processor.Verify(digest[:], sig, pub)
		assert.NoError(t, err)
		assert.True(t, valid)

		other := sha256.Sum256([]byte("Modified message."))
		valid, err = processor.Verify(other[:], sig, pub)
		assert.NoError(t, err)
		assert.False(t, valid)

		valid, err = processor.Verify(digest[:], []byte{0x30, 0x01}, pub)
		assert.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("RawKeyRoundTrip", func(t *testing.T) {
		priv, pub, err := processor.GenerateKeys(elliptic.P256())
		require.NoError(t, err)

		scalar, err := priv.Bytes()
		require.NoError(t, err)
		assert.Len(t, scalar, 32)
		point, err := pub.Bytes()
		require.NoError(t, err)
		assert.Len(t, point, 65)

		parsedPriv, err := processor.ParsePrivateKey(elliptic.P256(), scalar)
		require.NoError(t, err)
		assert.True(t, priv.Equal(parsedPriv))

		parsedPub, err := processor.ParsePublicKey(elliptic.P256(), point)
		require.NoError(t, err)
		assert.True(t, pub.Equal(parsedPub))
	})

	t.Run("RejectsOffCurvePoint", func(t *testing.T) {
		point := make([]byte, 65)
		point[0] = 0x04
		point[64] = 0x01
		_, err := processor.ParsePublicKey(elliptic.P256(), point)
		assert.True(t, errors.Is(err, ErrInvalidPoint))
	})

	t.Run("RejectsZeroScalar", func(t *testing.T) {
		_, err := processor.ParsePrivateKey(elliptic.P256(), make([]byte, 32))
		assert.True(t, errors.Is(err, ErrInvalidPoint))
	})
}
