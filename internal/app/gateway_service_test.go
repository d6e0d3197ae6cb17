//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func setupGatewayService(t *testing.T) gateway.GatewayService {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	processors, err := cryptography.NewProcessors(testutil.FastGatewaySettings(), logger)
	require.NoError(t, err)

	service, err := NewGatewayService(processors, logger)
	require.NoError(t, err)
	return service
}

func TestNewGatewayServiceRequiresProcessors(t *testing.T) {
	_, err := NewGatewayService(nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestGatewayServiceComputeDigest(t *testing.T) {
	service := setupGatewayService(t)

	out, err := service.Compute(context.Background(), gateway.SHA256, nil, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(out))

	out, err = service.Compute(context.Background(), gateway.SHAKE256, &gateway.ParameterSet{HashLength: gateway.IntPtr(100)}, []byte("abc"))
	require.NoError(t, err)
	assert.Len(t, out, 100)
}

func TestGatewayServiceXOFZeroLength(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	out, err := service.Compute(ctx, gateway.BLAKE3, nil, []byte("abc"))
	require.NoError(t, err)
	assert.Len(t, out, 32)

	_, err = service.Compute(ctx, gateway.BLAKE3, &gateway.ParameterSet{HashLength: gateway.IntPtr(0)}, []byte("abc"))
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, gateway.KindInvalidParameter, gwErr.Kind)
	assert.Equal(t, "hash_length", gwErr.Field)
}

func TestGatewayServiceCipherRoundTrip(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	params := &gateway.ParameterSet{
		Key:            bytes.Repeat([]byte{0x11}, 32),
		Nonce:          bytes.Repeat([]byte{0x22}, 12),
		AdditionalData: []byte("header"),
	}
	plaintext := []byte("attack at dawn")

	ciphertext, err := service.Compute(ctx, gateway.AES256GCM, params, plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, len(plaintext)+16)

	decrypt := params.Clone()
	decrypt.Operation = gateway.OperationDecrypt
	recovered, err := service.Compute(ctx, gateway.AES256GCM, decrypt, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, recovered)

	ciphertext[0] ^= 0x01
	_, err = service.Compute(ctx, gateway.AES256GCM, decrypt, ciphertext)
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))
}

func TestGatewayServiceDoesNotMutateCallerParameters(t *testing.T) {
	service := setupGatewayService(t)

	key := bytes.Repeat([]byte{0x5a}, 32)
	params := &gateway.ParameterSet{Key: append([]byte{}, key...), Nonce: make([]byte, 12)}

	_, err := service.Compute(context.Background(), gateway.ChaCha20Poly1305, params, []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, key, params.Key)
}

func TestGatewayServicePasswordHashAndVerify(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	for _, variant := range []gateway.Variant{gateway.Argon2id, gateway.Argon2i, gateway.Bcrypt, gateway.PBKDF2SHA256, gateway.Scrypt} {
		t.Run(variant.String(), func(t *testing.T) {
			encoded, err := service.Compute(ctx, variant, nil, []byte("correct horse"))
			require.NoError(t, err)

			params := &gateway.ParameterSet{EncodedHash: string(encoded)}
			ok, err := service.Verify(ctx, variant, params, []byte("correct horse"))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = service.Verify(ctx, variant, params, []byte("battery staple"))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGatewayServicePasswordCostCeilings(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		variant gateway.Variant
		params  *gateway.ParameterSet
		slow    bool
	}{
		{"argon2id time cost ceiling", gateway.Argon2id, &gateway.ParameterSet{TimeCost: cryptoalg.MaxArgon2TimeCost, MemoryCost: 64, Parallelism: 1}, false},
		{"pbkdf2 iteration ceiling", gateway.PBKDF2SHA256, &gateway.ParameterSet{Iterations: cryptoalg.MaxPBKDF2Iterations}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.slow && testing.Short() {
				t.Skip("skipping full-cost derivation in short mode")
			}
			encoded, err := service.Compute(ctx, tt.variant, tt.params, []byte("correct horse"))
			require.NoError(t, err)

			ok, err := service.Verify(ctx, tt.variant, &gateway.ParameterSet{EncodedHash: string(encoded)}, []byte("correct horse"))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	over := []struct {
		variant gateway.Variant
		params  *gateway.ParameterSet
		field   string
	}{
		{gateway.Argon2id, &gateway.ParameterSet{MemoryCost: ^uint32(0), Parallelism: 1}, "memory_cost"},
		{gateway.PBKDF2SHA256, &gateway.ParameterSet{Iterations: cryptoalg.MaxPBKDF2Iterations + 1}, "iterations"},
	}
	for _, tt := range over {
		t.Run(tt.variant.String()+" over ceiling", func(t *testing.T) {
			_, err := service.Compute(ctx, tt.variant, tt.params, []byte("correct horse"))
			var gwErr *gateway.Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, gateway.KindInvalidParameter, gwErr.Kind)
			assert.Equal(t, tt.field, gwErr.Field)
		})
	}
}

func TestGatewayServiceSignatures(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()
	digest := bytes.Repeat([]byte{0xab}, 32)

	for _, variant := range []gateway.Variant{gateway.Ed25519, gateway.ECDSAP256, gateway.ECDSASecp256k1, gateway.RSAPSS} {
		t.Run(variant.String(), func(t *testing.T) {
			pair, err := service.GenerateKeyPair(ctx, variant, nil)
			require.NoError(t, err)

			signature, err := service.Compute(ctx, variant, &gateway.ParameterSet{Key: pair.PrivateKey}, digest)
			require.NoError(t, err)

			ok, err := service.Verify(ctx, variant, &gateway.ParameterSet{Key: pair.PublicKey, Signature: signature}, digest)
			require.NoError(t, err)
			assert.True(t, ok)

			tampered := append([]byte{}, digest...)
			tampered[0] ^= 0xff
			ok, err = service.Verify(ctx, variant, &gateway.ParameterSet{Key: pair.PublicKey, Signature: signature}, tampered)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = service.Verify(ctx, variant, &gateway.ParameterSet{Key: pair.PublicKey, Signature: []byte{0x30, 0x01}}, digest)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGatewayServiceRSAOAEP(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	pair, err := service.GenerateKeyPair(ctx, gateway.RSAOAEP, nil)
	require.NoError(t, err)

	ciphertext, err := service.Compute(ctx, gateway.RSAOAEP, &gateway.ParameterSet{Key: pair.PublicKey, Label: []byte("l")}, []byte("secret"))
	require.NoError(t, err)
	assert.Len(t, ciphertext, 256)

	decrypt := &gateway.ParameterSet{Operation: gateway.OperationDecrypt, Key: pair.PrivateKey, Label: []byte("l")}
	plaintext, err := service.Compute(ctx, gateway.RSAOAEP, decrypt, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), plaintext)

	_, err = service.Compute(ctx, gateway.RSAOAEP, decrypt, ciphertext[:255])
	assert.Equal(t, gateway.KindInvalidParameter, gateway.KindOf(err))

	_, err = service.Compute(ctx, gateway.RSAOAEP, &gateway.ParameterSet{Key: pair.PublicKey}, make([]byte, 191))
	assert.Equal(t, gateway.KindInvalidParameter, gateway.KindOf(err))

	_, err = service.Compute(ctx, gateway.RSAOAEP, &gateway.ParameterSet{Key: []byte("not der")}, []byte("x"))
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))
}

func TestGatewayServiceKeyAgreement(t *testing.T) {
	service := setupGatewayService(t)
	ctx := context.Background()

	for _, variant := range []gateway.Variant{gateway.X25519, gateway.ECDHP256, gateway.ECDHP384} {
		t.Run(variant.String(), func(t *testing.T) {
			alice, err := service.GenerateKeyPair(ctx, variant, nil)
			require.NoError(t, err)
			bob, err := service.GenerateKeyPair(ctx, variant, nil)
			require.NoError(t, err)

			ab, err := service.DeriveSharedSecret(ctx, variant, alice.PrivateKey, bob.PublicKey)
			require.NoError(t, err)
			ba, err := service.DeriveSharedSecret(ctx, variant, bob.PrivateKey, alice.PublicKey)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		})
	}

	_, err := service.DeriveSharedSecret(ctx, gateway.X25519, make([]byte, 32), make([]byte, 32))
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))

	_, err = service.Compute(ctx, gateway.X25519, nil, []byte("x"))
	assert.Equal(t, gateway.KindInvalidParameter, gateway.KindOf(err))
}

func TestGatewayServiceRejectsCancelledContext(t *testing.T) {
	service := setupGatewayService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Compute(ctx, gateway.SHA256, nil, []byte("abc"))
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))

	_, err = service.OpenSession(ctx, gateway.SHA256, nil)
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))
}

func TestGatewayServiceVerifyRejectsNonVerifiers(t *testing.T) {
	service := setupGatewayService(t)

	_, err := service.Verify(context.Background(), gateway.SHA256, nil, []byte("abc"))
	assert.Equal(t, gateway.KindInvalidParameter, gateway.KindOf(err))
}

func TestGatewayServiceConcurrentCompute(t *testing.T) {
	service := setupGatewayService(t)
	params := &gateway.ParameterSet{Key: []byte("shared key"), Hash: gateway.SHA256}

	expected, err := service.Compute(context.Background(), gateway.HMAC, params, []byte("message"))
	require.NoError(t, err)

	g, ctx := errgroup.WithContext(context.Background())
	results := make([][]byte, 32)
	for i := range results {
		g.Go(func() error {
			out, err := service.Compute(ctx, gateway.HMAC, params, []byte("message"))
			results[i] = out
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, out := range results {
		assert.Equal(t, expected, out)
	}
}

func TestGatewayServiceVariants(t *testing.T) {
	service := setupGatewayService(t)
	assert.Len(t, service.Variants(), len(gateway.AllVariants()))
}
