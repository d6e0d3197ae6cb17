//go:build unit
// +build unit

package app

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind gateway.Kind
		field    string
	}{
		{"authentication", fmt.Errorf("open: %w", cryptoalg.ErrAuthenticationFailed), gateway.KindCryptoOperationFailed, ""},
		{"rsa decryption", rsa.ErrDecryption, gateway.KindCryptoOperationFailed, ""},
		{"padding", cryptoalg.ErrInvalidPadding, gateway.KindCryptoOperationFailed, ""},
		{"malformed key", fmt.Errorf("parse: %w", cryptoalg.ErrMalformedKey), gateway.KindCryptoOperationFailed, ""},
		{"invalid point", cryptoalg.ErrInvalidPoint, gateway.KindCryptoOperationFailed, ""},
		{"unsupported", cryptoalg.ErrUnsupportedVariant, gateway.KindUnsupportedVariant, ""},
		{"rsa message too long", rsa.ErrMessageTooLong, gateway.KindInvalidParameter, "input"},
		{"bcrypt password too long", bcrypt.ErrPasswordTooLong, gateway.KindInvalidParameter, "input"},
		{"bcrypt cost", bcrypt.InvalidCostError(40), gateway.KindInvalidParameter, "cost"},
		{"cancelled", context.Canceled, gateway.KindCryptoOperationFailed, ""},
		{"unclassified", errors.New("library exploded"), gateway.KindCryptoOperationFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := normalize(gateway.AES256GCM, tt.err)
			var gwErr *gateway.Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.wantKind, gwErr.Kind)
			assert.Equal(t, tt.field, gwErr.Field)
			assert.Equal(t, gateway.AES256GCM, gwErr.Variant)
		})
	}
}

func TestNormalizeKeepsCauseOutOfMessage(t *testing.T) {
	secret := errors.New("key=deadbeef")
	err := normalize(gateway.HMAC, secret)

	assert.NotContains(t, err.Error(), "deadbeef")
	assert.True(t, errors.Is(err, secret))
}

func TestNormalizeGatewayErrorPassesThrough(t *testing.T) {
	original := gateway.NewInvalidParameter(gateway.VariantUnknown, "salt", "too short")

	err := normalize(gateway.Scrypt, original)
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, gateway.Scrypt, gwErr.Variant)
	assert.Equal(t, "salt", gwErr.Field)
	assert.Equal(t, gateway.VariantUnknown, original.Variant)

	assert.Nil(t, normalize(gateway.Scrypt, nil))
}

func TestRecovered(t *testing.T) {
	err := recovered(gateway.SHA256, "index out of range")
	assert.Equal(t, gateway.KindCryptoOperationFailed, gateway.KindOf(err))
	assert.NotContains(t, err.Error(), "index out of range")
}
