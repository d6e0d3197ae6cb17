package app

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"golang.org/x/crypto/bcrypt"
)

// classification maps one library failure onto a fixed, non-secret message.
type classification struct {
	target error
	kind   gateway.Kind
	field  string
	reason string
}

var classifications = []classification{
	{cryptoalg.ErrUnsupportedVariant, gateway.KindUnsupportedVariant, "", "no primitive is bound to this variant"},
	{cryptoalg.ErrAuthenticationFailed, gateway.KindCryptoOperationFailed, "", "authentication failed"},
	{rsa.ErrDecryption, gateway.KindCryptoOperationFailed, "", "authentication failed"},
	{rsa.ErrVerification, gateway.KindCryptoOperationFailed, "", "verification failed"},
	{cryptoalg.ErrInvalidPadding, gateway.KindCryptoOperationFailed, "", "invalid padding"},
	{cryptoalg.ErrMalformedKey, gateway.KindCryptoOperationFailed, "", "malformed key"},
	{cryptoalg.ErrInvalidPoint, gateway.KindCryptoOperationFailed, "", "invalid curve point or scalar"},
	{cryptoalg.ErrMalformedHash, gateway.KindCryptoOperationFailed, "", "malformed encoded hash"},
	{rsa.ErrMessageTooLong, gateway.KindInvalidParameter, "input", "message too long for the key"},
	{bcrypt.ErrPasswordTooLong, gateway.KindInvalidParameter, "input", "password too long"},
	{context.Canceled, gateway.KindCryptoOperationFailed, "", "operation cancelled before dispatch"},
	{context.DeadlineExceeded, gateway.KindCryptoOperationFailed, "", "deadline exceeded before dispatch"},
}

// normalize converts any error into a *gateway.Error. Gateway errors pass
// through with their variant filled in; library errors are classified and
// kept as the unexported cause.
func normalize(variant gateway.Variant, err error) error {
	if err == nil {
		return nil
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		if gwErr.Variant == gateway.VariantUnknown && variant != gateway.VariantUnknown {
			copied := *gwErr
			copied.Variant = variant
			return &copied
		}
		return gwErr
	}

	var costErr bcrypt.InvalidCostError
	if errors.As(err, &costErr) {
		return gateway.NewInvalidParameter(variant, "cost", "bcrypt cost out of range")
	}

	for _, c := range classifications {
		if !errors.Is(err, c.target) {
			continue
		}
		switch c.kind {
		case gateway.KindInvalidParameter:
			return gateway.NewInvalidParameter(variant, c.field, c.reason)
		case gateway.KindUnsupportedVariant:
			return gateway.NewUnsupportedVariant(variant, c.reason)
		default:
			return gateway.NewCryptoOperationFailed(variant, c.reason, err)
		}
	}

	return gateway.NewCryptoOperationFailed(variant, "primitive operation failed", err)
}

// recovered turns a panic raised inside a wrapped primitive into a
// CryptoOperationFailed. The panic value is kept as cause, never rendered.
func recovered(variant gateway.Variant, r any) error {
	return gateway.NewCryptoOperationFailed(variant, "primitive panicked", fmt.Errorf("panic: %v", r))
}
