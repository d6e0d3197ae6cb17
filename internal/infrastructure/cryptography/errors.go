package cryptography

import "github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"

var (
	ErrAuthenticationFailed = cryptoalg.ErrAuthenticationFailed
	ErrInvalidPadding       = cryptoalg.ErrInvalidPadding
	ErrMalformedKey         = cryptoalg.ErrMalformedKey
	ErrInvalidPoint         = cryptoalg.ErrInvalidPoint
	ErrMalformedHash        = cryptoalg.ErrMalformedHash
	ErrUnsupportedVariant   = cryptoalg.ErrUnsupportedVariant
)
