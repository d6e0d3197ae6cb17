package cryptoalg

import "errors"

// Failure classes reported by processors. Library errors are wrapped beneath
// them so the dispatcher can classify failures without parsing messages.
var (
	ErrAuthenticationFailed = errors.New("message authentication failed")
	ErrInvalidPadding       = errors.New("invalid padding")
	ErrMalformedKey         = errors.New("malformed key encoding")
	ErrInvalidPoint         = errors.New("invalid curve point or scalar")
	ErrMalformedHash        = errors.New("malformed encoded hash")
	ErrUnsupportedVariant   = errors.New("variant not handled by processor")
)
