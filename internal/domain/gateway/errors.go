package gateway

import (
	"errors"
	"fmt"
)

// Kind is one member of the stable error taxonomy returned by the gateway.
type Kind int

// Error kinds
const (
	KindUnknown Kind = iota
	KindInvalidParameter
	KindUnsupportedVariant
	KindCryptoOperationFailed
	KindSessionClosed
	KindAlreadyFinalized
	KindOutputLengthExceeded
)

var kindNames = map[Kind]string{
	KindInvalidParameter:      "invalid parameter",
	KindUnsupportedVariant:    "unsupported variant",
	KindCryptoOperationFailed: "crypto operation failed",
	KindSessionClosed:         "session closed",
	KindAlreadyFinalized:      "already finalized",
	KindOutputLengthExceeded:  "output length exceeded",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Sentinels for errors.Is matching by kind.
var (
	ErrInvalidParameter      = &Error{Kind: KindInvalidParameter}
	ErrUnsupportedVariant    = &Error{Kind: KindUnsupportedVariant}
	ErrCryptoOperationFailed = &Error{Kind: KindCryptoOperationFailed}
	ErrSessionClosed         = &Error{Kind: KindSessionClosed}
	ErrAlreadyFinalized      = &Error{Kind: KindAlreadyFinalized}
	ErrOutputLengthExceeded  = &Error{Kind: KindOutputLengthExceeded}
)

// Error is the only error type that leaves the gateway. Its message never
// carries key material, plaintext or derived secrets.
type Error struct {
	Kind    Kind
	Variant Variant
	Field   string
	Reason  string
	cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Variant != VariantUnknown {
		msg += fmt.Sprintf(" (variant %s)", e.Variant)
	}
	return msg
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Unwrap exposes the underlying library error for errors.Is checks. It is
// never rendered into the message.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidParameter reports a length, range or missing-field violation.
func NewInvalidParameter(v Variant, field, reason string) *Error {
	return &Error{Kind: KindInvalidParameter, Variant: v, Field: field, Reason: reason}
}

// NewOutputLengthExceeded reports a requested output length above the variant ceiling.
func NewOutputLengthExceeded(v Variant, requested, ceiling int) *Error {
	return &Error{
		Kind:    KindOutputLengthExceeded,
		Variant: v,
		Field:   "hash_length",
		Reason:  fmt.Sprintf("requested %d bytes, maximum is %d", requested, ceiling),
	}
}

// NewCryptoOperationFailed reports a primitive-level failure.
func NewCryptoOperationFailed(v Variant, reason string, cause error) *Error {
	return &Error{Kind: KindCryptoOperationFailed, Variant: v, Reason: reason, cause: cause}
}

// NewUnsupportedVariant reports a variant that has no bound primitive for the requested shape.
func NewUnsupportedVariant(v Variant, reason string) *Error {
	return &Error{Kind: KindUnsupportedVariant, Variant: v, Reason: reason}
}

// NewSessionClosed reports use of a finalized or unknown session.
func NewSessionClosed(v Variant) *Error {
	return &Error{Kind: KindSessionClosed, Variant: v, Reason: "session is no longer open"}
}

// NewAlreadyFinalized reports a second finalize on the same session.
func NewAlreadyFinalized(v Variant) *Error {
	return &Error{Kind: KindAlreadyFinalized, Variant: v, Reason: "session output was already produced"}
}

// KindOf returns the taxonomy kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
