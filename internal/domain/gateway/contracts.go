package gateway

import (
	"context"
	"time"
)

// SessionState is the lifecycle flag of a streaming session.
type SessionState int

// Session states
const (
	SessionOpen SessionState = iota
	SessionFinalized
	SessionInvalid
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionFinalized:
		return "finalized"
	case SessionInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Session is one in-progress streaming computation. It is exclusively owned
// by its creator and is not safe for concurrent use.
type Session interface {
	// Variant returns the variant the session was opened with.
	Variant() Variant
	// State returns the current lifecycle state.
	State() SessionState
	// Update absorbs the next chunk of input.
	Update(chunk []byte) error
	// Finalize produces the output with the configured or default length and closes the session.
	Finalize() ([]byte, error)
	// FinalizeWithLength produces an output of the requested length and closes the session.
	FinalizeWithLength(length int) ([]byte, error)
	// Close discards an open session and wipes its key material. Closing a
	// session that is no longer open does nothing.
	Close()
}

// GatewayService is the host boundary of the gateway.
type GatewayService interface {
	// Compute runs a one-shot digest, MAC, cipher, password hash, key derivation or signature.
	Compute(ctx context.Context, variant Variant, params *ParameterSet, input []byte) ([]byte, error)

	// Verify checks a signature, MAC tag or encoded password hash. Malformed signatures yield false.
	Verify(ctx context.Context, variant Variant, params *ParameterSet, input []byte) (bool, error)

	// OpenSession validates the parameters and opens a streaming session.
	OpenSession(ctx context.Context, variant Variant, params *ParameterSet) (Session, error)

	// GenerateKeyPair generates a fresh key pair for an asymmetric variant.
	GenerateKeyPair(ctx context.Context, variant Variant, params *ParameterSet) (*KeyPair, error)

	// DeriveSharedSecret runs key agreement between a private key and a peer public key.
	DeriveSharedSecret(ctx context.Context, variant Variant, privateKey, peerPublicKey []byte) ([]byte, error)

	// Variants lists the registry of supported variants.
	Variants() []VariantInfo
}

// SessionService manages sessions addressed by opaque handles for hosts that
// cannot hold a Session value directly.
type SessionService interface {
	// Open opens a session and returns its handle.
	Open(ctx context.Context, variant Variant, params *ParameterSet) (string, error)
	// Update feeds a chunk into the session identified by id.
	Update(ctx context.Context, id string, chunk []byte) error
	// Finalize closes the session and returns its output. A nil length uses the session default.
	Finalize(ctx context.Context, id string, length *int) ([]byte, error)
	// Abandon discards an open session without producing output.
	Abandon(ctx context.Context, id string) error
	// Variant reports the variant of the session identified by id.
	Variant(id string) (Variant, error)
}

// AuditService records and lists gateway operations.
type AuditService interface {
	// Record stores one operation record; it never receives input or output bytes.
	Record(ctx context.Context, record *OperationRecord) error
	// List returns records matching the query.
	List(ctx context.Context, query *OperationQuery) ([]*OperationRecord, error)
	// Prune deletes records older than the retention window and returns how many were removed.
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// OperationRepository persists operation records.
type OperationRepository interface {
	Create(ctx context.Context, record *OperationRecord) error
	List(ctx context.Context, query *OperationQuery) ([]*OperationRecord, error)
	GetByID(ctx context.Context, id string) (*OperationRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
