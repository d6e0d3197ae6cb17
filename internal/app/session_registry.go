package app

import (
	"context"
	"sync"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
	"github.com/google/uuid"
)

var _ gateway.SessionService = (*SessionRegistry)(nil)

type sessionEntry struct {
	mu       sync.Mutex
	session  gateway.Session
	lastUsed time.Time
}

// SessionRegistry implements the SessionService interface. Each handle owns
// exactly one session; concurrent calls on the same handle are serialized.
type SessionRegistry struct {
	gateway     gateway.GatewayService
	mu          sync.Mutex
	entries     map[string]*sessionEntry
	maxSessions int
	ttl         time.Duration
	now         func() time.Time
	logger      logger.Logger
}

// NewSessionRegistry creates a new SessionRegistry instance
func NewSessionRegistry(gw gateway.GatewayService, settings config.SessionSettings, logger logger.Logger) (*SessionRegistry, error) {
	if gw == nil {
		return nil, gateway.NewInvalidParameter(gateway.VariantUnknown, "gateway", "a gateway service is required")
	}
	if settings.MaxSessions <= 0 || settings.TTL <= 0 {
		return nil, gateway.NewInvalidParameter(gateway.VariantUnknown, "sessions", "max sessions and ttl must be positive")
	}
	return &SessionRegistry{
		gateway:     gw,
		entries:     make(map[string]*sessionEntry),
		maxSessions: settings.MaxSessions,
		ttl:         settings.TTL,
		now:         time.Now,
		logger:      logger,
	}, nil
}

// Open opens a session through the gateway and returns a fresh handle for it.
func (r *SessionRegistry) Open(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (string, error) {
	r.mu.Lock()
	full := len(r.entries) >= r.maxSessions
	r.mu.Unlock()
	if full {
		r.Sweep()
	}

	sess, err := r.gateway.OpenSession(ctx, variant, params)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) >= r.maxSessions {
		sess.Close()
		return "", gateway.NewInvalidParameter(variant, "session", "too many open sessions")
	}

	id := uuid.New().String()
	r.entries[id] = &sessionEntry{session: sess, lastUsed: r.now()}
	r.logger.Debug("Registered session ", id, " for ", variant)
	return id, nil
}

// Update feeds chunk into the session behind id.
func (r *SessionRegistry) Update(ctx context.Context, id string, chunk []byte) error {
	if err := ctx.Err(); err != nil {
		return normalize(gateway.VariantUnknown, err)
	}
	entry, err := r.lookup(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.session.Update(chunk); err != nil {
		return err
	}
	entry.lastUsed = r.now()
	return nil
}

// Finalize produces the session output and releases the handle. A rejected
// length keeps the handle so the caller can retry.
func (r *SessionRegistry) Finalize(ctx context.Context, id string, length *int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, normalize(gateway.VariantUnknown, err)
	}
	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	var out []byte
	if length == nil {
		out, err = entry.session.Finalize()
	} else {
		out, err = entry.session.FinalizeWithLength(*length)
	}
	open := entry.session.State() == gateway.SessionOpen
	entry.lastUsed = r.now()
	entry.mu.Unlock()

	if !open {
		r.remove(id)
	}
	return out, err
}

// Abandon discards the session behind id.
func (r *SessionRegistry) Abandon(ctx context.Context, id string) error {
	entry, err := r.lookup(id)
	if err != nil {
		return err
	}
	r.remove(id)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session.Close()
	r.logger.Debug("Abandoned session ", id)
	return nil
}

// Variant returns the variant the session behind id was opened with.
func (r *SessionRegistry) Variant(id string) (gateway.Variant, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return gateway.VariantUnknown, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Variant(), nil
}

// Sweep closes every session idle for longer than the ttl and returns how many
// were removed.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*sessionEntry
	for id, entry := range r.entries {
		entry.mu.Lock()
		if entry.lastUsed.Before(cutoff) {
			expired = append(expired, entry)
			delete(r.entries, id)
		}
		entry.mu.Unlock()
	}
	r.mu.Unlock()

	for _, entry := range expired {
		entry.mu.Lock()
		entry.session.Close()
		entry.mu.Unlock()
	}
	if len(expired) > 0 {
		r.logger.Info("Expired ", len(expired), " idle sessions")
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is cancelled, then
// closes all remaining sessions.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Len returns the number of registered sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *SessionRegistry) lookup(id string) (*sessionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, gateway.NewSessionClosed(gateway.VariantUnknown)
	}
	return entry, nil
}

func (r *SessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) closeAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*sessionEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		entry.mu.Lock()
		entry.session.Close()
		entry.mu.Unlock()
	}
}
