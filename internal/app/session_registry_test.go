//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func setupSessionRegistry(t *testing.T, maxSessions int) *SessionRegistry {
	t.Helper()
	registry, err := NewSessionRegistry(setupGatewayService(t), config.SessionSettings{
		MaxSessions: maxSessions,
		TTL:         time.Minute,
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return registry
}

func TestSessionRegistryLifecycle(t *testing.T) {
	registry := setupSessionRegistry(t, 4)
	ctx := context.Background()

	id, err := registry.Open(ctx, gateway.SHA256, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())

	require.NoError(t, registry.Update(ctx, id, []byte("a")))
	require.NoError(t, registry.Update(ctx, id, []byte("bc")))

	out, err := registry.Finalize(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(out))
	assert.Zero(t, registry.Len())

	err = registry.Update(ctx, id, []byte("x"))
	assert.Equal(t, gateway.KindSessionClosed, gateway.KindOf(err))
	_, err = registry.Finalize(ctx, id, nil)
	assert.Equal(t, gateway.KindSessionClosed, gateway.KindOf(err))
}

func TestSessionRegistryRejectedLengthKeepsHandle(t *testing.T) {
	registry := setupSessionRegistry(t, 4)
	ctx := context.Background()

	id, err := registry.Open(ctx, gateway.SHAKE128, nil)
	require.NoError(t, err)

	_, err = registry.Finalize(ctx, id, nil)
	assert.Equal(t, gateway.KindInvalidParameter, gateway.KindOf(err))
	assert.Equal(t, 1, registry.Len())

	out, err := registry.Finalize(ctx, id, gateway.IntPtr(16))
	require.NoError(t, err)
	assert.Len(t, out, 16)
	assert.Zero(t, registry.Len())
}

func TestSessionRegistryCapacity(t *testing.T) {
	registry := setupSessionRegistry(t, 2)
	ctx := context.Background()

	first, err := registry.Open(ctx, gateway.MD5, nil)
	require.NoError(t, err)
	_, err = registry.Open(ctx, gateway.MD5, nil)
	require.NoError(t, err)

	_, err = registry.Open(ctx, gateway.MD5, nil)
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, gateway.KindInvalidParameter, gwErr.Kind)
	assert.Equal(t, "session", gwErr.Field)

	require.NoError(t, registry.Abandon(ctx, first))
	_, err = registry.Open(ctx, gateway.MD5, nil)
	assert.NoError(t, err)
}

func TestSessionRegistryExpiresIdleSessions(t *testing.T) {
	registry := setupSessionRegistry(t, 1)
	ctx := context.Background()

	now := time.Now()
	registry.now = func() time.Time { return now }

	stale, err := registry.Open(ctx, gateway.SHA1, nil)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := registry.Open(ctx, gateway.SHA1, nil)
	require.NoError(t, err, "a full registry sweeps expired sessions before rejecting")

	err = registry.Update(ctx, stale, []byte("x"))
	assert.Equal(t, gateway.KindSessionClosed, gateway.KindOf(err))
	assert.NoError(t, registry.Update(ctx, fresh, []byte("x")))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, registry.Sweep())
	assert.Zero(t, registry.Len())
}

func TestSessionRegistryAbandonUnknown(t *testing.T) {
	registry := setupSessionRegistry(t, 1)

	err := registry.Abandon(context.Background(), "missing")
	assert.Equal(t, gateway.KindSessionClosed, gateway.KindOf(err))
}

func TestSessionRegistryRunClosesOnShutdown(t *testing.T) {
	registry := setupSessionRegistry(t, 8)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := registry.Open(ctx, gateway.BLAKE3, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		registry.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Zero(t, registry.Len())
}

func TestSessionRegistryConcurrentUpdates(t *testing.T) {
	registry := setupSessionRegistry(t, 4)
	ctx := context.Background()

	id, err := registry.Open(ctx, gateway.SHA256, nil)
	require.NoError(t, err)

	g, gctx := errgroup.WithContext(ctx)
	for range 64 {
		g.Go(func() error {
			return registry.Update(gctx, id, []byte{0x61})
		})
	}
	require.NoError(t, g.Wait())

	out, err := registry.Finalize(ctx, id, nil)
	require.NoError(t, err)

	expected, err := setupGatewayService(t).Compute(ctx, gateway.SHA256, nil, bytes.Repeat([]byte{0x61}, 64))
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

