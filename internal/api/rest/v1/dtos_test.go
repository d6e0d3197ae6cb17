//go:build unit
// +build unit

package v1

import (
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   KeyPairRequest
		shouldErr bool
	}{
		{"Valid Ed25519", KeyPairRequest{Variant: "ed25519"}, false},
		{"Valid RSA-PSS 3072", KeyPairRequest{Variant: "rsa-pss", KeyBits: 3072}, false},
		{"Valid RSA-OAEP default size", KeyPairRequest{Variant: "rsa-oaep"}, false},
		{"Invalid RSA 1024", KeyPairRequest{Variant: "rsa-oaep", KeyBits: 1024}, true},
		{"Key size on X25519", KeyPairRequest{Variant: "x25519", KeyBits: 2048}, true},
		{"Unknown variant", KeyPairRequest{Variant: "rot13"}, true},
		{"Missing variant", KeyPairRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestComputeRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   ComputeRequest
		shouldErr bool
	}{
		{"Valid bare", ComputeRequest{Variant: "sha256"}, false},
		{"Valid with hash", ComputeRequest{Variant: "hmac", Params: &ParametersRequest{Hash: "sha512"}}, false},
		{"Unknown inner hash", ComputeRequest{Variant: "hmac", Params: &ParametersRequest{Hash: "sha0"}}, true},
		{"Bad operation", ComputeRequest{Variant: "aes-256-gcm", Params: &ParametersRequest{Operation: "rotate"}}, true},
		{"Negative length", ComputeRequest{Variant: "blake3", Params: &ParametersRequest{HashLength: gateway.IntPtr(-1)}}, true},
		{"Unknown variant", ComputeRequest{Variant: "md6"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSharedSecretRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SharedSecretRequest{Variant: "x25519", PrivateKey: []byte{1}, PeerPublicKey: []byte{2}}).Validate())
	assert.Error(t, (&SharedSecretRequest{Variant: "x25519", PrivateKey: []byte{1}}).Validate())
}

func TestParametersRequest_ToDomain(t *testing.T) {
	request := &ParametersRequest{
		Operation:  "decrypt",
		Key:        []byte("key"),
		Hash:       "SHA3-256",
		HashLength: gateway.IntPtr(32),
		Iterations: 1000,
	}

	params, err := request.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, gateway.OperationDecrypt, params.Operation)
	assert.Equal(t, gateway.SHA3_256, params.Hash)
	assert.Equal(t, []byte("key"), params.Key)
	assert.Equal(t, 32, *params.HashLength)
	assert.Equal(t, uint32(1000), params.Iterations)

	var empty *ParametersRequest
	params, err = empty.ToDomain()
	require.NoError(t, err)
	assert.NotNil(t, params)
}
