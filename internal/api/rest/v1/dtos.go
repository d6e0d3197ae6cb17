package v1

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ParametersRequest is the JSON form of a parameter set. Byte fields are base64.
type ParametersRequest struct {
	Operation        string  `json:"operation,omitempty" validate:"omitempty,oneof=encrypt decrypt"`
	Key              []byte  `json:"key,omitempty"`
	Nonce            []byte  `json:"nonce,omitempty"`
	AdditionalData   []byte  `json:"additional_data,omitempty"`
	Hash             string  `json:"hash,omitempty" validate:"omitempty,variant"`
	HashLength       *int    `json:"hash_length,omitempty" validate:"omitempty,gte=0"`
	DeriveKeyContext *string `json:"derive_key_context,omitempty"`
	KeyedKey         []byte  `json:"keyed_key,omitempty"`
	Salt             []byte  `json:"salt,omitempty"`
	TimeCost         uint32  `json:"time_cost,omitempty"`
	MemoryCost       uint32  `json:"memory_cost,omitempty"`
	Parallelism      uint8   `json:"parallelism,omitempty"`
	Iterations       uint32  `json:"iterations,omitempty"`
	Cost             int     `json:"cost,omitempty" validate:"gte=0,lte=31"`
	Label            []byte  `json:"label,omitempty"`
	Signature        []byte  `json:"signature,omitempty"`
	Tag              []byte  `json:"tag,omitempty"`
	EncodedHash      string  `json:"encoded_hash,omitempty" validate:"max=512"`
}

// ToDomain converts the request into a gateway parameter set.
func (p *ParametersRequest) ToDomain() (*gateway.ParameterSet, error) {
	if p == nil {
		return &gateway.ParameterSet{}, nil
	}

	params := &gateway.ParameterSet{
		Operation:        gateway.Operation(p.Operation),
		Key:              p.Key,
		Nonce:            p.Nonce,
		AdditionalData:   p.AdditionalData,
		HashLength:       p.HashLength,
		DeriveKeyContext: p.DeriveKeyContext,
		KeyedKey:         p.KeyedKey,
		Salt:             p.Salt,
		TimeCost:         p.TimeCost,
		MemoryCost:       p.MemoryCost,
		Parallelism:      p.Parallelism,
		Iterations:       p.Iterations,
		Cost:             p.Cost,
		Label:            p.Label,
		Signature:        p.Signature,
		Tag:              p.Tag,
		EncodedHash:      p.EncodedHash,
	}
	if p.Hash != "" {
		hash, err := gateway.ParseVariant(p.Hash)
		if err != nil {
			return nil, err
		}
		params.Hash = hash
	}
	return params, nil
}

// ComputeRequest is the body of POST /compute and POST /verify
type ComputeRequest struct {
	Variant string             `json:"variant" validate:"required,variant"`
	Params  *ParametersRequest `json:"params,omitempty"`
	Input   []byte             `json:"input"`
}

// Validate for validating ComputeRequest struct
func (r *ComputeRequest) Validate() error {
	return validateRequest(r)
}

// ComputeResponse carries a one-shot output
type ComputeResponse struct {
	Output []byte `json:"output"`
}

// VerifyResponse carries a verification verdict
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// OpenSessionRequest is the body of POST /sessions
type OpenSessionRequest struct {
	Variant string             `json:"variant" validate:"required,variant"`
	Params  *ParametersRequest `json:"params,omitempty"`
}

// Validate for validating OpenSessionRequest struct
func (r *OpenSessionRequest) Validate() error {
	return validateRequest(r)
}

// SessionResponse carries a session handle
type SessionResponse struct {
	ID      string `json:"id"`
	Variant string `json:"variant"`
}

// UpdateSessionRequest is the body of POST /sessions/:id/update
type UpdateSessionRequest struct {
	Chunk []byte `json:"chunk"`
}

// FinalizeSessionRequest is the body of POST /sessions/:id/finalize
type FinalizeSessionRequest struct {
	HashLength *int `json:"hash_length,omitempty" validate:"omitempty,gte=0"`
}

// Validate for validating FinalizeSessionRequest struct
func (r *FinalizeSessionRequest) Validate() error {
	return validateRequest(r)
}

// KeyPairRequest is the body of POST /keypairs
type KeyPairRequest struct {
	Variant string `json:"variant" validate:"required,variant"`
	KeyBits int    `json:"key_bits,omitempty" validate:"keySizeValidation"`
}

// Validate for validating KeyPairRequest struct
func (r *KeyPairRequest) Validate() error {
	return validateRequest(r)
}

// KeyPairResponse carries generated key material
type KeyPairResponse struct {
	Variant    string `json:"variant"`
	PrivateKey []byte `json:"private_key"`
	PublicKey  []byte `json:"public_key"`
}

// SharedSecretRequest is the body of POST /shared-secrets
type SharedSecretRequest struct {
	Variant       string `json:"variant" validate:"required,variant"`
	PrivateKey    []byte `json:"private_key" validate:"required"`
	PeerPublicKey []byte `json:"peer_public_key" validate:"required"`
}

// Validate for validating SharedSecretRequest struct
func (r *SharedSecretRequest) Validate() error {
	return validateRequest(r)
}

// SharedSecretResponse carries a derived shared secret
type SharedSecretResponse struct {
	SharedSecret []byte `json:"shared_secret"`
}

// OperationRecordResponse is one audit trail entry
type OperationRecordResponse struct {
	ID              string    `json:"id"`
	Variant         string    `json:"variant"`
	Operation       string    `json:"operation"`
	InputSize       int       `json:"input_size"`
	OutputSize      int       `json:"output_size"`
	Outcome         string    `json:"outcome"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
}

// InfoResponse represents an informational response
type InfoResponse struct {
	Message string `json:"message"`
}

func validateRequest(s interface{}) error {
	validate := validator.New()
	if err := validators.Register(validate); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		var messages []string
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
