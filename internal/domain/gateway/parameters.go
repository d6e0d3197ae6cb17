package gateway

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Operation selects the direction of cipher and RSA-OAEP variants.
type Operation string

// Operations
const (
	OperationEncrypt Operation = "encrypt"
	OperationDecrypt Operation = "decrypt"
)

// ParameterSet configures exactly one operation or session. Absent optional
// values are nil or zero; zero tuning values fall back to configured defaults.
type ParameterSet struct {
	Operation        Operation `validate:"omitempty,oneof=encrypt decrypt"`
	Key              []byte
	Nonce            []byte
	AdditionalData   []byte
	Hash             Variant
	HashLength       *int    `validate:"omitempty,gte=0"`
	DeriveKeyContext *string `validate:"omitempty,min=1"`
	KeyedKey         []byte
	Salt             []byte
	TimeCost         uint32
	MemoryCost       uint32
	Parallelism      uint8
	Iterations       uint32
	Cost             int `validate:"gte=0,lte=31"`
	Label            []byte
	Signature        []byte
	Tag              []byte
	EncodedHash      string `validate:"max=512"`
	KeyBits          int    `validate:"omitempty,oneof=2048 3072 4096"`
}

// Validate checks the variant-independent bounds of the parameter set.
func (p *ParameterSet) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return NewInvalidParameter(VariantUnknown, fieldErr.Field(), fmt.Sprintf("failed %q constraint", fieldErr.Tag()))
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// EffectiveOperation returns the operation, defaulting to encrypt.
func (p *ParameterSet) EffectiveOperation() Operation {
	if p.Operation == "" {
		return OperationEncrypt
	}
	return p.Operation
}

// Clone returns a deep copy that the gateway owns for the lifetime of one operation.
func (p *ParameterSet) Clone() *ParameterSet {
	if p == nil {
		return &ParameterSet{}
	}
	c := *p
	c.Key = cloneBytes(p.Key)
	c.Nonce = cloneBytes(p.Nonce)
	c.AdditionalData = cloneBytes(p.AdditionalData)
	c.KeyedKey = cloneBytes(p.KeyedKey)
	c.Salt = cloneBytes(p.Salt)
	c.Label = cloneBytes(p.Label)
	c.Signature = cloneBytes(p.Signature)
	c.Tag = cloneBytes(p.Tag)
	if p.HashLength != nil {
		n := *p.HashLength
		c.HashLength = &n
	}
	if p.DeriveKeyContext != nil {
		s := *p.DeriveKeyContext
		c.DeriveKeyContext = &s
	}
	return &c
}

// Wipe zeroizes the secret byte fields in place.
func (p *ParameterSet) Wipe() {
	if p == nil {
		return
	}
	for _, b := range [][]byte{p.Key, p.KeyedKey, p.Nonce, p.Salt} {
		clear(b)
	}
	p.EncodedHash = ""
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}

// IntPtr is a helper for optional integer parameters.
func IntPtr(n int) *int {
	return &n
}

// StringPtr is a helper for optional string parameters.
func StringPtr(s string) *string {
	return &s
}
