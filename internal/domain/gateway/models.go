package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// KeyPair holds freshly generated key material in the variant's wire encoding:
// raw scalars or seeds for EC and Edwards keys, uncompressed SEC1 or raw public
// keys, PKCS#8 and SPKI DER for RSA.
type KeyPair struct {
	Variant    Variant
	PrivateKey []byte
	PublicKey  []byte
}

// VariantInfo describes one registry entry.
type VariantInfo struct {
	Name            string `json:"name"`
	Family          string `json:"family"`
	Streaming       bool   `json:"streaming"`
	XOF             bool   `json:"xof"`
	KeySizes        []int  `json:"key_sizes,omitempty"`
	NonceSizes      []int  `json:"nonce_sizes,omitempty"`
	OutputLength    int    `json:"output_length,omitempty"`
	MaxOutputLength int    `json:"max_output_length,omitempty"`
}

// Outcome of a recorded operation
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OperationRecord is one audit entry. It carries sizes only, never bytes.
type OperationRecord struct {
	ID              string    `validate:"required,uuid4"`
	Variant         string    `validate:"required,min=1,max=50"`
	Operation       string    `validate:"required,min=1,max=50"`
	InputSize       int       `validate:"gte=0"`
	OutputSize      int       `validate:"gte=0"`
	Outcome         string    `validate:"required,oneof=success failure"`
	ErrorKind       string    `validate:"max=50"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating OperationRecord struct
func (r *OperationRecord) Validate() error {
	return validateStruct(r)
}

// OperationQuery filters operation records.
type OperationQuery struct {
	Variant         string    `validate:"omitempty,max=50"`
	Operation       string    `validate:"omitempty,max=50"`
	Outcome         string    `validate:"omitempty,oneof=success failure"`
	DateTimeCreated time.Time `validate:"omitempty"`
	Limit           int       `validate:"omitempty,gt=0"`
	Offset          int       `validate:"omitempty,gte=0"`
	SortBy          string    `validate:"omitempty,oneof=date_time_created variant operation"`
	SortOrder       string    `validate:"omitempty,oneof=asc desc"`
}

// NewOperationQuery creates an OperationQuery with default values.
func NewOperationQuery() *OperationQuery {
	return &OperationQuery{
		Limit:     50,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating OperationQuery struct
func (q *OperationQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
