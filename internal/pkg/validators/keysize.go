// Package validators holds custom go-playground validator functions shared by request DTOs.
package validators

import (
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/go-playground/validator/v10"
)

// KeySizeValidation validates the RSA key size against the sibling "Variant" field.
// Non-RSA variants must leave the key size unset.
func KeySizeValidation(fl validator.FieldLevel) bool {
	variant, err := gateway.ParseVariant(fl.Parent().FieldByName("Variant").String())
	keySize := fl.Field().Int()
	if err != nil {
		return keySize == 0
	}

	switch variant {
	case gateway.RSAOAEP, gateway.RSAPSS, gateway.RSAPKCS1v15:
		return keySize == 0 || keySize == 2048 || keySize == 3072 || keySize == 4096
	default:
		return keySize == 0
	}
}

// VariantValidation validates that a string field names a known variant.
func VariantValidation(fl validator.FieldLevel) bool {
	_, err := gateway.ParseVariant(fl.Field().String())
	return err == nil
}

// Register installs the custom validators on validate under the tags
// "keySizeValidation" and "variant".
func Register(validate *validator.Validate) error {
	if err := validate.RegisterValidation("keySizeValidation", KeySizeValidation); err != nil {
		return err
	}
	return validate.RegisterValidation("variant", VariantValidation)
}
