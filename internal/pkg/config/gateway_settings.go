package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Argon2Settings are the tuning defaults applied when a request leaves them unset
type Argon2Settings struct {
	TimeCost    uint32 `mapstructure:"time_cost" validate:"min=1,max=10"`
	MemoryCost  uint32 `mapstructure:"memory_cost" validate:"min=8192,max=4194304"`
	Parallelism uint8  `mapstructure:"parallelism" validate:"min=1,max=64"`
	KeyLength   uint32 `mapstructure:"key_length" validate:"min=16,max=64"`
	SaltLength  int    `mapstructure:"salt_length" validate:"min=8,max=64"`
}

// PBKDF2Settings are the PBKDF2-HMAC-SHA256 defaults
type PBKDF2Settings struct {
	Iterations uint32 `mapstructure:"iterations" validate:"min=1000,max=10000000"`
	KeyLength  uint32 `mapstructure:"key_length" validate:"min=16,max=64"`
	SaltLength int    `mapstructure:"salt_length" validate:"min=8,max=64"`
}

// BcryptSettings are the bcrypt defaults
type BcryptSettings struct {
	Cost int `mapstructure:"cost" validate:"min=4,max=31"`
}

// ScryptSettings are the scrypt defaults; LogN is log2 of the CPU/memory cost N
type ScryptSettings struct {
	LogN       uint8  `mapstructure:"log_n" validate:"min=10,max=20"`
	R          int    `mapstructure:"r" validate:"min=1,max=32"`
	P          int    `mapstructure:"p" validate:"min=1,max=16"`
	KeyLength  uint32 `mapstructure:"key_length" validate:"min=16,max=64"`
	SaltLength int    `mapstructure:"salt_length" validate:"min=8,max=64"`
}

// SessionSettings bound the handle table used by hosts that address sessions by id
type SessionSettings struct {
	MaxSessions int           `mapstructure:"max_sessions" validate:"min=1,max=1000000"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// AuditSettings control the operation audit trail
type AuditSettings struct {
	Enabled   bool          `mapstructure:"enabled"`
	Retention time.Duration `mapstructure:"retention"`
}

// GatewaySettings groups every tunable default of the gateway
type GatewaySettings struct {
	Argon2   Argon2Settings  `mapstructure:"argon2"`
	PBKDF2   PBKDF2Settings  `mapstructure:"pbkdf2"`
	Bcrypt   BcryptSettings  `mapstructure:"bcrypt"`
	Scrypt   ScryptSettings  `mapstructure:"scrypt"`
	Sessions SessionSettings `mapstructure:"sessions"`
	Audit    AuditSettings   `mapstructure:"audit"`
}

// DefaultGatewaySettings returns the canonical defaults
func DefaultGatewaySettings() GatewaySettings {
	return GatewaySettings{
		Argon2: Argon2Settings{
			TimeCost:    3,
			MemoryCost:  64 * 1024,
			Parallelism: 4,
			KeyLength:   32,
			SaltLength:  16,
		},
		PBKDF2: PBKDF2Settings{
			Iterations: 600000,
			KeyLength:  32,
			SaltLength: 16,
		},
		Bcrypt: BcryptSettings{
			Cost: 10,
		},
		Scrypt: ScryptSettings{
			LogN:       15,
			R:          8,
			P:          1,
			KeyLength:  32,
			SaltLength: 16,
		},
		Sessions: SessionSettings{
			MaxSessions: 1024,
			TTL:         5 * time.Minute,
		},
		Audit: AuditSettings{
			Enabled:   true,
			Retention: 30 * 24 * time.Hour,
		},
	}
}

// Validate checks that all fields in GatewaySettings are valid
func (s *GatewaySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for GatewaySettings: %w", err)
	}
	if s.Sessions.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if s.Audit.Enabled && s.Audit.Retention < time.Hour {
		return fmt.Errorf("audit retention must be at least one hour")
	}
	return nil
}
