package cryptography

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	defaultHKDFLength = 32
	maxHKDFLength     = 255 * sha256.Size
)

// passwordProcessor struct that implements the PasswordProcessor interface
type passwordProcessor struct {
	settings config.GatewaySettings
	logger   logger.Logger
}

// NewPasswordProcessor creates and returns a new instance of passwordProcessor
func NewPasswordProcessor(settings config.GatewaySettings, logger logger.Logger) (cryptoalg.PasswordProcessor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &passwordProcessor{
		settings: settings,
		logger:   logger,
	}, nil
}

// Hash hashes password into an encoded string, or derives raw key bytes for HKDF.
func (p *passwordProcessor) Hash(variant gateway.Variant, params *gateway.ParameterSet, password []byte) ([]byte, error) {
	if params == nil {
		params = &gateway.ParameterSet{}
	}

	var out []byte
	var err error

	switch variant {
	case gateway.Argon2i, gateway.Argon2id:
		out, err = p.hashArgon2(variant, params, password)
	case gateway.Bcrypt:
		cost := p.settings.Bcrypt.Cost
		if params.Cost != 0 {
			cost = params.Cost
		}
		out, err = bcrypt.GenerateFromPassword(password, cost)
	case gateway.PBKDF2SHA256:
		out, err = p.hashPBKDF2(params, password)
	case gateway.Scrypt:
		out, err = p.hashScrypt(params, password)
	case gateway.HKDFSHA256:
		out, err = deriveHKDF(params, password)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}

	if err != nil {
		return nil, fmt.Errorf("%s hashing failed: %w", variant, err)
	}

	p.logger.Debug("Hashed password with ", variant)
	return out, nil
}

// Verify checks password against params.EncodedHash. For HKDF the derived
// bytes are compared with params.Tag. A well-formed hash that does not match
// returns false; a malformed hash is an error.
func (p *passwordProcessor) Verify(variant gateway.Variant, params *gateway.ParameterSet, password []byte) (bool, error) {
	if params == nil {
		return false, fmt.Errorf("parameters are required")
	}

	switch variant {
	case gateway.Bcrypt:
		err := bcrypt.CompareHashAndPassword([]byte(params.EncodedHash), password)
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		return true, nil
	case gateway.HKDFSHA256:
		withLength := params.Clone()
		if withLength.HashLength == nil {
			withLength.HashLength = gateway.IntPtr(len(params.Tag))
		}
		derived, err := deriveHKDF(withLength, password)
		if err != nil {
			return false, err
		}
		defer SecureZero(derived)
		return subtle.ConstantTimeCompare(derived, params.Tag) == 1, nil
	}

	stored, err := parsePHC(params.EncodedHash)
	if err != nil {
		return false, err
	}

	var computed []byte
	switch variant {
	case gateway.Argon2i, gateway.Argon2id:
		computed, err = recomputeArgon2(variant, stored, password)
	case gateway.PBKDF2SHA256:
		computed, err = recomputePBKDF2(stored, password)
	case gateway.Scrypt:
		computed, err = recomputeScrypt(stored, password)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
	if err != nil {
		return false, err
	}
	defer SecureZero(computed)

	return subtle.ConstantTimeCompare(computed, stored.Hash) == 1, nil
}

func (p *passwordProcessor) hashArgon2(variant gateway.Variant, params *gateway.ParameterSet, password []byte) ([]byte, error) {
	s := p.settings.Argon2
	t, m, threads := s.TimeCost, s.MemoryCost, s.Parallelism
	if params.TimeCost != 0 {
		t = params.TimeCost
	}
	if params.MemoryCost != 0 {
		m = params.MemoryCost
	}
	if params.Parallelism != 0 {
		threads = params.Parallelism
	}
	keyLen := outputLength(params, s.KeyLength)

	salt, err := saltOrRandom(params.Salt, s.SaltLength)
	if err != nil {
		return nil, err
	}

	h := &phcHash{ID: argon2ID(variant), Version: argon2.Version, Salt: salt}
	h.set("m", int(m))
	h.set("t", int(t))
	h.set("p", int(threads))
	h.Hash = argon2Key(variant, password, salt, t, m, threads, keyLen)
	return []byte(h.String()), nil
}

func recomputeArgon2(variant gateway.Variant, stored *phcHash, password []byte) ([]byte, error) {
	if stored.ID != argon2ID(variant) || stored.Version != argon2.Version {
		return nil, fmt.Errorf("%w: not an %s v=%d hash", ErrMalformedHash, argon2ID(variant), argon2.Version)
	}
	m, err := stored.intParam("m", cryptoalg.MaxArgon2MemoryCost)
	if err != nil {
		return nil, err
	}
	t, err := stored.intParam("t", cryptoalg.MaxArgon2TimeCost)
	if err != nil {
		return nil, err
	}
	threads, err := stored.intParam("p", cryptoalg.MaxArgon2Threads)
	if err != nil {
		return nil, err
	}
	return argon2Key(variant, password, stored.Salt, uint32(t), uint32(m), uint8(threads), uint32(len(stored.Hash))), nil
}

func argon2ID(variant gateway.Variant) string {
	if variant == gateway.Argon2i {
		return "argon2i"
	}
	return "argon2id"
}

func argon2Key(variant gateway.Variant, password, salt []byte, t, m uint32, threads uint8, keyLen uint32) []byte {
	if variant == gateway.Argon2i {
		return argon2.Key(password, salt, t, m, threads, keyLen)
	}
	return argon2.IDKey(password, salt, t, m, threads, keyLen)
}

func (p *passwordProcessor) hashPBKDF2(params *gateway.ParameterSet, password []byte) ([]byte, error) {
	s := p.settings.PBKDF2
	iterations := s.Iterations
	if params.Iterations != 0 {
		iterations = params.Iterations
	}
	keyLen := outputLength(params, s.KeyLength)

	salt, err := saltOrRandom(params.Salt, s.SaltLength)
	if err != nil {
		return nil, err
	}

	h := &phcHash{ID: "pbkdf2-sha256", Salt: salt}
	h.set("i", int(iterations))
	h.Hash = pbkdf2.Key(password, salt, int(iterations), int(keyLen), sha256.New)
	return []byte(h.String()), nil
}

func recomputePBKDF2(stored *phcHash, password []byte) ([]byte, error) {
	if stored.ID != "pbkdf2-sha256" {
		return nil, fmt.Errorf("%w: not a pbkdf2-sha256 hash", ErrMalformedHash)
	}
	iterations, err := stored.intParam("i", cryptoalg.MaxPBKDF2Iterations)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, stored.Salt, iterations, len(stored.Hash), sha256.New), nil
}

func (p *passwordProcessor) hashScrypt(params *gateway.ParameterSet, password []byte) ([]byte, error) {
	s := p.settings.Scrypt
	logN := int(s.LogN)
	if params.Cost != 0 {
		logN = params.Cost
	}
	keyLen := outputLength(params, s.KeyLength)

	salt, err := saltOrRandom(params.Salt, s.SaltLength)
	if err != nil {
		return nil, err
	}

	key, err := scrypt.Key(password, salt, 1<<logN, s.R, s.P, int(keyLen))
	if err != nil {
		return nil, err
	}

	h := &phcHash{ID: "scrypt", Salt: salt, Hash: key}
	h.set("ln", logN)
	h.set("r", s.R)
	h.set("p", s.P)
	return []byte(h.String()), nil
}

func recomputeScrypt(stored *phcHash, password []byte) ([]byte, error) {
	if stored.ID != "scrypt" {
		return nil, fmt.Errorf("%w: not a scrypt hash", ErrMalformedHash)
	}
	logN, err := stored.intParam("ln", cryptoalg.MaxScryptLogN)
	if err != nil {
		return nil, err
	}
	r, err := stored.intParam("r", cryptoalg.MaxScryptR)
	if err != nil {
		return nil, err
	}
	par, err := stored.intParam("p", cryptoalg.MaxScryptP)
	if err != nil {
		return nil, err
	}
	return scrypt.Key(password, stored.Salt, 1<<logN, r, par, len(stored.Hash))
}

// deriveHKDF runs HKDF-SHA256 with Salt as salt and DeriveKeyContext as info.
func deriveHKDF(params *gateway.ParameterSet, secret []byte) ([]byte, error) {
	length := outputLength(params, defaultHKDFLength)
	if length == 0 || length > maxHKDFLength {
		return nil, fmt.Errorf("hkdf output length must be 1 to %d bytes", maxHKDFLength)
	}

	var info []byte
	if params.DeriveKeyContext != nil {
		info = []byte(*params.DeriveKeyContext)
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, params.Salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

func outputLength(params *gateway.ParameterSet, fallback uint32) uint32 {
	if params.HashLength != nil && *params.HashLength > 0 {
		return uint32(*params.HashLength)
	}
	return fallback
}

func saltOrRandom(salt []byte, length int) ([]byte, error) {
	if len(salt) > 0 {
		return append([]byte{}, salt...), nil
	}
	generated := make([]byte, length)
	if _, err := rand.Read(generated); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return generated, nil
}
