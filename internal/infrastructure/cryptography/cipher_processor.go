package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/jacobsa/crypto/siv"
	"github.com/pion/dtls/v2/pkg/crypto/ccm"
	"github.com/rfjakob/eme"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	ccmTagSize   = 16
	ccmNonceSize = 13
)

// cipherProcessor struct that implements the CipherProcessor interface
type cipherProcessor struct {
	logger logger.Logger
}

// NewCipherProcessor creates and returns a new instance of cipherProcessor
func NewCipherProcessor(logger logger.Logger) (cryptoalg.CipherProcessor, error) {
	return &cipherProcessor{
		logger: logger,
	}, nil
}

// Encrypt encrypts plaintext with the variant's mode.
func (p *cipherProcessor) Encrypt(variant gateway.Variant, params *gateway.ParameterSet, plaintext []byte) ([]byte, error) {
	if params == nil {
		return nil, fmt.Errorf("parameters are required")
	}

	var out []byte
	var err error

	switch variant {
	case gateway.AES128GCM, gateway.AES192GCM, gateway.AES256GCM,
		gateway.AES128CCM, gateway.AES192CCM, gateway.AES256CCM,
		gateway.ChaCha20Poly1305, gateway.XChaCha20Poly1305:
		var aead cipher.AEAD
		aead, err = newAEAD(variant, params.Key)
		if err == nil {
			out = aead.Seal(nil, params.Nonce, plaintext, params.AdditionalData)
		}
	case gateway.AES128SIV, gateway.AES256SIV:
		out, err = siv.Encrypt(nil, params.Key, plaintext, sivAssociated(params))
	case gateway.AES256EME:
		out, err = emeTransform(params, plaintext, true)
	case gateway.AES128CTR, gateway.AES192CTR, gateway.AES256CTR, gateway.DESCTR, gateway.TripleDESCTR, gateway.ChaCha20:
		out, err = xorStream(variant, params, plaintext)
	case gateway.DESCBC, gateway.TripleDESCBC:
		out, err = cbcEncrypt(variant, params, plaintext)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}

	if err != nil {
		return nil, fmt.Errorf("%s encryption failed: %w", variant, err)
	}

	p.logger.Debug("Encrypted with ", variant, " plaintext_size=", len(plaintext))
	return out, nil
}

// Decrypt decrypts ciphertext. No plaintext is returned when authentication
// or padding checks fail.
func (p *cipherProcessor) Decrypt(variant gateway.Variant, params *gateway.ParameterSet, ciphertext []byte) ([]byte, error) {
	if params == nil {
		return nil, fmt.Errorf("parameters are required")
	}

	var out []byte
	var err error

	switch variant {
	case gateway.AES128GCM, gateway.AES192GCM, gateway.AES256GCM,
		gateway.AES128CCM, gateway.AES192CCM, gateway.AES256CCM,
		gateway.ChaCha20Poly1305, gateway.XChaCha20Poly1305:
		var aead cipher.AEAD
		aead, err = newAEAD(variant, params.Key)
		if err == nil {
			out, err = aead.Open(nil, params.Nonce, ciphertext, params.AdditionalData)
			if err != nil {
				err = fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
			}
		}
	case gateway.AES128SIV, gateway.AES256SIV:
		out, err = siv.Decrypt(params.Key, ciphertext, sivAssociated(params))
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
	case gateway.AES256EME:
		out, err = emeTransform(params, ciphertext, false)
	case gateway.AES128CTR, gateway.AES192CTR, gateway.AES256CTR, gateway.DESCTR, gateway.TripleDESCTR, gateway.ChaCha20:
		out, err = xorStream(variant, params, ciphertext)
	case gateway.DESCBC, gateway.TripleDESCBC:
		out, err = cbcDecrypt(variant, params, ciphertext)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}

	if err != nil {
		return nil, fmt.Errorf("%s decryption failed: %w", variant, err)
	}

	p.logger.Debug("Decrypted with ", variant, " ciphertext_size=", len(ciphertext))
	return out, nil
}

func newAEAD(variant gateway.Variant, key []byte) (cipher.AEAD, error) {
	switch variant {
	case gateway.ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	case gateway.XChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	switch variant {
	case gateway.AES128GCM, gateway.AES192GCM, gateway.AES256GCM:
		return cipher.NewGCM(block)
	case gateway.AES128CCM, gateway.AES192CCM, gateway.AES256CCM:
		return ccm.NewCCM(block, ccmTagSize, ccmNonceSize)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
}

// sivAssociated orders the associated data vector as AD then nonce.
func sivAssociated(params *gateway.ParameterSet) [][]byte {
	var associated [][]byte
	if params.AdditionalData != nil {
		associated = append(associated, params.AdditionalData)
	}
	if params.Nonce != nil {
		associated = append(associated, params.Nonce)
	}
	return associated
}

func emeTransform(params *gateway.ParameterSet, data []byte, encrypt bool) ([]byte, error) {
	block, err := aes.NewCipher(params.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 || len(data) > 128*aes.BlockSize {
		return nil, fmt.Errorf("eme input must be 1 to 128 whole blocks, got %d bytes", len(data))
	}
	c := eme.New(block)
	if encrypt {
		return c.Encrypt(params.Nonce, data), nil
	}
	return c.Decrypt(params.Nonce, data), nil
}

func xorStream(variant gateway.Variant, params *gateway.ParameterSet, in []byte) ([]byte, error) {
	var stream cipher.Stream

	switch variant {
	case gateway.ChaCha20:
		c, err := chacha20.NewUnauthenticatedCipher(params.Key, params.Nonce)
		if err != nil {
			return nil, err
		}
		stream = c
	default:
		block, err := newBlockCipher(variant, params.Key)
		if err != nil {
			return nil, err
		}
		stream = cipher.NewCTR(block, params.Nonce)
	}

	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}

func cbcEncrypt(variant gateway.Variant, params *gateway.ParameterSet, plaintext []byte) ([]byte, error) {
	block, err := newBlockCipher(variant, params.Key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	cipher.NewCBCEncrypter(block, params.Nonce).CryptBlocks(padded, padded)
	return padded, nil
}

func cbcDecrypt(variant gateway.Variant, params *gateway.ParameterSet, ciphertext []byte) ([]byte, error) {
	block, err := newBlockCipher(variant, params.Key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d", ErrInvalidPadding, len(ciphertext))
	}

	buf := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, params.Nonce).CryptBlocks(buf, ciphertext)

	plaintext, err := pkcs7Unpad(buf, block.BlockSize())
	if err != nil {
		SecureZero(buf)
		return nil, err
	}
	return plaintext, nil
}

func newBlockCipher(variant gateway.Variant, key []byte) (cipher.Block, error) {
	var block cipher.Block
	var err error

	switch variant {
	case gateway.DESCBC, gateway.DESCTR:
		block, err = des.NewCipher(key)
	case gateway.TripleDESCBC, gateway.TripleDESCTR:
		block, err = des.NewTripleDESCipher(key)
	default:
		block, err = aes.NewCipher(key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return block, nil
}
