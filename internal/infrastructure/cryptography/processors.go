package cryptography

import (
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// NewProcessors builds the full set of family processors.
func NewProcessors(settings config.GatewaySettings, logger logger.Logger) (*cryptoalg.Processors, error) {
	hashProcessor, err := NewHashProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash processor: %w", err)
	}
	macProcessor, err := NewMACProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mac processor: %w", err)
	}
	cipherProcessor, err := NewCipherProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher processor: %w", err)
	}
	passwordProcessor, err := NewPasswordProcessor(settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create password processor: %w", err)
	}
	rsaProcessor, err := NewRSAProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rsa processor: %w", err)
	}
	ecdsaProcessor, err := NewECDSAProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ecdsa processor: %w", err)
	}
	signatureProcessor, err := NewSignatureProcessor(ecdsaProcessor, rsaProcessor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature processor: %w", err)
	}
	keyAgreementProcessor, err := NewKeyAgreementProcessor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key agreement processor: %w", err)
	}

	return &cryptoalg.Processors{
		Hash:         hashProcessor,
		MAC:          macProcessor,
		Cipher:       cipherProcessor,
		Password:     passwordProcessor,
		RSA:          rsaProcessor,
		Signature:    signatureProcessor,
		KeyAgreement: keyAgreementProcessor,
	}, nil
}
