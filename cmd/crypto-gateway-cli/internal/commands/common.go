package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/app"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupGateway builds a gateway service with the default tuning.
func setupGateway(loggerInstance logger.Logger) (gateway.GatewayService, error) {
	processors, err := cryptography.NewProcessors(config.DefaultGatewaySettings(), loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create processors: %w", err)
	}
	return app.NewGatewayService(processors, loggerInstance)
}

// addParameterFlags registers the hex-encoded parameter flags shared by the
// one-shot and session commands.
func addParameterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("variant", "", "", "Variant name, see the variants command")
	cmd.Flags().StringP("key", "", "", "Key (hex)")
	cmd.Flags().StringP("nonce", "", "", "Nonce or IV (hex)")
	cmd.Flags().StringP("aad", "", "", "Additional authenticated data (hex)")
	cmd.Flags().StringP("hash", "", "", "Inner hash for HMAC, HKDF and RSA variants")
	cmd.Flags().IntP("hash-length", "", 0, "Requested output length in bytes")
	cmd.Flags().StringP("keyed-key", "", "", "BLAKE2/BLAKE3 key (hex)")
	cmd.Flags().StringP("derive-key-context", "", "", "BLAKE3 key derivation context")
	cmd.Flags().StringP("salt", "", "", "Salt (hex)")
	cmd.Flags().StringP("label", "", "", "RSA-OAEP label (hex)")
}

// readParameters builds a parameter set from the flags registered by
// addParameterFlags. Unset flags leave their field empty.
func readParameters(cmd *cobra.Command) (gateway.Variant, *gateway.ParameterSet, error) {
	name, err := cmd.Flags().GetString("variant")
	if err != nil {
		return gateway.VariantUnknown, nil, fmt.Errorf("invalid variant flag: %w", err)
	}
	variant, err := gateway.ParseVariant(name)
	if err != nil {
		return gateway.VariantUnknown, nil, err
	}

	params := &gateway.ParameterSet{}
	hexFields := map[string]*[]byte{
		"key":       &params.Key,
		"nonce":     &params.Nonce,
		"aad":       &params.AdditionalData,
		"keyed-key": &params.KeyedKey,
		"salt":      &params.Salt,
		"label":     &params.Label,
	}
	for flag, target := range hexFields {
		if *target, err = hexFlag(cmd, flag); err != nil {
			return gateway.VariantUnknown, nil, err
		}
	}

	if cmd.Flags().Changed("hash") {
		hashName, _ := cmd.Flags().GetString("hash")
		if params.Hash, err = gateway.ParseVariant(hashName); err != nil {
			return gateway.VariantUnknown, nil, err
		}
	}
	if cmd.Flags().Changed("hash-length") {
		length, _ := cmd.Flags().GetInt("hash-length")
		params.HashLength = &length
	}
	if cmd.Flags().Changed("derive-key-context") {
		deriveContext, _ := cmd.Flags().GetString("derive-key-context")
		params.DeriveKeyContext = &deriveContext
	}
	return variant, params, nil
}

// hexFlag decodes a hex string flag. An unset flag yields nil.
func hexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex: %w", name, err)
	}
	return decoded, nil
}
