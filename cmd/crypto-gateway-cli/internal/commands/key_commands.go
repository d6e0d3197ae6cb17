package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for key generation, signatures and key agreement via CLI.
type KeyCommandHandler struct {
	gateway gateway.GatewayService
	logger  logger.Logger
}

// NewKeyCommandHandler initializes and returns a KeyCommandHandler instance
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	gatewayService, err := setupGateway(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	return &KeyCommandHandler{
		gateway: gatewayService,
		logger:  loggerInstance,
	}, nil
}

// GenerateKeyPairCmd generates a key pair and persists both halves in a selected directory
func (commandHandler *KeyCommandHandler) GenerateKeyPairCmd(cmd *cobra.Command, _ []string) {
	name, err := cmd.Flags().GetString("variant")
	if err != nil {
		commandHandler.logger.Error("invalid variant flag ", err)
		return
	}
	keyBits, err := cmd.Flags().GetInt("key-bits")
	if err != nil {
		commandHandler.logger.Error("invalid key-bits flag ", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag ", err)
		return
	}

	variant, err := gateway.ParseVariant(name)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	pair, err := commandHandler.gateway.GenerateKeyPair(cmd.Context(), variant, &gateway.ParameterSet{KeyBits: keyBits})
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer clear(pair.PrivateKey)

	uniqueID := uuid.New()
	privateKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-%s-private-key.bin", uniqueID, variant))
	if err := os.WriteFile(privateKeyFilePath, pair.PrivateKey, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	publicKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-%s-public-key.bin", uniqueID, variant))
	if err := os.WriteFile(publicKeyFilePath, pair.PublicKey, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Private key saved to ", privateKeyFilePath)
	commandHandler.logger.Info("Public key saved to ", publicKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), privateKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), publicKeyFilePath)
}

// SignCmd signs a file with a private key and prints the hex signature
func (commandHandler *KeyCommandHandler) SignCmd(cmd *cobra.Command, _ []string) {
	variant, params, message, ok := commandHandler.readSignatureInput(cmd)
	if !ok {
		return
	}
	defer params.Wipe()

	signature, err := commandHandler.gateway.Compute(cmd.Context(), variant, params, message)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(signature))
}

// VerifyCmd verifies a hex signature over a file with a public key
func (commandHandler *KeyCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) {
	variant, params, message, ok := commandHandler.readSignatureInput(cmd)
	if !ok {
		return
	}
	var err error
	if params.Signature, err = hexFlag(cmd, "signature"); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	valid, err := commandHandler.gateway.Verify(cmd.Context(), variant, params, message)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), valid)
}

// DeriveSharedSecretCmd runs key agreement between a private key file and a peer public key file
func (commandHandler *KeyCommandHandler) DeriveSharedSecretCmd(cmd *cobra.Command, _ []string) {
	name, err := cmd.Flags().GetString("variant")
	if err != nil {
		commandHandler.logger.Error("invalid variant flag ", err)
		return
	}
	privateKeyFilePath, err := cmd.Flags().GetString("private-key-file")
	if err != nil {
		commandHandler.logger.Error("invalid private-key-file flag ", err)
		return
	}
	peerKeyFilePath, err := cmd.Flags().GetString("peer-public-key-file")
	if err != nil {
		commandHandler.logger.Error("invalid peer-public-key-file flag ", err)
		return
	}

	variant, err := gateway.ParseVariant(name)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	privateKey, err := os.ReadFile(filepath.Clean(privateKeyFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer clear(privateKey)
	peerPublicKey, err := os.ReadFile(filepath.Clean(peerKeyFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	secret, err := commandHandler.gateway.DeriveSharedSecret(cmd.Context(), variant, privateKey, peerPublicKey)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer clear(secret)
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(secret))
}

func (commandHandler *KeyCommandHandler) readSignatureInput(cmd *cobra.Command) (gateway.Variant, *gateway.ParameterSet, []byte, bool) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return gateway.VariantUnknown, nil, nil, false
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return gateway.VariantUnknown, nil, nil, false
	}

	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return gateway.VariantUnknown, nil, nil, false
	}
	if params.Key, err = os.ReadFile(filepath.Clean(keyFilePath)); err != nil {
		commandHandler.logger.Error(err)
		return gateway.VariantUnknown, nil, nil, false
	}
	message, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return gateway.VariantUnknown, nil, nil, false
	}
	return variant, params, message, true
}

// InitKeyCommands registers key generation, signature and key agreement commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler %w", err)
	}

	var generateKeyPairCmd = &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate a signature, RSA-OAEP or key agreement key pair",
		Run:   handler.GenerateKeyPairCmd,
	}
	generateKeyPairCmd.Flags().StringP("variant", "", "", "Variant name")
	generateKeyPairCmd.Flags().IntP("key-bits", "", 0, "RSA modulus size (2048, 3072 or 4096)")
	generateKeyPairCmd.Flags().StringP("key-dir", "", "", "Directory to store the key pair")
	rootCmd.AddCommand(generateKeyPairCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file",
		Run:   handler.SignCmd,
	}
	addParameterFlags(signCmd)
	signCmd.Flags().StringP("input-file", "", "", "Path to the file to sign")
	signCmd.Flags().StringP("key-file", "", "", "Path to the private key")
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a file",
		Run:   handler.VerifyCmd,
	}
	addParameterFlags(verifyCmd)
	verifyCmd.Flags().StringP("input-file", "", "", "Path to the signed file")
	verifyCmd.Flags().StringP("key-file", "", "", "Path to the public key")
	verifyCmd.Flags().StringP("signature", "", "", "Signature (hex)")
	rootCmd.AddCommand(verifyCmd)

	var deriveSharedSecretCmd = &cobra.Command{
		Use:   "derive-shared-secret",
		Short: "Derive a shared secret with x25519 or ecdh",
		Run:   handler.DeriveSharedSecretCmd,
	}
	deriveSharedSecretCmd.Flags().StringP("variant", "", "", "Variant name")
	deriveSharedSecretCmd.Flags().StringP("private-key-file", "", "", "Path to the own private key")
	deriveSharedSecretCmd.Flags().StringP("peer-public-key-file", "", "", "Path to the peer public key")
	rootCmd.AddCommand(deriveSharedSecretCmd)

	return nil
}
