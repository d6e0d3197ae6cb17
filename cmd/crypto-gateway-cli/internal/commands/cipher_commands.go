package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CipherCommandHandler encapsulates logic for symmetric and RSA-OAEP encryption via CLI.
type CipherCommandHandler struct {
	gateway gateway.GatewayService
	logger  logger.Logger
}

// NewCipherCommandHandler initializes and returns a CipherCommandHandler instance
func NewCipherCommandHandler() (*CipherCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	gatewayService, err := setupGateway(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	return &CipherCommandHandler{
		gateway: gatewayService,
		logger:  loggerInstance,
	}, nil
}

// EncryptCmd encrypts a file with the selected variant
func (commandHandler *CipherCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) {
	commandHandler.transform(cmd, gateway.OperationEncrypt)
}

// DecryptCmd decrypts a file with the selected variant
func (commandHandler *CipherCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) {
	commandHandler.transform(cmd, gateway.OperationDecrypt)
}

func (commandHandler *CipherCommandHandler) transform(cmd *cobra.Command, operation gateway.Operation) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}

	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer params.Wipe()
	params.Operation = operation

	// RSA-OAEP keys are DER blobs and are read from disk
	if keyFilePath != "" {
		if params.Key, err = os.ReadFile(filepath.Clean(keyFilePath)); err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	input, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	output, err := commandHandler.gateway.Compute(cmd.Context(), variant, params, input)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, output, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info(fmt.Sprintf("%sed data saved to %s", operation, outputFilePath))
}

// InitCipherCommands registers encryption commands
func InitCipherCommands(rootCmd *cobra.Command) error {
	handler, err := NewCipherCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create cipher command handler %w", err)
	}

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file",
		Run:   handler.EncryptCmd,
	}
	addParameterFlags(encryptCmd)
	encryptCmd.Flags().StringP("input-file", "", "", "Path to input file that needs to be encrypted")
	encryptCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptCmd.Flags().StringP("key-file", "", "", "Path to a DER public key for rsa-oaep")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file",
		Run:   handler.DecryptCmd,
	}
	addParameterFlags(decryptCmd)
	decryptCmd.Flags().StringP("input-file", "", "", "Input encrypted file path")
	decryptCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptCmd.Flags().StringP("key-file", "", "", "Path to a DER private key for rsa-oaep")
	rootCmd.AddCommand(decryptCmd)

	return nil
}
