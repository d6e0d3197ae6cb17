package commands

import (
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// PasswordCommandHandler encapsulates logic for password hashing via CLI.
type PasswordCommandHandler struct {
	gateway gateway.GatewayService
	logger  logger.Logger
}

// NewPasswordCommandHandler initializes and returns a PasswordCommandHandler instance
func NewPasswordCommandHandler() (*PasswordCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	gatewayService, err := setupGateway(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	return &PasswordCommandHandler{
		gateway: gatewayService,
		logger:  loggerInstance,
	}, nil
}

// HashPasswordCmd prints the encoded hash of --password
func (commandHandler *PasswordCommandHandler) HashPasswordCmd(cmd *cobra.Command, _ []string) {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer params.Wipe()

	encoded, err := commandHandler.gateway.Compute(cmd.Context(), variant, params, []byte(password))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
}

// VerifyPasswordCmd checks --password against --encoded-hash
func (commandHandler *PasswordCommandHandler) VerifyPasswordCmd(cmd *cobra.Command, _ []string) {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	encodedHash, err := cmd.Flags().GetString("encoded-hash")
	if err != nil {
		commandHandler.logger.Error("invalid encoded-hash flag ", err)
		return
	}
	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	params.EncodedHash = encodedHash

	valid, err := commandHandler.gateway.Verify(cmd.Context(), variant, params, []byte(password))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), valid)
}

// InitPasswordCommands registers password hashing commands
func InitPasswordCommands(rootCmd *cobra.Command) error {
	handler, err := NewPasswordCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create password command handler %w", err)
	}

	var hashPasswordCmd = &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password with argon2, bcrypt, pbkdf2 or scrypt",
		Run:   handler.HashPasswordCmd,
	}
	addParameterFlags(hashPasswordCmd)
	hashPasswordCmd.Flags().StringP("password", "", "", "Password to hash")
	rootCmd.AddCommand(hashPasswordCmd)

	var verifyPasswordCmd = &cobra.Command{
		Use:   "verify-password",
		Short: "Verify a password against an encoded hash",
		Run:   handler.VerifyPasswordCmd,
	}
	addParameterFlags(verifyPasswordCmd)
	verifyPasswordCmd.Flags().StringP("password", "", "", "Password to check")
	verifyPasswordCmd.Flags().StringP("encoded-hash", "", "", "Encoded hash produced by hash-password")
	rootCmd.AddCommand(verifyPasswordCmd)

	return nil
}
