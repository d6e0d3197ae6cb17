package commands

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const streamChunkSize = 64 * 1024

// DigestCommandHandler encapsulates logic for hashing and MAC commands via CLI.
type DigestCommandHandler struct {
	gateway gateway.GatewayService
	logger  logger.Logger
}

// NewDigestCommandHandler initializes and returns a DigestCommandHandler instance
func NewDigestCommandHandler() (*DigestCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	gatewayService, err := setupGateway(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	return &DigestCommandHandler{
		gateway: gatewayService,
		logger:  loggerInstance,
	}, nil
}

// VariantsCmd prints every registered variant with its family
func (commandHandler *DigestCommandHandler) VariantsCmd(cmd *cobra.Command, _ []string) {
	infos := commandHandler.gateway.Variants()
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	for _, info := range infos {
		line := fmt.Sprintf("%-20s %s", info.Name, info.Family)
		if info.Streaming {
			line += " streaming"
		}
		if info.XOF {
			line += " xof"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

// HashCmd streams a file through a hash or MAC session and prints the hex output
func (commandHandler *DigestCommandHandler) HashCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer params.Wipe()

	session, err := commandHandler.gateway.OpenSession(cmd.Context(), variant, params)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer session.Close()

	if err := streamFile(cmd.Context(), session, inputFilePath); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	output, err := session.Finalize()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(output))
}

// VerifyMACCmd recomputes the MAC of a file and compares it with --tag
func (commandHandler *DigestCommandHandler) VerifyMACCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	variant, params, err := readParameters(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer params.Wipe()
	if params.Tag, err = hexFlag(cmd, "tag"); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	message, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
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

// streamFile reads path in chunks on one goroutine and feeds them into
// session on another. The session itself is only touched by the consumer.
func streamFile(ctx context.Context, session gateway.Session, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	chunks := make(chan []byte, 4)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chunks)
		for {
			buf := make([]byte, streamChunkSize)
			n, err := file.Read(buf)
			if n > 0 {
				select {
				case chunks <- buf[:n]:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
		}
	})

	g.Go(func() error {
		for chunk := range chunks {
			if err := session.Update(chunk); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// InitDigestCommands registers hashing and MAC commands
func InitDigestCommands(rootCmd *cobra.Command) error {
	handler, err := NewDigestCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create digest command handler %w", err)
	}

	var variantsCmd = &cobra.Command{
		Use:   "variants",
		Short: "List supported variants",
		Run:   handler.VariantsCmd,
	}
	rootCmd.AddCommand(variantsCmd)

	var hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Stream a file through a hash or MAC variant",
		Run:   handler.HashCmd,
	}
	addParameterFlags(hashCmd)
	hashCmd.Flags().StringP("input-file", "", "", "Path to the input file")
	rootCmd.AddCommand(hashCmd)

	var verifyMACCmd = &cobra.Command{
		Use:   "verify-mac",
		Short: "Verify the MAC tag of a file",
		Run:   handler.VerifyMACCmd,
	}
	addParameterFlags(verifyMACCmd)
	verifyMACCmd.Flags().StringP("input-file", "", "", "Path to the input file")
	verifyMACCmd.Flags().StringP("tag", "", "", "Expected tag (hex)")
	rootCmd.AddCommand(verifyMACCmd)

	return nil
}
