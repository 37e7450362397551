package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/martinivanov/sskr-tool/pkg/mnemonic"
	"github.com/martinivanov/sskr-tool/pkg/secure"
	"github.com/martinivanov/sskr-tool/pkg/sskr"
)

// NewRecoverCommand creates the recover command.
func NewRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover [file]",
		Short: "Recover a BIP-39 mnemonic from SSKR shares",
		Long: `Recover the original BIP-39 mnemonic from SSKR byteword shares.

Shares are read from the given file, one per line; blank lines and lines
starting with '#' are skipped. Without a file, shares are collected
interactively from stdin.`,
		Example: `  # Recover from a file of shares
  sskr recover shares.txt

  # Enter shares interactively
  sskr recover`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []string
			var err error
			if len(args) == 1 {
				lines, err = readShareLines(args[0])
			} else {
				lines, err = collectShareLines()
			}
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("no shares provided")
			}
			slog.Debug("collected shares", "count", len(lines))

			shareBytes := make([][]byte, len(lines))
			for i, line := range lines {
				data, err := decodeShareBytes(line)
				if err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				shareBytes[i] = data
			}

			secret, err := sskr.CombineBytes(shareBytes)
			if err != nil {
				return fmt.Errorf("failed to recover mnemonic: %w", err)
			}
			defer secure.ClearBytes(&secret)

			green := color.New(color.FgGreen, color.Bold)
			cyan := color.New(color.FgCyan, color.Bold)

			green.Println("✓ Successfully recovered the secret!")
			fmt.Println()
			cyan.Printf("Entropy:  0x%s\n", hex.EncodeToString(secret))

			// Secrets with entropy-compatible lengths display as a phrase;
			// raw secrets of other lengths are hex only.
			if m, err := mnemonic.FromEntropy(secret); err == nil {
				cyan.Printf("Mnemonic: %s\n", m.Words())
			}

			return nil
		},
	}

	return cmd
}
