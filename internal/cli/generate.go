package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/martinivanov/sskr-tool/pkg/mnemonic"
	"github.com/martinivanov/sskr-tool/pkg/secure"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var (
		wordCount int
		rawBytes  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new BIP-39 mnemonic phrase",
		Long: `Generate a cryptographically secure BIP-39 mnemonic suitable for
splitting, or a raw hex secret with --bytes.`,
		Example: `  # 24-word mnemonic
  sskr generate --words 24

  # 32 bytes of raw hex
  sskr generate --bytes 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cyan := color.New(color.FgCyan, color.Bold)

			if rawBytes > 0 {
				secret, err := secure.SecureRandom(rawBytes)
				if err != nil {
					return err
				}
				defer secure.ClearBytes(&secret)

				cyan.Printf("Secret: 0x%s\n", hex.EncodeToString(secret))
				return nil
			}

			entropyBits, err := mnemonic.EntropyBitsFromWordCount(wordCount)
			if err != nil {
				return fmt.Errorf("invalid word count: %w", err)
			}

			m, err := mnemonic.NewMnemonic(entropyBits)
			if err != nil {
				return fmt.Errorf("failed to generate mnemonic: %w", err)
			}

			entropy, err := m.Entropy()
			if err != nil {
				return err
			}
			defer secure.ClearBytes(&entropy)

			cyan.Printf("Entropy:  0x%s\n", hex.EncodeToString(entropy))
			cyan.Printf("Mnemonic: %s\n", m.Words())
			return nil
		},
	}

	cmd.Flags().IntVarP(&wordCount, "words", "w", 12, "Number of mnemonic words (12, 15, 18, 21, or 24)")
	cmd.Flags().IntVarP(&rawBytes, "bytes", "b", 0, "Generate a raw hex secret of this many bytes instead")

	return cmd
}
