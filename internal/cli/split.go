package cli

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/martinivanov/sskr-tool/internal/validation"
	"github.com/martinivanov/sskr-tool/pkg/mnemonic"
	"github.com/martinivanov/sskr-tool/pkg/secure"
	"github.com/martinivanov/sskr-tool/pkg/sskr"
)

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	var (
		minimal    bool
		secretHex  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "split <group-spec> <group-threshold> [mnemonic]",
		Short: "Split a BIP-39 mnemonic into SSKR shares",
		Long: `Split a BIP-39 mnemonic into SSKR byteword shares.

The group spec is a comma-separated list of M-of-N groups, with at most
16 groups and at most 16 shares per group. The group threshold is the
number of groups that must be satisfied to recover the seed.

If no mnemonic is given, a random 12-word mnemonic is generated.`,
		Example: `  # Three groups; any two of them recover the seed
  sskr split "2of3,4of9,3of5" 2

  # Split an existing 24-word phrase
  sskr split "2of3" 1 "zoo zoo zoo ... vote"

  # Compact share strings
  sskr split --minimal "3of5" 1`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupThreshold, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid group threshold %q", args[1])
			}

			spec, err := parseSpec(args[0], groupThreshold)
			if err != nil {
				return err
			}

			secret, phrase, err := resolveSecret(args, secretHex)
			if err != nil {
				return err
			}
			defer secure.ClearBytes(&secret)

			groups, err := sskr.Split(secret, spec, rand.Reader)
			if err != nil {
				return fmt.Errorf("failed to split mnemonic: %w", err)
			}
			slog.Debug("split complete", "groups", len(groups))

			shareStrings := make([][]string, len(groups))
			for g, group := range groups {
				shareStrings[g] = make([]string, len(group))
				for m := range group {
					s, err := encodeShareString(&group[m], minimal)
					if err != nil {
						return fmt.Errorf("failed to encode share %d-%d: %w", g+1, m+1, err)
					}
					shareStrings[g][m] = s
				}
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Printf("Entropy:  0x%s\n", hex.EncodeToString(secret))
			if phrase != "" {
				cyan.Printf("Mnemonic: %s\n", phrase)
			}
			fmt.Println()

			if outputFile != "" {
				if err := saveSharesToFile(shareStrings, spec, outputFile); err != nil {
					return err
				}
			}

			displayShareGroups(shareStrings, spec)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "Emit minimal (two-letter) bytewords")
	cmd.Flags().StringVar(&secretHex, "secret", "", "Split a raw hex secret instead of a mnemonic")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Also write shares to a JSON file")

	return cmd
}

// resolveSecret determines the secret to split: an explicit hex secret, the
// entropy of a supplied mnemonic, or the entropy of a fresh random one.
func resolveSecret(args []string, secretHex string) (secret []byte, phrase string, err error) {
	if secretHex != "" {
		if len(args) > 2 {
			return nil, "", fmt.Errorf("cannot combine --secret with a mnemonic argument")
		}
		if err := validation.ValidateHex(secretHex); err != nil {
			return nil, "", err
		}
		secret, err := hex.DecodeString(strings.TrimSpace(secretHex))
		if err != nil {
			return nil, "", fmt.Errorf("invalid hex secret: %w", err)
		}
		// Raw secrets with entropy-compatible lengths still display as a
		// mnemonic for recovery convenience.
		if m, mErr := mnemonic.FromEntropy(secret); mErr == nil {
			return secret, m.Words(), nil
		}
		return secret, "", nil
	}

	var m *mnemonic.Mnemonic
	if len(args) > 2 {
		if err := validation.ValidateMnemonicShape(args[2]); err != nil {
			return nil, "", err
		}
		m, err = mnemonic.FromWords(args[2])
		if err != nil {
			return nil, "", err
		}
	} else {
		m, err = mnemonic.NewMnemonic(128)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate mnemonic: %w", err)
		}
	}

	secret, err = m.Entropy()
	if err != nil {
		return nil, "", err
	}
	return secret, m.Words(), nil
}

func saveSharesToFile(shareStrings [][]string, spec sskr.Spec, filename string) error {
	type shareFile struct {
		Standard       string           `json:"standard"`
		GroupThreshold int              `json:"group_threshold"`
		Groups         []sskr.GroupSpec `json:"groups"`
		Shares         [][]string       `json:"shares"`
	}

	data := shareFile{
		Standard:       "SSKR",
		GroupThreshold: int(spec.GroupThreshold),
		Groups:         spec.Groups,
		Shares:         shareStrings,
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ Shares saved to %s\n\n", filename)

	return nil
}
