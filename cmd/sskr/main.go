package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/martinivanov/sskr-tool/internal/cli"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "sskr",
		Short: "Split and recover BIP-39 mnemonics with SSKR",
		Long: `sskr splits a BIP-39 mnemonic into SSKR shares and recombines them.

SSKR (Sharded Secret Key Reconstruction, bcr-2020-011) is a two-level
Shamir's Secret Sharing scheme: the seed entropy is split across groups,
each group is split across members, and recovery needs the group
threshold of groups to each reach their member threshold. Shares are
printed as bytewords, one line per share.

Only use this tool on a secure, offline computer.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		cli.NewSplitCommand(),
		cli.NewRecoverCommand(),
		cli.NewInspectCommand(),
		cli.NewGenerateCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
