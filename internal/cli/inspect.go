package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/martinivanov/sskr-tool/pkg/sskr"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <share>",
		Short: "Show the metadata of a single SSKR share",
		Long: `Decode one byteword share and print its header metadata: the share
set identifier, group placement, and thresholds. The share value itself
is not displayed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeShareBytes(args[0])
			if err != nil {
				return err
			}

			share, err := sskr.ParseShare(data)
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Println("Share metadata:")
			fmt.Printf("  Identifier:       %04X\n", share.Identifier)
			fmt.Printf("  Group:            %d of %d (threshold %d)\n",
				share.GroupIndex+1, share.GroupCount, share.GroupThreshold)
			fmt.Printf("  Member:           %d (threshold %d)\n",
				share.MemberIndex+1, share.MemberThreshold)
			fmt.Printf("  Value length:     %d bytes\n", len(share.Value))

			return nil
		},
	}

	return cmd
}
