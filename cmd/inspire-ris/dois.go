package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inspire-ris/internal/citation"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

var doisCmd = &cobra.Command{
	Use:   "dois <file.ris>",
	Short: "List the DOIs an export would exclude",
	Long: `Dois parses a RIS export (UTF-8 or UTF-16) the same way fetch --exclude
does and prints the normalised DOIs, one per line, sorted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrConfiguration, err)
		}
		defer f.Close()

		dois, err := citation.ParseDOIs(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		sort.Strings(dois)
		for _, d := range dois {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doisCmd)
}
