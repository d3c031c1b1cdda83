package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/commentlens/internal/adapters"
)

func newCSVCommand(flags *rootFlags) *cobra.Command {
	var textColumn string

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Analyze every comment_text row of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			adapter := &adapters.CSVAdapter{Reader: f, TextColumn: textColumn}
			return runAnalysis(cmd.Context(), effectiveConfig(flags), adapter, flags.exportPath)
		},
	}

	cmd.Flags().StringVar(&textColumn, "text-column", "",
		"name of the text column (default \"comment_text\"; use \"text\" for exported batches)")
	return cmd
}
