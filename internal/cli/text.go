package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/commentlens/internal/adapters"
)

func newTextCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "text <comment>",
		Short: "Analyze a single typed comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := &adapters.ManualAdapter{Text: strings.Join(args, " ")}
			return runAnalysis(cmd.Context(), effectiveConfig(flags), adapter, flags.exportPath)
		},
	}
}
