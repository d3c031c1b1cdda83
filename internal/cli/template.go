package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/commentlens/internal/export"
)

func newTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print a sample CSV upload template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export.WriteTemplate(os.Stdout)
		},
	}
}
