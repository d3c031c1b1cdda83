// Package cli wires the source adapters, pipeline, and aggregator into
// the commentlens command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/spacesedan/commentlens/config"
)

type rootFlags struct {
	backend    string
	exportPath string
	workers    int
}

func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "commentlens",
		Short: "Classify social-media comment sentiment and summarize the results",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "",
		"classifier backend: vader, huggingface, or openai (default from SENTIMENT_BACKEND)")
	rootCmd.PersistentFlags().StringVarP(&flags.exportPath, "export", "o", "",
		"write the analyzed batch to this CSV file")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0,
		"classification workers (default from PIPELINE_WORKERS)")

	rootCmd.AddCommand(
		newTextCommand(flags),
		newCSVCommand(flags),
		newURLCommand(flags),
		newTemplateCommand(),
	)

	return rootCmd
}

// effectiveConfig folds command-line overrides into the env config.
func effectiveConfig(flags *rootFlags) config.Config {
	cfg := config.FromEnv()
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	return cfg
}
