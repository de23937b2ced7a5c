package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clipsave [url]",
		Short: "Download and process media clips",
		Long: `clipsave downloads media from a link at a chosen quality, extracts
audio, applies audio effects, trims segments, and converts clips to
voice messages.

Provide a URL to pick a quality interactively, or use the subcommands
for non-interactive operation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runInteractiveFetch(app, args[0])
		},
	}

	rootCmd.AddCommand(NewFetchCmd(app))
	rootCmd.AddCommand(NewAudioCmd(app))
	rootCmd.AddCommand(NewFxCmd(app))
	rootCmd.AddCommand(NewExtractCmd(app))
	rootCmd.AddCommand(NewTrimCmd(app))
	rootCmd.AddCommand(NewVoiceCmd(app))
	rootCmd.AddCommand(NewCacheCmd(app))
	rootCmd.AddCommand(NewDepsCmd(app))

	return rootCmd
}

// Execute wires the app and runs the CLI
func Execute() {
	app, err := NewApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize:", err)
		os.Exit(1)
	}
	if err := NewRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
