package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/clipsave/internal/adapters/cli/tui"
)

// NewCacheCmd creates the cache subcommand
func NewCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage downloaded artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheStatus(app)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show artifact cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheStatus(app)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.CacheSvc.Clear(); err != nil {
				return err
			}
			fmt.Println("All artifacts cleared")
			return nil
		},
	}

	cleanCmd := &cobra.Command{
		Use:   "clean <content-id>",
		Short: "Remove every variant of one content id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.CacheSvc.CleanVariants(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d artifacts for %s\n", removed, args[0])
			return nil
		},
	}

	cmd.AddCommand(statsCmd)
	cmd.AddCommand(clearCmd)
	cmd.AddCommand(cleanCmd)

	return cmd
}

func runCacheStatus(app *App) error {
	stats, err := app.CacheSvc.Stats()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Artifact Cache:")
	fmt.Printf("  Dir:   %s\n", app.Artifacts.Dir())
	fmt.Printf("  Items: %d\n", stats.ItemCount)
	fmt.Printf("  Size:  %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Println()

	return nil
}
