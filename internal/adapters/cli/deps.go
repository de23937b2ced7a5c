package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage external tools (yt-dlp, ffmpeg)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show tool status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsStatus(app)
		},
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsInstall(app)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to the latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsUpdate(app)
		},
	}

	cmd.AddCommand(statusCmd, installCmd, updateCmd)
	return cmd
}

func runDepsStatus(app *App) error {
	fmt.Println()
	fmt.Println("Tool Status:")
	fmt.Println()

	if app.Tool.IsAvailable() {
		fmt.Printf("  yt-dlp:  installed (%s)\n", app.Tool.GetBinaryPath())
	} else {
		fmt.Println("  yt-dlp:  not found")
	}

	if app.Engine.IsAvailable() {
		fmt.Printf("  ffmpeg:  installed (%s)\n", app.Engine.GetBinaryPath())
	} else {
		fmt.Println("  ffmpeg:  not found (install via your package manager)")
	}
	fmt.Println()

	return nil
}

func runDepsInstall(app *App) error {
	if app.Tool.IsAvailable() {
		fmt.Println("yt-dlp is already installed")
		return nil
	}

	fmt.Println("Installing yt-dlp...")

	err := app.Tool.Install(context.Background(), func(downloaded, total int64) {
		if total > 0 {
			pct := float64(downloaded) / float64(total) * 100
			fmt.Printf("\rProgress: %.1f%%", pct)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println("\nyt-dlp installed")
	return nil
}

func runDepsUpdate(app *App) error {
	if !app.Tool.IsAvailable() {
		return fmt.Errorf("yt-dlp is not installed. Run 'clipsave deps install' first")
	}

	fmt.Println("Updating yt-dlp...")

	if err := app.Tool.Update(context.Background()); err != nil {
		return err
	}

	fmt.Println("yt-dlp updated")
	return nil
}
