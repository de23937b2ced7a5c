package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/clipsave/internal/adapters/cli/tui"
	"github.com/devbush/clipsave/internal/domain"
)

// runInteractiveFetch probes the URL, lets the user pick a quality, and
// downloads the selection.
func runInteractiveFetch(app *App, url string) error {
	ctx := context.Background()

	pr, key, err := app.FetchSvc.Probe(ctx, url)
	if err != nil {
		return err
	}

	choice, err := tui.RunFormatSelect(pr.Title, pr.Options)
	if err != nil {
		return err
	}
	if choice == nil {
		fmt.Println("Cancelled")
		return nil
	}

	if choice.AudioOnly() {
		res, err := app.FetchSvc.DownloadAudio(ctx, key, "mp3")
		if err != nil {
			return err
		}
		printResult(res.Path, res.FromCache)
		return nil
	}

	res, err := app.FetchSvc.Download(ctx, key, choice.Height)
	if err != nil {
		return err
	}
	printResult(res.Path, res.FromCache)
	return nil
}

func printResult(path string, fromCache bool) {
	if fromCache {
		fmt.Printf("✓ Already cached: %s\n", path)
		return
	}
	fmt.Printf("✓ Saved: %s\n", path)
}

// NewFetchCmd creates the non-interactive fetch subcommand
func NewFetchCmd(app *App) *cobra.Command {
	var heightFlag int

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a video at a specific height",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pr, key, err := app.FetchSvc.Probe(ctx, args[0])
			if err != nil {
				return err
			}

			if !hasHeight(pr.Options, heightFlag) {
				return fmt.Errorf("height %d not offered; available: %s", heightFlag, heightList(pr.Options))
			}

			res, err := app.FetchSvc.Download(ctx, key, heightFlag)
			if err != nil {
				return err
			}
			printResult(res.Path, res.FromCache)
			return nil
		},
	}

	cmd.Flags().IntVar(&heightFlag, "height", 720, "Vertical resolution to download")
	return cmd
}

// NewAudioCmd creates the audio download subcommand
func NewAudioCmd(app *App) *cobra.Command {
	var codecFlag string

	cmd := &cobra.Command{
		Use:   "audio <url>",
		Short: "Download the audio track of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, key, err := app.FetchSvc.Probe(ctx, args[0])
			if err != nil {
				return err
			}

			res, err := app.FetchSvc.DownloadAudio(ctx, key, codecFlag)
			if err != nil {
				return err
			}
			printResult(res.Path, res.FromCache)
			return nil
		},
	}

	cmd.Flags().StringVar(&codecFlag, "codec", "mp3", "Audio codec (mp3, m4a, opus)")
	return cmd
}

func hasHeight(options []domain.FormatOption, height int) bool {
	for _, o := range options {
		if o.Height == height {
			return true
		}
	}
	return false
}

func heightList(options []domain.FormatOption) string {
	var b strings.Builder
	for _, o := range options {
		if o.AudioOnly() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", o.Height)
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}
