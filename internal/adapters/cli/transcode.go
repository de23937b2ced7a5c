package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/clipsave/internal/domain"
)

// NewFxCmd creates the audio effect subcommand
func NewFxCmd(app *App) *cobra.Command {
	var effectFlag string

	cmd := &cobra.Command{
		Use:   "fx <file>",
		Short: "Apply an audio effect to a local file",
		Long: "Apply an audio effect to a local file.\n\nEffects: " +
			effectNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.AudioSvc.ApplyEffect(context.Background(), args[0], effectFlag)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Saved: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&effectFlag, "effect", "", "Effect to apply ("+effectNames()+")")
	_ = cmd.MarkFlagRequired("effect")
	return cmd
}

// NewExtractCmd creates the audio extraction subcommand
func NewExtractCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract the audio track of a local file to mp3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.AudioSvc.ExtractAudio(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Saved: %s\n", out)
			return nil
		},
	}
}

// NewTrimCmd creates the trim subcommand
func NewTrimCmd(app *App) *cobra.Command {
	var startFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "trim <file>",
		Short: "Trim a local file to a time range",
		Long: "Trim a local file to a time range.\n\n" +
			"Timestamps accept H:MM:SS, M:SS, or plain seconds. A bound that\n" +
			"fails to parse is treated as unset rather than rejecting the job.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.AudioSvc.Trim(context.Background(), args[0], startFlag, endFlag)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Saved: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Start timestamp")
	cmd.Flags().StringVar(&endFlag, "end", "", "End timestamp")
	return cmd
}

// NewVoiceCmd creates the voice conversion subcommand
func NewVoiceCmd(app *App) *cobra.Command {
	var startFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "voice <file>",
		Short: "Convert a local file into a voice-message opus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.AudioSvc.ConvertToVoice(context.Background(), args[0], startFlag, endFlag)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Saved: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Start timestamp")
	cmd.Flags().StringVar(&endFlag, "end", "", "End timestamp")
	return cmd
}

func effectNames() string {
	names := make([]string, 0, len(domain.Effects()))
	for _, e := range domain.Effects() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}
