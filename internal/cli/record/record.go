// Package record holds the voice-logging command: capture (or load) an audio
// clip and send it for transcription into a workout.
package record

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"liftlog/internal/api"
	"liftlog/internal/cli"
	"liftlog/internal/voice"
)

type VoiceCmd struct {
	File   string `short:"f" help:"Upload an existing audio file instead of recording." type:"existingfile"`
	FFmpeg string `help:"Path to the ffmpeg binary." default:"ffmpeg"`
}

func (c *VoiceCmd) Run(ctx *cli.Context) error {
	if c.File != "" {
		audio, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		result, err := ctx.Client.VoiceLog(context.Background(), audio)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	device := voice.NewFFmpegDevice(c.FFmpeg)
	sess := voice.NewSession(ctx.Client, device)
	defer sess.Close()

	if err := sess.Start(context.Background()); err != nil {
		return err
	}
	fmt.Println("● Recording... press Enter to stop (Ctrl-C to abort).")

	// Stop on Enter or on an interrupt; either way the device is released.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	pressed := make(chan struct{})
	go func() {
		fmt.Scanln()
		close(pressed)
	}()

	select {
	case <-pressed:
	case <-interrupt:
		fmt.Println("Aborted.")
		return sess.Close()
	}

	fmt.Println("Uploading...")
	result, err := sess.Stop(context.Background())
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func printResult(result *api.VoiceLogResult) {
	fmt.Printf("✓ Logged workout #%d\n", result.Workout.ID)
	if result.Transcript != "" {
		fmt.Printf("  heard: %q\n", result.Transcript)
	}
}
