package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"liftlog/internal/cli"
	"liftlog/internal/tui"
	"liftlog/internal/voice"
)

type TuiCmd struct {
	FFmpeg string `help:"Path to the ffmpeg binary for voice capture." default:"ffmpeg"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	device := voice.NewFFmpegDevice(c.FFmpeg)
	p := tea.NewProgram(tui.NewModel(ctx.Client, ctx.Cache, device), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
