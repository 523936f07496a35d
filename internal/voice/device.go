// Package voice drives the push-to-talk capture lifecycle: acquire the
// microphone, buffer audio chunks while the gesture is held, then upload
// the assembled artifact for transcription.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"liftlog/internal/logger"
)

// Device is an exclusive audio input. Start begins capture and returns a
// channel of raw audio chunks in arrival order; the channel closes when
// capture ends. Stop ends capture and must be safe to call on every exit
// path, including teardown.
type Device interface {
	Start(ctx context.Context) (<-chan []byte, error)
	Stop() error
}

const captureChunkSize = 4096

// FFmpegDevice records the default system input via an ffmpeg child
// process, encoding to WebM/Opus on stdout.
type FFmpegDevice struct {
	ffmpegPath string
	input      string // e.g. "default" for ALSA

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewFFmpegDevice(ffmpegPath string) *FFmpegDevice {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpegDevice{ffmpegPath: ffmpegPath, input: "default"}
}

func (d *FFmpegDevice) Start(ctx context.Context) (<-chan []byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cmd != nil {
		return nil, errors.New("device already capturing")
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "alsa", "-i", d.input,
		"-c:a", "libopus",
		"-f", "webm",
		"pipe:1",
	}
	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open capture pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("microphone unavailable: %w", err)
	}
	d.cmd = cmd
	logger.Debug("capture started", "pid", cmd.Process.Pid)

	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		for {
			buf := make([]byte, captureChunkSize)
			n, err := stdout.Read(buf)
			if n > 0 {
				chunks <- buf[:n]
			}
			if err != nil {
				if err != io.EOF {
					logger.Warn("capture read ended", "error", err)
				}
				return
			}
		}
	}()
	return chunks, nil
}

func (d *FFmpegDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cmd == nil {
		return nil
	}
	cmd := d.cmd
	d.cmd = nil

	// ffmpeg finalizes the container on SIGINT; fall back to kill.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
	if err := cmd.Wait(); err != nil {
		// Exit status after an interrupt is expected noise.
		logger.Debug("capture process exited", "error", err)
	}
	return nil
}
