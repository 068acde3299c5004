package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// ExecPlayer plays synthesized audio through the host's command line
// player (afplay on macOS, mpg123 elsewhere).
type ExecPlayer struct {
	command string
	args    []string
}

// NewExecPlayer picks a player for the host platform.
func NewExecPlayer() *ExecPlayer {
	if runtime.GOOS == "darwin" {
		return &ExecPlayer{command: "afplay"}
	}
	return &ExecPlayer{command: "mpg123", args: []string{"-q", "-"}}
}

// Play writes the audio to the player and waits for playback to finish.
func (p *ExecPlayer) Play(ctx context.Context, audio []byte) error {
	args := p.args
	if p.command == "afplay" {
		// afplay cannot read stdin; stage to a temp pipe via /dev/stdin.
		args = []string{"/dev/stdin"}
	}
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdin = bytes.NewReader(audio)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio playback (%s): %w", p.command, err)
	}
	return nil
}

// ExecRecorder captures microphone audio as WAV through the host's
// command line recorder (sox's rec on macOS, arecord elsewhere).
type ExecRecorder struct{}

// NewExecRecorder creates a recorder for the host platform.
func NewExecRecorder() *ExecRecorder {
	return &ExecRecorder{}
}

// Record captures d seconds of audio and returns the WAV bytes.
func (r *ExecRecorder) Record(ctx context.Context, d time.Duration) ([]byte, error) {
	seconds := fmt.Sprintf("%.0f", d.Seconds())

	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.CommandContext(ctx, "rec", "-q", "-t", "wav", "-", "trim", "0", seconds)
	} else {
		cmd = exec.CommandContext(ctx, "arecord", "-q", "-f", "S16_LE", "-r", "16000", "-d", seconds, "-t", "wav")
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("audio capture: %w", err)
	}
	return out.Bytes(), nil
}
