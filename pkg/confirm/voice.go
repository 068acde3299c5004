package confirm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zainr27/MindAware/pkg/stt"
	"github.com/zainr27/MindAware/pkg/tts"
)

// Player plays synthesized audio to the operator.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// Recorder captures the operator's spoken reply as an encoded audio file.
type Recorder interface {
	Record(ctx context.Context, d time.Duration) ([]byte, error)
}

// Voice is a Confirmer that speaks the question aloud, records the reply,
// and transcribes it. Any failure in the chain surfaces as an error so
// the gate can fall back to the default answer.
type Voice struct {
	tts      tts.Provider
	stt      stt.Provider
	player   Player
	recorder Recorder
	logger   *slog.Logger

	// ListenWindow bounds how long the recorder captures after the
	// question finishes playing.
	ListenWindow time.Duration
}

// NewVoice assembles the speak/listen/transcribe chain.
func NewVoice(ttsProvider tts.Provider, sttProvider stt.Provider, player Player, recorder Recorder, logger *slog.Logger) *Voice {
	if logger == nil {
		logger = slog.Default()
	}
	return &Voice{
		tts:          ttsProvider,
		stt:          sttProvider,
		player:       player,
		recorder:     recorder,
		logger:       logger.With("component", "confirm.voice"),
		ListenWindow: 4 * time.Second,
	}
}

// Confirm speaks the question, listens, and parses the reply.
func (v *Voice) Confirm(ctx context.Context, q Question) (Answer, error) {
	if err := v.Announce(ctx, q.Text); err != nil {
		return AnswerTimeout, err
	}

	audio, err := v.recorder.Record(ctx, v.ListenWindow)
	if err != nil {
		return AnswerTimeout, fmt.Errorf("record answer: %w", err)
	}

	result, err := v.stt.Transcribe(ctx, audio)
	if err != nil {
		return AnswerTimeout, fmt.Errorf("transcribe answer: %w", err)
	}

	answer := ParseAnswer(result.Text)
	v.logger.Info("voice answer received",
		"action", q.Action, "transcript", result.Text, "answer", answer)
	return answer, nil
}

// Announce speaks a status line without listening for a reply, used for
// non-gated notifications like an imminent takeoff.
func (v *Voice) Announce(ctx context.Context, text string) error {
	result, err := v.tts.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	if err := v.player.Play(ctx, result.Audio); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// Verify Voice implements Confirmer at compile time.
var _ Confirmer = (*Voice)(nil)
