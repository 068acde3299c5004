// Package stt provides a unified interface for speech-to-text providers.
//
// The confirmation gate records the operator's spoken answer and needs it
// back as text. All backends implement the Provider interface, so callers
// can switch between OpenAI Whisper and the mock without code changes.
package stt

import (
	"context"
	"time"
)

// Provider defines the STT provider interface.
type Provider interface {
	// Transcribe converts recorded audio to text. The audio is a complete
	// encoded file (WAV or MP3), not a raw PCM stream.
	Transcribe(ctx context.Context, audio []byte) (*Result, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Result is a completed transcription.
type Result struct {
	// Text is the transcribed speech.
	Text string

	// Duration is the audio length reported by the provider, if any.
	Duration time.Duration

	// LatencyMs is the request round-trip time in milliseconds.
	LatencyMs int64
}
