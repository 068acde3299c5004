// Package tts provides a unified interface for text-to-speech providers.
//
// The system speaks confirmation questions and status announcements to the
// operator. All backends implement the Provider interface, so callers can
// switch between OpenAI TTS and the mock without code changes.
//
// Example usage:
//
//	provider, _ := tts.NewOpenAI(
//	    tts.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, "Should I land the drone?")
//	// result.Audio contains MP3 audio bytes
package tts

import (
	"context"
	"time"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified format.
	Audio []byte

	// Format describes the audio encoding and sample rate.
	Format AudioFormat

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the request round-trip time in milliseconds.
	LatencyMs int64
}

// AudioFormat describes the audio encoding parameters.
type AudioFormat struct {
	// Encoding specifies the audio codec.
	Encoding Encoding

	// SampleRate in Hz.
	SampleRate int

	// Channels is 1 for mono, 2 for stereo.
	Channels int
}

// Encoding represents audio encoding types.
type Encoding string

const (
	EncodingMP3   Encoding = "mp3"
	EncodingPCM24 Encoding = "pcm_24000"
	EncodingWAV   Encoding = "wav"
)

// EstimateDuration approximates playback duration from synthesized text,
// used to pace the confirmation window when the player reports nothing.
func EstimateDuration(text string) time.Duration {
	// Rough speech rate: 15 characters per second.
	return time.Duration(len(text)) * time.Second / 15
}
