// Package hub provides thread-safe websocket broadcast hubs using the
// channel-based fan-out pattern, one hub per live stream (cognitive
// state, decisions, telemetry).
package hub

import "time"

// Envelope is the wire format for every broadcast frame.
type Envelope struct {
	// Stream names the hub the frame came from.
	Stream string `json:"stream"`

	// Payload is the stream-specific body.
	Payload interface{} `json:"payload"`

	// Timestamp is when the frame was published.
	Timestamp time.Time `json:"timestamp"`
}
