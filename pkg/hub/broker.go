package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Broker owns one hub per live stream and implements the decision loop's
// Publisher boundary: payloads are wrapped in an Envelope, JSON-encoded
// once, and fanned out to that stream's subscribers.
type Broker struct {
	hubs   map[string]*Hub
	logger *slog.Logger
}

// NewBroker creates a broker with a hub for each named stream.
func NewBroker(logger *slog.Logger, streams ...string) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	hubs := make(map[string]*Hub, len(streams))
	for _, s := range streams {
		hubs[s] = New(s, logger)
	}
	return &Broker{hubs: hubs, logger: logger.With("component", "hub.broker")}
}

// Run starts every hub's fan-out loop. Call in a goroutine.
func (b *Broker) Run(ctx context.Context) {
	for _, h := range b.hubs {
		go h.Run(ctx)
	}
	<-ctx.Done()
}

// Publish encodes the payload and broadcasts it on the named stream.
// Unknown streams and encoding failures are logged and dropped; the
// decision loop never blocks on a broken dashboard.
func (b *Broker) Publish(stream string, payload interface{}) {
	h, ok := b.hubs[stream]
	if !ok {
		b.logger.Warn("publish to unknown stream", "stream", stream)
		return
	}

	frame, err := json.Marshal(Envelope{
		Stream:    stream,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		b.logger.Warn("encode frame failed", "stream", stream, "error", err)
		return
	}
	h.Broadcast(frame)
}

// Hub returns the hub for a stream, or nil if the stream is unknown.
func (b *Broker) Hub(stream string) *Hub {
	return b.hubs[stream]
}

// Streams returns the names of all managed streams.
func (b *Broker) Streams() []string {
	names := make([]string, 0, len(b.hubs))
	for s := range b.hubs {
		names = append(names, s)
	}
	return names
}
