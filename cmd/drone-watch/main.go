// drone-watch tails a running MindAware instance's decision stream over
// websocket and prints each decision as it lands. Intended for the drone
// operator's console during a flight session.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zainr27/MindAware/internal/log"
	"github.com/zainr27/MindAware/pkg/agent"
	"github.com/zainr27/MindAware/pkg/hub"
)

func main() {
	host := flag.String("host", "localhost:8080", "MindAware API host:port")
	stream := flag.String("stream", agent.StreamDecisions, "Stream to follow: state, decisions, telemetry")
	raw := flag.Bool("raw", false, "Print raw JSON frames instead of formatted lines")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	log.Init(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws/" + *stream}
	log.Info("connecting", "url", u.String())

	for {
		if err := follow(ctx, u.String(), *raw); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("stream dropped, reconnecting", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

// follow reads frames until the connection drops or ctx is cancelled.
func follow(ctx context.Context, url string, raw bool) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	log.Info("connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if raw {
			fmt.Println(string(data))
			continue
		}
		printFrame(data)
	}
}

// printFrame formats one envelope for the console. Frames that do not
// decode as decisions fall back to raw JSON.
func printFrame(data []byte) {
	var env hub.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		fmt.Println(string(data))
		return
	}

	if env.Stream != agent.StreamDecisions {
		payload, _ := json.Marshal(env.Payload)
		fmt.Printf("%s  [%s] %s\n", env.Timestamp.Format("15:04:05"), env.Stream, payload)
		return
	}

	payload, err := json.Marshal(env.Payload)
	if err != nil {
		fmt.Println(string(data))
		return
	}
	var rec agent.DecisionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		fmt.Println(string(data))
		return
	}

	line := fmt.Sprintf("%s  %-8s -> %-14s step=%s",
		env.Timestamp.Format("15:04:05"),
		strings.ToUpper(rec.Intent),
		rec.Command,
		rec.Command.PartnerStep())
	if rec.Confirmation != nil {
		line += fmt.Sprintf("  confirm=%s", rec.Confirmation.Answer)
		if rec.Confirmation.DefaultApplied {
			line += " (default)"
		}
	}
	if rec.Rationale != "" {
		line += "  " + rec.Rationale
	}
	fmt.Println(line)
}
