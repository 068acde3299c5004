package drone

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zainr27/MindAware/internal/httpc"
)

// Link dispatches actuating commands to the partner drone bridge over
// HTTP with basic auth. Non-actuating commands (hold, grounded-hold) are
// never sent; rotate is sent as the bridge's yaw step.
type Link struct {
	baseURL string
	user    string
	pass    string
	client  *http.Client
	logger  *slog.Logger
}

// LinkResult reports one dispatch to the bridge.
type LinkResult struct {
	Command   Command   `json:"command"`
	Step      string    `json:"step"`
	Sent      bool      `json:"sent"`
	Status    int       `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLink creates a bridge link.
func NewLink(baseURL, user, pass string, logger *slog.Logger) *Link {
	if logger == nil {
		logger = slog.Default()
	}
	return &Link{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		user:    user,
		pass:    pass,
		client:  httpc.NewClient(10 * time.Second),
		logger:  logger.With("component", "drone.link"),
	}
}

// Dispatch sends an actuating command to the bridge. Holds return
// immediately with Sent=false; the bridge only understands movement.
func (l *Link) Dispatch(ctx context.Context, cmd Command) (LinkResult, error) {
	result := LinkResult{
		Command:   cmd,
		Step:      cmd.PartnerStep(),
		Timestamp: time.Now().UTC(),
	}

	path, ok := l.pathFor(cmd)
	if !ok {
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", l.baseURL+path, nil)
	if err != nil {
		return result, fmt.Errorf("drone link: create request: %w", err)
	}
	req.SetBasicAuth(l.user, l.pass)

	resp, err := l.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("drone link: %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	result.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("drone link: %s returned %d", path, resp.StatusCode)
	}

	result.Sent = true
	l.logger.Info("command dispatched", "command", cmd, "step", result.Step, "path", path)
	return result, nil
}

// pathFor maps actuating commands to bridge endpoints.
func (l *Link) pathFor(cmd Command) (string, bool) {
	switch cmd {
	case CommandTakeoff:
		return "/takeoff", true
	case CommandLand:
		return "/land", true
	case CommandRotate:
		return "/yaw_right", true
	default:
		return "", false
	}
}
