// Package web exposes the MindAware HTTP API and live websocket streams:
// reading ingestion, calibration control, the current drone command, the
// decision log, and dashboard feeds.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/zainr27/MindAware/pkg/agent"
	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
	"github.com/zainr27/MindAware/pkg/hub"
)

// Server is the HTTP API server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	adapter   *eeg.Adapter
	store     *drone.Store
	machine   *drone.Machine
	telemetry *drone.Telemetry
	memory    *agent.Memory
	recorder  *agent.Recorder
	broker    *hub.Broker
}

// Options are the collaborators the API exposes.
type Options struct {
	Adapter   *eeg.Adapter
	Store     *drone.Store
	Machine   *drone.Machine
	Telemetry *drone.Telemetry
	Memory    *agent.Memory
	Recorder  *agent.Recorder
	Broker    *hub.Broker
	Logger    *slog.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(port string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:      port,
		logger:    logger.With("component", "web"),
		adapter:   opts.Adapter,
		store:     opts.Store,
		machine:   opts.Machine,
		telemetry: opts.Telemetry,
		memory:    opts.Memory,
		recorder:  opts.Recorder,
		broker:    opts.Broker,
	}

	app := fiber.New(fiber.Config{
		AppName:               "MindAware API",
		DisableStartupMessage: true,
	})

	// CORS for the dashboard during local development.
	app.Use(cors.New())

	app.Get("/health", s.handleHealth)

	eegGroup := app.Group("/eeg")
	eegGroup.Post("/ingest", s.handleIngest)
	eegGroup.Post("/ingest/batch", s.handleIngestBatch)
	eegGroup.Get("/status", s.handleEEGStatus)
	eegGroup.Get("/state", s.handleEEGState)
	eegGroup.Post("/calibrate", s.handleCalibrate)
	eegGroup.Post("/reset", s.handleReset)

	droneGroup := app.Group("/drone")
	droneGroup.Get("/command", s.handleCurrentCommand)
	droneGroup.Get("/telemetry", s.handleTelemetry)

	app.Get("/logs", s.handleLogs)
	app.Delete("/logs", s.handleClearLogs)
	app.Get("/memory", s.handleMemory)

	if s.broker != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/state", websocket.New(s.streamHandler(agent.StreamState)))
		app.Get("/ws/decisions", websocket.New(s.streamHandler(agent.StreamDecisions)))
		app.Get("/ws/telemetry", websocket.New(s.streamHandler(agent.StreamTelemetry)))
	}

	s.app = app
	return s
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured port. Blocks.
func (s *Server) Start() error {
	s.logger.Info("api listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// streamHandler subscribes a websocket connection to one hub stream.
func (s *Server) streamHandler(stream string) func(*websocket.Conn) {
	h := s.broker.Hub(stream)
	return func(c *websocket.Conn) {
		hub.NewClient(h, c).Run()
	}
}
