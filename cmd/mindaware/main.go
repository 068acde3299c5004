// MindAware - BCI-to-drone decision service.
// Ingests EEG headset readings, derives cognitive metrics, and drives a
// drone through a threshold policy with a voice-confirmed landing gate.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/zainr27/MindAware/internal/log"
	"github.com/zainr27/MindAware/pkg/agent"
	"github.com/zainr27/MindAware/pkg/confirm"
	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
	"github.com/zainr27/MindAware/pkg/hub"
	"github.com/zainr27/MindAware/pkg/inference"
	"github.com/zainr27/MindAware/pkg/stt"
	"github.com/zainr27/MindAware/pkg/tts"
	"github.com/zainr27/MindAware/pkg/web"
)

func main() {
	cfg := parseFlags()

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	if err := cfg.Validate(); err != nil {
		log.Error("configuration error", "error", err)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	adapter, err := eeg.NewAdapter(eeg.DefaultConfig())
	if err != nil {
		log.Error("adapter setup failed", "error", err)
		return
	}

	machine, err := drone.NewMachine(buildGate(cfg), drone.Config{
		RotationDelta: cfg.RotationDelta,
		Logger:        log.L(),
	})
	if err != nil {
		log.Error("state machine setup failed", "error", err)
		return
	}

	store := drone.NewStore()
	telemetry := drone.NewTelemetry()

	var link *drone.Link
	if cfg.DroneLinkEnabled {
		link = drone.NewLink(cfg.DroneBaseURL, cfg.DroneUser, cfg.DronePass, log.L())
		log.Info("drone bridge enabled", "base_url", cfg.DroneBaseURL)
	}

	broker := hub.NewBroker(log.L(), agent.StreamState, agent.StreamDecisions, agent.StreamTelemetry)
	go broker.Run(ctx)

	var source agent.StateSource = adapter
	if cfg.Scenario != "" {
		log.Info("simulating cognitive states", "scenario", cfg.Scenario)
		source = eeg.NewSimulator(eeg.Scenario(cfg.Scenario))
	}

	a := agent.New(cfg, agent.Options{
		Source:    source,
		Machine:   machine,
		Store:     store,
		Link:      link,
		Telemetry: telemetry,
		Recorder:  agent.NewRecorder(cfg.LogPath),
		Memory:    agent.NewMemory(cfg.MemorySize),
		Reasoner:  buildReasoner(cfg),
		Publisher: broker,
		Logger:    log.L(),
	})
	go a.Run(ctx)

	server := web.NewServer(cfg.Port, web.Options{
		Adapter:   adapter,
		Store:     store,
		Machine:   machine,
		Telemetry: telemetry,
		Memory:    a.Memory(),
		Recorder:  a.Recorder(),
		Broker:    broker,
		Logger:    log.L(),
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		server.Shutdown()
	}()

	log.Info("mindaware starting", "port", cfg.Port, "interval", cfg.DecisionInterval)
	if err := server.Start(); err != nil {
		log.Error("server error", "error", err)
	}
}

// buildGate assembles the confirmation gate: voice when enabled and
// configured, otherwise an auto-answerer with the configured default.
func buildGate(cfg agent.Config) *confirm.Gate {
	def := confirm.AnswerNo
	if cfg.ConfirmDefault == "yes" {
		def = confirm.AnswerYes
	}

	gateCfg := confirm.DefaultGateConfig()
	gateCfg.Timeout = cfg.ConfirmTimeout
	gateCfg.Default = def
	gateCfg.Logger = log.L()

	var confirmer confirm.Confirmer = confirm.NewAuto(def)
	if cfg.VoiceEnabled {
		ttsProvider, err := tts.NewOpenAI(tts.WithAPIKey(cfg.OpenAIKey), tts.WithLogger(log.L()))
		if err != nil {
			log.Warn("voice confirmation unavailable, using auto-answer", "error", err)
		} else {
			sttProvider, err := stt.NewWhisper(stt.WithAPIKey(cfg.OpenAIKey), stt.WithLogger(log.L()))
			if err != nil {
				log.Warn("voice confirmation unavailable, using auto-answer", "error", err)
			} else {
				confirmer = confirm.NewVoice(ttsProvider, sttProvider, NewExecPlayer(), NewExecRecorder(), log.L())
				log.Info("voice confirmation enabled")
			}
		}
	}

	return confirm.NewGate(confirmer, gateCfg)
}

// buildReasoner returns the LLM reasoner when enabled, the no-op otherwise.
func buildReasoner(cfg agent.Config) agent.Reasoner {
	if !cfg.LLMEnabled {
		return agent.NopReasoner{}
	}
	client, err := inference.NewClient(
		inference.WithAPIKey(cfg.OpenAIKey),
		inference.WithLogger(log.L()),
	)
	if err != nil {
		log.Warn("llm reasoner unavailable", "error", err)
		return agent.NopReasoner{}
	}
	log.Info("llm reasoner enabled")
	return agent.NewLLMReasoner(client, log.L())
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() agent.Config {
	cfg := agent.DefaultConfig()
	cfg.LoadEnvConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	port := flag.String("port", cfg.Port, "HTTP API listen port")
	interval := flag.Duration("interval", cfg.DecisionInterval, "Decision loop cadence")
	confirmTimeout := flag.Duration("confirm-timeout", cfg.ConfirmTimeout, "Confirmation gate timeout")
	confirmDefault := flag.String("confirm-default", cfg.ConfirmDefault, "Answer applied on confirmation timeout: yes or no")
	rotationDelta := flag.Float64("rotation-delta", cfg.RotationDelta, "Heading change per rotate command, degrees")
	logPath := flag.String("log-path", cfg.LogPath, "Decision log file (JSON Lines)")
	droneLink := flag.Bool("drone-link", false, "Dispatch commands to the physical drone bridge")
	voice := flag.Bool("voice", false, "Pose the landing confirmation by voice")
	llm := flag.Bool("llm", false, "Generate an LLM rationale per decision")
	scenario := flag.String("scenario", "", "Simulate states instead of ingesting: normal, critical, mixed, degrading")

	flag.Parse()

	cfg.Debug = *debug
	cfg.Port = *port
	cfg.DecisionInterval = *interval
	cfg.ConfirmTimeout = *confirmTimeout
	cfg.ConfirmDefault = *confirmDefault
	cfg.RotationDelta = *rotationDelta
	cfg.LogPath = *logPath
	cfg.DroneLinkEnabled = *droneLink
	cfg.VoiceEnabled = *voice
	cfg.LLMEnabled = *llm
	cfg.Scenario = *scenario

	return cfg
}
