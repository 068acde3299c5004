// Package agent wires the signal pipeline into a decision loop: cognitive
// state in, classified intent through the command state machine, decision
// record out.
package agent

import (
	"os"
	"time"

	"github.com/zainr27/MindAware/internal/config"
)

// Default configuration values.
const (
	DefaultDecisionInterval = 2 * time.Second
	DefaultConfirmTimeout   = 5 * time.Second
	DefaultRotationDelta    = 180.0
	DefaultMemorySize       = 20
	DefaultLogPath          = "decision_log.jsonl"
)

// Config holds all configuration for the MindAware application.
// Flag parsing is done in cmd/mindaware/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Port is the HTTP API listen port.
	Port string

	// Drone bridge connection.
	DroneBaseURL string
	DroneUser    string
	DronePass    string

	// DecisionInterval is the cadence of the decision loop.
	DecisionInterval time.Duration

	// Confirmation gate settings.
	ConfirmTimeout time.Duration
	ConfirmDefault string // "yes" or "no"

	// RotationDelta is the heading change per rotate command, degrees.
	RotationDelta float64

	// LogPath is the JSONL decision log file.
	LogPath string

	// MemorySize bounds the in-memory recent decision window.
	MemorySize int

	// Feature flags.
	DroneLinkEnabled bool   // Dispatch commands to the physical bridge
	VoiceEnabled     bool   // Voice confirmation instead of auto-answer
	LLMEnabled       bool   // LLM rationale on each decision
	Scenario         string // Non-empty: simulate states instead of ingesting

	// API Keys (typically from environment variables).
	OpenAIKey string
}

// DefaultConfig returns sensible defaults for MindAware configuration.
func DefaultConfig() Config {
	return Config{
		Port:             config.DefaultAPIPort,
		DroneBaseURL:     config.DefaultDroneBaseURL,
		DroneUser:        config.DefaultDroneUser,
		DronePass:        config.DefaultDronePass,
		DecisionInterval: DefaultDecisionInterval,
		ConfirmTimeout:   DefaultConfirmTimeout,
		ConfirmDefault:   "no",
		RotationDelta:    DefaultRotationDelta,
		LogPath:          DefaultLogPath,
		MemorySize:       DefaultMemorySize,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	c.Port = config.APIPort()
	c.DroneBaseURL = config.DroneBaseURL()
	c.DroneUser = config.DroneUser()
	c.DronePass = config.DronePass()
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	if path := os.Getenv("DECISION_LOG_PATH"); path != "" {
		c.LogPath = path
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.ConfirmDefault != "yes" && c.ConfirmDefault != "no" {
		return &ConfigError{Field: "ConfirmDefault", Message: "confirmation default must be \"yes\" or \"no\""}
	}
	if c.DecisionInterval <= 0 {
		return &ConfigError{Field: "DecisionInterval", Message: "decision interval must be positive"}
	}
	if c.MemorySize <= 0 {
		return &ConfigError{Field: "MemorySize", Message: "memory size must be positive"}
	}
	if (c.LLMEnabled || c.VoiceEnabled) && c.OpenAIKey == "" {
		return &ConfigError{Field: "OpenAIKey", Message: "OPENAI_API_KEY environment variable is required for LLM or voice features"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
