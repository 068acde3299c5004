// Package config provides configuration helpers for MindAware commands.
package config

import "os"

// Default drone hardware configuration.
const (
	DefaultDroneBaseURL = "http://192.168.86.139:8080"
	DefaultDroneUser    = "BCITeam"
	DefaultDronePass    = "DronesRCool"
	DefaultAPIPort      = "8000"
)

// DroneBaseURL returns the drone control API base URL from DRONE_BASE_URL.
// Falls back to the default if not set.
func DroneBaseURL() string {
	if url := os.Getenv("DRONE_BASE_URL"); url != "" {
		return url
	}
	return DefaultDroneBaseURL
}

// DroneUser returns the drone basic-auth username from DRONE_USER or default.
func DroneUser() string {
	if user := os.Getenv("DRONE_USER"); user != "" {
		return user
	}
	return DefaultDroneUser
}

// DronePass returns the drone basic-auth password from DRONE_PASS or default.
func DronePass() string {
	if pass := os.Getenv("DRONE_PASS"); pass != "" {
		return pass
	}
	return DefaultDronePass
}

// APIPort returns the MindAware API port from API_PORT or default.
func APIPort() string {
	if port := os.Getenv("API_PORT"); port != "" {
		return port
	}
	return DefaultAPIPort
}
