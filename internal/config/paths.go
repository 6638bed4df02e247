// paths.go - Centralized application path management
// All config and log files live under ~/.arcos
package config

import (
	"log"
	"os"
	"path/filepath"
)

// AppHomeDir is the name of the application's home directory
const AppHomeDir = ".arcos"

// GetAppHome returns the application home directory (~/.arcos)
// Creates it if it doesn't exist
func GetAppHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory: %v", err)
		return "."
	}

	appHome := filepath.Join(home, AppHomeDir)
	if err := os.MkdirAll(appHome, 0755); err != nil {
		log.Printf("Warning: Could not create app home directory %s: %v", appHome, err)
	}
	return appHome
}

// GetLogsDir returns the logs directory (~/.arcos/logs)
func GetLogsDir() string {
	return filepath.Join(GetAppHome(), "logs")
}

// GetConfigPath returns the path to config.yaml (~/.arcos/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetAppHome(), "config.yaml")
}

// GetLogPath returns the default log file (~/.arcos/logs/arcos.log)
func GetLogPath() string {
	return filepath.Join(GetLogsDir(), "arcos.log")
}
