package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	defaultLogFile = "/var/log/barq/barq.log"
	defaultPort    = 8080
)

// Config holds everything the responder reads from its environment
type Config struct {
	LogFile  string       // LOG_FILE
	Port     int          // PORT, 0 picks an ephemeral port
	Console  bool         // LOG_CONSOLE, mirror event log lines to stdout
	LogLevel logrus.Level // LOG_LEVEL, process logger only
}

// loadConfig reads the configuration through lookupEnv. Unset variables take
// their defaults; a variable set to an empty string is an error.
func loadConfig(lookupEnv func(string) (string, bool)) (Config, error) {
	config := Config{
		LogFile:  defaultLogFile,
		Port:     defaultPort,
		LogLevel: logrus.InfoLevel,
	}

	if v, ok := lookupEnv("LOG_FILE"); ok {
		if v == "" {
			return config, fmt.Errorf("invalid LOG_FILE: empty path")
		}
		config.LogFile = v
	}

	if v, ok := lookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return config, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		if port < 0 || port > 65535 {
			return config, fmt.Errorf("invalid PORT %q: out of range", v)
		}
		config.Port = port
	}

	if v, ok := lookupEnv("LOG_CONSOLE"); ok {
		console, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("invalid LOG_CONSOLE %q: %w", v, err)
		}
		config.Console = console
	}

	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return config, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		config.LogLevel = level
	}

	return config, nil
}
