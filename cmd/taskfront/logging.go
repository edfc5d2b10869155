package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"taskfront/internal/config"
)

const logLevelEnvKey = "TASKFRONT_LOG_LEVEL"

type logLevelSource string

const (
	levelFromFlag    logLevelSource = "flag"
	levelFromEnv     logLevelSource = "env"
	levelFromConfig  logLevelSource = "config"
	levelFromDefault logLevelSource = "default"
)

// setupLogging installs the default logger for this run. Only a bad
// --log-level is fatal; bad env or config levels fall back to debug and
// come back as a warning line.
func setupLogging(stderr io.Writer, flagLevel string, cfg *config.Config) (string, error) {
	configLevel := ""
	if cfg != nil {
		configLevel = cfg.LogLevel
	}
	envLevel := os.Getenv(logLevelEnvKey)

	raw, source := resolveLogLevel(flagLevel, envLevel, configLevel)
	level, err := parseLogLevel(raw)
	var warning string
	if err != nil {
		switch source {
		case levelFromFlag:
			return "", fmt.Errorf("invalid --log-level %q", flagLevel)
		case levelFromEnv:
			warning = fmt.Sprintf("warning: invalid %s=%q; defaulting to %s", logLevelEnvKey, envLevel, config.DefaultLogLevel)
		case levelFromConfig:
			warning = fmt.Sprintf("warning: invalid log_level=%q; defaulting to %s", configLevel, config.DefaultLogLevel)
		}
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(newLogHandler(stderr, level, cfg)))
	return warning, nil
}

func resolveLogLevel(flagLevel, envLevel, configLevel string) (string, logLevelSource) {
	switch {
	case strings.TrimSpace(flagLevel) != "":
		return flagLevel, levelFromFlag
	case strings.TrimSpace(envLevel) != "":
		return envLevel, levelFromEnv
	case strings.TrimSpace(configLevel) != "":
		return configLevel, levelFromConfig
	default:
		return "", levelFromDefault
	}
}

// newLogHandler writes text for people in development and JSON for log
// collectors everywhere else.
func newLogHandler(w io.Writer, level slog.Level, cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && !cfg.IsDevelopment() {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return slog.LevelDebug, nil
	}
	if strings.EqualFold(value, "warning") {
		value = "warn"
	}
	if numeric, err := strconv.Atoi(value); err == nil {
		return slog.Level(numeric), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelDebug, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}
