package config

import (
	"errors"
	"fmt"
	"strings"
)

// Issue is one validation finding.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) Error() string { return i.Field + ": " + i.Message }

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validLogFormats = map[string]bool{"json": true, "text": true}

// Check returns every problem found in cfg.
func Check(cfg *Config) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Service.TickInterval <= 0 {
		add("service.tick_interval", "must be positive")
	}
	if !validLogLevels[strings.ToLower(cfg.Service.LogLevel)] {
		add("service.log_level", "must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}
	if !validLogFormats[strings.ToLower(cfg.Service.LogFormat)] {
		add("service.log_format", "must be json or text (got %q)", cfg.Service.LogFormat)
	}

	if cfg.Bridge.StaleAfter < 0 {
		add("bridge.stale_after", "must not be negative")
	}

	if cfg.Journal.Enabled && strings.TrimSpace(cfg.Journal.Path) == "" {
		add("journal.path", "is required when the journal is enabled")
	}
	if cfg.Journal.Retention < 0 {
		add("journal.retention", "must not be negative")
	}

	if cfg.Sim.ItemLength <= 0 {
		add("sim.item_length", "must be positive")
	}
	for i, tr := range cfg.Sim.Tracks {
		for j, it := range tr.Items {
			if it.Position < 0 || it.Length < 0 {
				add(fmt.Sprintf("sim.tracks[%d].items[%d]", i, j), "position and length must not be negative")
			}
		}
	}

	if cfg.Client.Timeout <= 0 {
		add("client.timeout", "must be positive")
	}
	if cfg.Client.PollInterval <= 0 {
		add("client.poll_interval", "must be positive")
	}

	for _, field := range unresolvedEnvFields(cfg) {
		add(field, "references an unset environment variable")
	}
	return issues
}

// Validate joins every issue into one error, or returns nil.
func Validate(cfg *Config) error {
	issues := Check(cfg)
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, 0, len(issues))
	for _, is := range issues {
		errs = append(errs, is)
	}
	return errors.Join(errs...)
}

func unresolvedEnvFields(cfg *Config) []string {
	var out []string
	for field, v := range map[string]string{
		"bridge.comm_dir":  cfg.Bridge.CommDir,
		"journal.path":     cfg.Journal.Path,
		"service.log_file": cfg.Service.LogFile,
	} {
		if envVarPattern.MatchString(v) {
			out = append(out, field)
		}
	}
	return out
}
