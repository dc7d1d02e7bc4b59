package config

import "time"

// Config represents the complete rvfx configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	Journal JournalConfig `yaml:"journal"`
	Sim     SimConfig     `yaml:"sim"`
	Client  ClientConfig  `yaml:"client"`

	// Source is the file the config was loaded from, empty for defaults.
	Source string `yaml:"-"`
}

// ServiceConfig defines process-wide settings.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	LogFile      string        `yaml:"log_file,omitempty"`
}

// BridgeConfig locates the communication directory.
type BridgeConfig struct {
	// CommDir replaces the temp directory as the parent of reaper-video-fx.
	CommDir string `yaml:"comm_dir,omitempty"`
	// Lock guards the directory against a second serving bridge.
	Lock bool `yaml:"lock"`
	// StaleAfter is how old a command file must be before doctor flags it.
	StaleAfter time.Duration `yaml:"stale_after"`
}

// JournalConfig controls the cycle history database.
type JournalConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Path      string        `yaml:"path"`
	Retention time.Duration `yaml:"retention"`
}

// SimConfig describes the in-memory project served by `rvfx serve`.
type SimConfig struct {
	ItemLength float64    `yaml:"item_length"`
	Tracks     []SimTrack `yaml:"tracks"`
}

// SimTrack seeds one simulated track.
type SimTrack struct {
	Name  string    `yaml:"name"`
	Muted bool      `yaml:"muted"`
	Items []SimItem `yaml:"items,omitempty"`
}

// SimItem seeds one media item, in seconds.
type SimItem struct {
	Position float64 `yaml:"position"`
	Length   float64 `yaml:"length"`
}

// ClientConfig controls how the CLI waits for responses.
type ClientConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Defaults returns a Config with the values used when no file is present.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:         "rvfx",
			TickInterval: 100 * time.Millisecond,
			LogLevel:     "info",
			LogFormat:    "json",
		},
		Bridge: BridgeConfig{
			Lock:       true,
			StaleAfter: 5 * time.Second,
		},
		Journal: JournalConfig{
			Enabled:   true,
			Path:      defaultJournalPath(),
			Retention: 30 * 24 * time.Hour,
		},
		Sim: SimConfig{
			ItemLength: 10,
			Tracks: []SimTrack{
				{Name: "Video"},
				{Name: "Dialog"},
				{Name: "Music"},
			},
		},
		Client: ClientConfig{
			Timeout:      30 * time.Second,
			PollInterval: 100 * time.Millisecond,
		},
	}
}
