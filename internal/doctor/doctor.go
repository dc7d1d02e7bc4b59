// Package doctor checks an rvfx setup: the configuration, the communication
// directory and the journal location.
package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattjoyce/rvfx-bridge/internal/channel"
	"github.com/mattjoyce/rvfx-bridge/internal/config"
	"github.com/mattjoyce/rvfx-bridge/internal/lock"
	"github.com/mattjoyce/rvfx-bridge/internal/storage"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Info     []Issue `json:"info,omitempty"`
}

// Issue describes a single finding.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor inspects a config and the channel it points at.
type Doctor struct {
	cfg *config.Config
	ch  *channel.Channel

	checkFS func(path string) (string, error)
}

// New creates a Doctor. ch may be nil when the directory could not be opened.
func New(cfg *config.Config, ch *channel.Channel) *Doctor {
	return &Doctor{cfg: cfg, ch: ch, checkFS: storage.CheckLocalFilesystem}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateConfig(r)
	d.validateChannel(r)
	d.warnStaleCommand(r)
	d.warnLeftoverTemps(r)
	d.reportLock(r)
	d.validateJournal(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addInfo(r *Result, category, msg string) {
	r.Info = append(r.Info, Issue{Category: category, Message: msg})
}

func (d *Doctor) validateConfig(r *Result) {
	for _, is := range config.Check(d.cfg) {
		d.addError(r, "config", is.Field, is.Message)
	}
	if d.cfg.Source == "" {
		d.addInfo(r, "config", "no config file found; using defaults")
	} else {
		d.addInfo(r, "config", "loaded "+d.cfg.Source)
	}
}

// validateChannel checks the directory exists and accepts a write.
func (d *Doctor) validateChannel(r *Result) {
	if d.ch == nil {
		d.addError(r, "channel", "bridge.comm_dir", "communication directory could not be opened")
		return
	}
	d.addInfo(r, "channel", "directory "+d.ch.Dir())

	probe, err := os.CreateTemp(d.ch.Dir(), ".doctor-*")
	if err != nil {
		d.addError(r, "channel", "bridge.comm_dir", fmt.Sprintf("directory is not writable: %v", err))
		return
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
}

// warnStaleCommand flags a command nobody consumed. Either no bridge is
// serving, or a cycle died between writing its response and deleting the
// command, in which case the command will be handled again.
func (d *Doctor) warnStaleCommand(r *Result) {
	if d.ch == nil {
		return
	}
	if mod, stale := d.ch.StaleCommand(d.cfg.Bridge.StaleAfter); stale {
		msg := fmt.Sprintf("command file present since %s", mod.Format("2006-01-02 15:04:05"))
		if _, ok := d.ch.ReadResponse(); ok {
			msg += "; a response also exists, so the command may be redelivered"
		}
		d.addWarning(r, "channel", channel.CommandFile, msg)
	}
}

func (d *Doctor) warnLeftoverTemps(r *Result) {
	if d.ch == nil {
		return
	}
	for _, p := range d.ch.LeftoverTemps() {
		d.addWarning(r, "channel", filepath.Base(p), "temp file left by an interrupted write")
	}
}

func (d *Doctor) reportLock(r *Result) {
	if d.ch == nil || !d.cfg.Bridge.Lock {
		return
	}
	path := lock.PathFor(d.ch.Dir())
	l, err := lock.Acquire(path)
	switch {
	case err == nil:
		_ = l.Release()
		d.addInfo(r, "lock", "no bridge is serving this directory")
	case errors.Is(err, lock.ErrHeld):
		d.addInfo(r, "lock", err.Error())
	default:
		d.addWarning(r, "lock", "bridge.lock", err.Error())
	}
}

func (d *Doctor) validateJournal(r *Result) {
	if !d.cfg.Journal.Enabled || strings.TrimSpace(d.cfg.Journal.Path) == "" {
		return
	}
	fsType, err := d.checkFS(d.cfg.Journal.Path)
	if err != nil {
		d.addError(r, "journal", "journal.path", err.Error())
		return
	}
	if fsType != "" {
		d.addInfo(r, "journal", fmt.Sprintf("%s on %s", d.cfg.Journal.Path, fsType))
	}
}

// FormatHuman returns a human-readable report.
func FormatHuman(r *Result) string {
	var b strings.Builder

	switch {
	case r.Valid && len(r.Warnings) == 0:
		b.WriteString("Setup looks healthy.\n")
	case r.Valid:
		fmt.Fprintf(&b, "Setup usable (%d warning(s))\n", len(r.Warnings))
	default:
		fmt.Fprintf(&b, "Setup broken (%d error(s), %d warning(s))\n", len(r.Errors), len(r.Warnings))
	}

	write := func(label string, issues []Issue) {
		for _, is := range issues {
			if is.Field != "" {
				fmt.Fprintf(&b, "  %-5s [%s] %s: %s\n", label, is.Category, is.Field, is.Message)
			} else {
				fmt.Fprintf(&b, "  %-5s [%s] %s\n", label, is.Category, is.Message)
			}
		}
	}
	write("ERROR", r.Errors)
	write("WARN", r.Warnings)
	write("INFO", r.Info)

	return b.String()
}

// FormatJSON returns the result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
