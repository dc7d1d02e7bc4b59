package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file gives defaults",
			yaml: "",
			checkFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 100*time.Millisecond, cfg.Service.TickInterval)
				assert.True(t, cfg.Bridge.Lock)
				assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
				assert.Len(t, cfg.Sim.Tracks, 3)
			},
		},
		{
			name: "full config",
			yaml: `
service:
  tick_interval: 250ms
  log_level: debug
  log_format: text
  log_file: logs/rvfx.log
bridge:
  comm_dir: /var/tmp/bridge
  lock: false
journal:
  enabled: true
  path: data/journal.db
  retention: 72h
sim:
  item_length: 4.5
  tracks:
    - name: Dialog
      muted: true
      items:
        - {position: 0, length: 2}
client:
  timeout: 5s
  poll_interval: 20ms
`,
			checkFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.Service.TickInterval)
				assert.Equal(t, "text", cfg.Service.LogFormat)
				assert.Equal(t, "/var/tmp/bridge", cfg.Bridge.CommDir)
				assert.False(t, cfg.Bridge.Lock)
				assert.Equal(t, 72*time.Hour, cfg.Journal.Retention)
				assert.True(t, filepath.IsAbs(cfg.Journal.Path))
				assert.Equal(t, "journal.db", filepath.Base(cfg.Journal.Path))
				assert.True(t, filepath.IsAbs(cfg.Service.LogFile))
				require.Len(t, cfg.Sim.Tracks, 1)
				assert.True(t, cfg.Sim.Tracks[0].Muted)
				assert.Equal(t, SimItem{Position: 0, Length: 2}, cfg.Sim.Tracks[0].Items[0])
				assert.Equal(t, 20*time.Millisecond, cfg.Client.PollInterval)
			},
		},
		{
			name: "env interpolation",
			yaml: `
bridge:
  comm_dir: ${RVFX_TEST_DIR}
`,
			env: map[string]string{"RVFX_TEST_DIR": "/srv/rvfx"},
			checkFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/rvfx", cfg.Bridge.CommDir)
			},
		},
		{
			name:    "unset env var",
			yaml:    "journal:\n  path: ${RVFX_TEST_UNSET_VAR}/j.db\n",
			wantErr: "unset environment variable",
		},
		{
			name:    "bad log level",
			yaml:    "service:\n  log_level: loud\n",
			wantErr: "service.log_level",
		},
		{
			name:    "unknown key",
			yaml:    "service:\n  ticks: 1s\n",
			wantErr: "field ticks not found",
		},
		{
			name:    "non-positive timeout",
			yaml:    "client:\n  timeout: 0s\n",
			wantErr: "client.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfig(t, tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkFn(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadDirectory(t *testing.T) {
	path := writeConfig(t, "service:\n  name: from-dir\n")
	cfg, err := Load(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, "from-dir", cfg.Service.Name)
	assert.Equal(t, path, cfg.Source)
}

func TestDiscover(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	assert.Equal(t, "/explicit.yaml", Discover("/explicit.yaml"))
	assert.Equal(t, "", Discover(""))

	t.Setenv(EnvConfig, "/from/env.yaml")
	assert.Equal(t, "/from/env.yaml", Discover(""))
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, "rvfx", cfg.Service.Name)
}

func TestMarshalRoundTrip(t *testing.T) {
	out, err := Marshal(Defaults())
	require.NoError(t, err)

	cfg, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Client, cfg.Client)
	assert.NoError(t, Validate(cfg))
}

func TestCheckCollectsEveryIssue(t *testing.T) {
	cfg := Defaults()
	cfg.Service.TickInterval = 0
	cfg.Service.LogFormat = "xml"
	cfg.Journal.Path = ""
	cfg.Sim.ItemLength = 0

	fields := map[string]bool{}
	for _, is := range Check(cfg) {
		fields[is.Field] = true
	}
	assert.True(t, fields["service.tick_interval"])
	assert.True(t, fields["service.log_format"])
	assert.True(t, fields["journal.path"])
	assert.True(t, fields["sim.item_length"])
}
