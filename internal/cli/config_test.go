package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
	if cfg.PollInterval != 400*time.Millisecond {
		t.Errorf("PollInterval = %v, want 400ms", cfg.PollInterval)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
}

func TestLoadConfigXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	writeConfig(t, filepath.Join(base, appName), `
output_dir = "out"
scale = 2
poll_interval = "1s"
cache = "none"
listen = "127.0.0.1:9000"
max_program_bytes = 4096
`)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	want := DefaultConfig()
	want.OutputDir = "out"
	want.Scale = 2
	want.PollInterval = time.Second
	want.Cache = cacheNone
	want.Listen = "127.0.0.1:9000"
	want.MaxProgramBytes = 4096
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `scale = `, "parse config"},
		{"unknown key", `colour = "red"`, "unknown keys: colour"},
		{"bad cache", `cache = "memcached"`, "cache must be one of"},
		{"bad scale", `scale = 0`, "scale must be in"},
		{"bad interval", `poll_interval = "-1s"`, "poll_interval must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("LoadConfig() with a missing explicit path should fail")
	}
}
