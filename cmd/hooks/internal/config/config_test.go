package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/todo-demo/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.ModulePath != "example.com/acme/todo-demo/v2" {
		t.Errorf("Expected module path from go.mod, got %q", cfg.ModulePath)
	}
	if cfg.AppName != "todo-demo" {
		t.Errorf("Expected app name todo-demo, got %q", cfg.AppName)
	}
	if cfg.BaseURL != "http://localhost:3001" {
		t.Errorf("Expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.ServerAddr != ":3001" {
		t.Errorf("Expected :3001, got %q", cfg.ServerAddr)
	}
	if cfg.ServerDB != filepath.Join(dir, "db.json") {
		t.Errorf("Expected db.json in the project root, got %q", cfg.ServerDB)
	}
	if cfg.Policy != core.SyncPolicy || cfg.MaxPasses != core.DefaultMaxPasses {
		t.Errorf("Expected sync policy with default passes, got %s/%d", cfg.Policy, cfg.MaxPasses)
	}
	if cfg.Sound {
		t.Error("Expected sound off by default")
	}
}

func TestResolve_NoGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.AppName != "scratch" {
		t.Errorf("Expected directory name, got %q", cfg.AppName)
	}
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: todos-demo
api:
  base_url: http://127.0.0.1:9000/
  timeout: 250ms
server:
  addr: 127.0.0.1:0
  db: /var/lib/todos.yaml
render:
  policy: batch
  max_passes: 8
tui:
  sound: true
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.AppName != "todos-demo" {
		t.Errorf("Expected todos-demo, got %q", cfg.AppName)
	}
	if cfg.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", cfg.Timeout)
	}
	if cfg.ServerAddr != "127.0.0.1:0" || cfg.ServerDB != "/var/lib/todos.yaml" {
		t.Errorf("Expected server settings from file, got %q %q", cfg.ServerAddr, cfg.ServerDB)
	}
	if cfg.Policy != core.BatchPolicy || cfg.MaxPasses != 8 {
		t.Errorf("Expected batch/8, got %s/%d", cfg.Policy, cfg.MaxPasses)
	}
	if !cfg.Sound {
		t.Error("Expected sound on")
	}
	if got := len(cfg.RootOptions()); got != 2 {
		t.Errorf("Expected 2 root options, got %d", got)
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad policy", Config{Render: RenderConfig{Policy: "eager"}}},
		{"negative passes", Config{Render: RenderConfig{MaxPasses: -1}}},
		{"bad timeout", Config{API: APIConfig{Timeout: "soon"}}},
		{"zero timeout", Config{API: APIConfig{Timeout: "0s"}}},
		{"bad scheme", Config{API: APIConfig{BaseURL: "ftp://host"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve(t.TempDir())
			if err == nil {
				t.Fatal("Expected an error")
			}
			if errors.KindOf(err) != errors.KindConfig {
				t.Errorf("Expected KindConfig, got %v", err)
			}
		})
	}
}

func TestLoadOptional_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "app: [unclosed\n")

	if _, err := LoadOptional(dir); errors.KindOf(err) != errors.KindConfig {
		t.Errorf("Expected KindConfig parse error, got %v", err)
	}
}

func TestDefaultAppName(t *testing.T) {
	tests := []struct {
		modulePath string
		dir        string
		want       string
	}{
		{"github.com/go-drift/hooks", "/src/x", "hooks"},
		{"github.com/go-drift/hooks/v3", "/src/x", "hooks"},
		{"", "/src/fallback", "fallback"},
		{"", "/", "hooks_app"},
	}
	for _, tt := range tests {
		if got := defaultAppName(tt.modulePath, tt.dir); got != tt.want {
			t.Errorf("defaultAppName(%q, %q) = %q, want %q", tt.modulePath, tt.dir, got, tt.want)
		}
	}
}
