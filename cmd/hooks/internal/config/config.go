package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/todos"
)

// FileName is the optional project configuration file.
const FileName = "hooks.yaml"

const (
	defaultTimeout    = 5 * time.Second
	defaultServerAddr = ":3001"
	defaultServerDB   = "db.json"
)

// Config represents the optional hooks.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
	TUI    TUIConfig    `yaml:"tui"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// APIConfig configures the todo REST client.
type APIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// ServerConfig configures the mock REST server.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
	DB   string `yaml:"db,omitempty"`
}

// RenderConfig configures the render root.
type RenderConfig struct {
	Policy    string `yaml:"policy,omitempty"`
	MaxPasses int    `yaml:"max_passes,omitempty"`
}

// TUIConfig configures the terminal UI.
type TUIConfig struct {
	Sound bool `yaml:"sound,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	BaseURL    string
	Timeout    time.Duration
	ServerAddr string
	// ServerDB is absolute, relative paths are taken from Root.
	ServerDB  string
	Policy    core.Policy
	MaxPasses int
	Sound     bool
}

// RootOptions returns the render root options for r.
func (r *Resolved) RootOptions() []core.Option {
	return []core.Option{core.WithPolicy(r.Policy), core.WithMaxPasses(r.MaxPasses)}
}

// LoadOptional reads hooks.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to read %s: %w", FileName, err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", FileName, err))
	}

	return &cfg, nil
}

// Resolve loads hooks.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve fills in defaults for dir and validates the values.
func (cfg *Config) Resolve(dir string) (*Resolved, error) {
	modulePath := modulePath(dir)

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	baseURL := strings.TrimSpace(cfg.API.BaseURL)
	if baseURL == "" {
		baseURL = todos.DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, invalid("api.base_url must be an http or https URL (got %q)", baseURL)
	}

	timeout := defaultTimeout
	if s := strings.TrimSpace(cfg.API.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, invalid("api.timeout: %v", err)
		}
		if d <= 0 {
			return nil, invalid("api.timeout must be positive (got %s)", d)
		}
		timeout = d
	}

	addr := strings.TrimSpace(cfg.Server.Addr)
	if addr == "" {
		addr = defaultServerAddr
	}

	db := strings.TrimSpace(cfg.Server.DB)
	if db == "" {
		db = defaultServerDB
	}
	if !filepath.IsAbs(db) {
		db = filepath.Join(dir, db)
	}

	policy, err := core.ParsePolicy(strings.TrimSpace(cfg.Render.Policy))
	if err != nil {
		return nil, err
	}

	maxPasses := cfg.Render.MaxPasses
	if maxPasses < 0 {
		return nil, invalid("render.max_passes cannot be negative (got %d)", maxPasses)
	}
	if maxPasses == 0 {
		maxPasses = core.DefaultMaxPasses
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		ServerAddr: addr,
		ServerDB:   db,
		Policy:     policy,
		MaxPasses:  maxPasses,
		Sound:      cfg.TUI.Sound,
	}, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory holding hooks.yaml or go.mod. Outside a project it returns the
// current directory.
func FindProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := wd; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

func invalid(format string, args ...any) error {
	return errors.New("config.Resolve", errors.KindConfig, fmt.Errorf(format, args...))
}

// modulePath returns the module path from dir/go.mod, or "" when there is
// none.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "hooks_app"
	}
	return base
}
