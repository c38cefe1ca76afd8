// Package config holds user preferences: animation, backend, tileset, zoom,
// window size, locale, logging and key bindings.
//
// Preferences come from an optional YAML/JSON/TOML file, then TILEVIEW_*
// environment variables, then the defaults below.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" preference.
const (
	BackendAuto     = "auto"
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

// WindowPrefs is the initial Ebiten window size.
type WindowPrefs struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LogPrefs controls the logging facade.
type LogPrefs struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Preferences is the resolved configuration.
type Preferences struct {
	Animations bool              `mapstructure:"animations"`
	Backend    string            `mapstructure:"backend"`
	Tileset    string            `mapstructure:"tileset"`
	Zoom       float64           `mapstructure:"zoom"`
	Locale     string            `mapstructure:"locale"`
	Window     WindowPrefs       `mapstructure:"window"`
	Log        LogPrefs          `mapstructure:"log"`
	Bindings   map[string]string `mapstructure:"bindings"` // action -> key code
}

// AnimationsEnabled reports the "animations" preference.
func (p *Preferences) AnimationsEnabled() bool {
	return p.Animations
}

var (
	current      *Preferences
	currentMutex sync.RWMutex
)

// Defaults returns the built-in preferences.
func Defaults() *Preferences {
	return &Preferences{
		Animations: true,
		Backend:    BackendAuto,
		Zoom:       1.0,
		Locale:     "en_GB",
		Window:     WindowPrefs{Width: 800, Height: 600},
		Log:        LogPrefs{Level: "info"},
		Bindings:   map[string]string{},
	}
}

// Current returns the process-wide preferences, defaults if none were loaded.
func Current() *Preferences {
	currentMutex.RLock()
	p := current
	currentMutex.RUnlock()
	if p != nil {
		return p
	}

	currentMutex.Lock()
	defer currentMutex.Unlock()
	if current == nil {
		current = Defaults()
	}
	return current
}

// SetCurrent replaces the process-wide preferences.
func SetCurrent(p *Preferences) {
	currentMutex.Lock()
	defer currentMutex.Unlock()
	current = p
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tileview", "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("animations", d.Animations)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("tileset", d.Tileset)
	v.SetDefault("zoom", d.Zoom)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("bindings", map[string]string{})

	v.SetEnvPrefix("TILEVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves preferences and makes them current. An explicit path must
// exist; with an empty path the per-user file is used when present.
func Load(path string) (*Preferences, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	p := Defaults()
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	SetCurrent(p)
	return p, nil
}

func (p *Preferences) validate() error {
	switch p.Backend {
	case BackendAuto, BackendEbiten, BackendTerminal:
	default:
		return fmt.Errorf("config: unknown backend %q", p.Backend)
	}
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", p.Window.Width, p.Window.Height)
	}
	return nil
}
