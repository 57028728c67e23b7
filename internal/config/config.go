// Package config loads the deployment configuration: which targets get
// themed, where their config files live, and which processes are managed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ShyamendraHazra/home-config/internal/proc"
	"github.com/ShyamendraHazra/home-config/internal/render"
)

// PaletteConfig describes the external palette-extraction tool.
type PaletteConfig struct {
	// Command is the tool executable. The selected image path is appended
	// after Args on invocation.
	Command string `mapstructure:"command"`

	// Args are the base arguments (quiet, non-interactive flags included).
	Args []string `mapstructure:"args"`

	// CacheDir is where the tool leaves its artifact bundle.
	CacheDir string `mapstructure:"cache_dir"`
}

// WallpaperConfig describes the wallpaper-rendering daemon's client command.
type WallpaperConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// Config is the full deployment configuration.
type Config struct {
	// SelectionFile is the single-slot record of the current wallpaper.
	SelectionFile string `mapstructure:"selection_file"`

	// LockFile serializes concurrent apply operations.
	LockFile string `mapstructure:"lock_file"`

	Palette   PaletteConfig         `mapstructure:"palette"`
	Wallpaper WallpaperConfig       `mapstructure:"wallpaper"`
	Targets   []render.Target       `mapstructure:"targets"`
	Processes []proc.ManagedProcess `mapstructure:"processes"`
}

// Process looks up a managed process by name.
func (c *Config) Process(name string) (proc.ManagedProcess, bool) {
	for _, mp := range c.Processes {
		if mp.Name == name {
			return mp, true
		}
	}
	return proc.ManagedProcess{}, false
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if t.Process != "" {
			if _, ok := c.Process(t.Process); !ok {
				return fmt.Errorf("target %s references unknown process %q", t.Name, t.Process)
			}
		}
	}
	return nil
}

// Load reads the configuration from path, or from the default location
// (~/.config/themectl/config.yaml) when path is empty. A missing config file
// is not an error: the built-in defaults describe a standard deployment.
// Every key can be overridden through the environment with a THEMECTL_
// prefix.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("THEMECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(configHome(), "themectl"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the standard deployment: pywal extraction into the
// wal cache, swww as the wallpaper daemon, and the well-known config
// destinations for the status bar, lock screen, desktop settings store, and
// terminal emulators.
func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfgDir := configHome()
	cacheDir := filepath.Join(home, ".cache")

	v.SetDefault("selection_file", filepath.Join(cacheDir, "themectl", "wallpaper"))
	v.SetDefault("lock_file", filepath.Join(cacheDir, "themectl", "apply.lock"))

	v.SetDefault("palette.command", "wal")
	v.SetDefault("palette.args", []string{"-n", "-q", "-e", "-i"})
	v.SetDefault("palette.cache_dir", filepath.Join(cacheDir, "wal"))

	v.SetDefault("wallpaper.command", "swww")
	v.SetDefault("wallpaper.args", []string{"img", "--transition-type", "grow", "--transition-fps", "60"})

	v.SetDefault("targets", []map[string]any{
		{
			"name":        "statusbar",
			"strategy":    string(render.StrategyCopy),
			"source":      "colors-waybar.css",
			"destination": filepath.Join(cfgDir, "waybar", "colors.css"),
			"process":     "waybar",
		},
		{
			"name":        "lockscreen",
			"strategy":    string(render.StrategyTemplate),
			"template":    "lockscreen.conf",
			"destination": filepath.Join(cfgDir, "hypr", "hyprlock.conf"),
		},
		{
			"name":        "desktop-settings",
			"strategy":    string(render.StrategyKeyPatch),
			"destination": filepath.Join(cfgDir, "kdeglobals"),
			"keys": map[string]string{
				"BackgroundNormal": "background",
				"ForegroundNormal": "foreground",
			},
		},
		{
			"name":        "kitty",
			"strategy":    string(render.StrategyCopy),
			"source":      "colors-kitty.conf",
			"destination": filepath.Join(cfgDir, "kitty", "theme.conf"),
		},
		{
			"name":        "alacritty",
			"strategy":    string(render.StrategyCopy),
			"source":      "colors-alacritty.toml",
			"destination": filepath.Join(cfgDir, "alacritty", "theme.toml"),
		},
	})

	v.SetDefault("processes", []map[string]any{
		{
			"name":    "waybar",
			"command": "waybar",
		},
	})
}

// configHome returns the base config directory, honouring XDG_CONFIG_HOME.
func configHome() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return base
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config"
	}
	return filepath.Join(home, ".config")
}
