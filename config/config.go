// Package config loads application settings for gridcanvas programs from
// defaults, an optional YAML or TOML file, and GRIDCANVAS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/phanxgames/gridcanvas"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, with '.' mapped to '_':
// GRIDCANVAS_GRID_CELL_SIZE sets grid.cell_size.
const EnvPrefix = "GRIDCANVAS"

// Config holds application configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Grid      GridConfig      `mapstructure:"grid"`
	Animation AnimationConfig `mapstructure:"animation"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Debug     DebugConfig     `mapstructure:"debug"`
	Log       LogConfig       `mapstructure:"log"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// GridConfig holds camera and input settings.
type GridConfig struct {
	CellSize         float64 `mapstructure:"cell_size"`
	MinScale         float64 `mapstructure:"min_scale"`
	MaxScale         float64 `mapstructure:"max_scale"`
	ZoomStep         float64 `mapstructure:"zoom_step"`
	ZoomAnchor       string  `mapstructure:"zoom_anchor"`
	WheelNotchPixels float64 `mapstructure:"wheel_notch_pixels"`
}

// AnimationConfig holds centering settings.
type AnimationConfig struct {
	CenterDuration time.Duration `mapstructure:"center_duration"`
	Overlap        string        `mapstructure:"overlap"`
	SettleDelay    time.Duration `mapstructure:"settle_delay"`
}

// ThemeConfig selects the initial theme and an optional override file.
type ThemeConfig struct {
	Name  string `mapstructure:"name"`
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	Overlay       bool   `mapstructure:"overlay"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "gridcanvas")
	v.SetDefault("grid.cell_size", gridcanvas.DefaultCellSize)
	v.SetDefault("grid.min_scale", gridcanvas.MinScale)
	v.SetDefault("grid.max_scale", gridcanvas.MaxScale)
	v.SetDefault("grid.zoom_step", gridcanvas.DefaultZoomStep)
	v.SetDefault("grid.zoom_anchor", "origin")
	v.SetDefault("grid.wheel_notch_pixels", gridcanvas.DefaultWheelNotchPixels)
	v.SetDefault("animation.center_duration", gridcanvas.DefaultCenterDuration)
	v.SetDefault("animation.overlap", "cancel")
	v.SetDefault("animation.settle_delay", gridcanvas.DefaultSettleDelay)
	v.SetDefault("theme.name", "dark")
	v.SetDefault("theme.file", "")
	v.SetDefault("theme.watch", false)
	v.SetDefault("debug.overlay", false)
	v.SetDefault("debug.screenshot_dir", "screenshots")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. path names a YAML or TOML file; when empty,
// GRIDCANVAS_CONFIG is used, then gridcanvas.{yaml,toml} in the working
// directory if present. An explicitly named file must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gridcanvas")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Validate checks enum values and numeric ranges. Scale limits outside
// [gridcanvas.MinScale, gridcanvas.MaxScale] are clamped rather than
// rejected.
func (c *Config) Validate() error {
	if _, err := gridcanvas.ParseZoomAnchor(c.Grid.ZoomAnchor); err != nil {
		return fmt.Errorf("grid.zoom_anchor: %w", err)
	}
	if _, err := gridcanvas.ParseOverlap(c.Animation.Overlap); err != nil {
		return fmt.Errorf("animation.overlap: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("grid.cell_size must be positive, got %v", c.Grid.CellSize)
	}
	if c.Grid.ZoomStep <= 0 {
		return fmt.Errorf("grid.zoom_step must be positive, got %v", c.Grid.ZoomStep)
	}
	c.Grid.MinScale = max(gridcanvas.MinScale, min(c.Grid.MinScale, gridcanvas.MaxScale))
	c.Grid.MaxScale = max(gridcanvas.MinScale, min(c.Grid.MaxScale, gridcanvas.MaxScale))
	if c.Grid.MinScale > c.Grid.MaxScale {
		return fmt.Errorf("grid.min_scale %v exceeds grid.max_scale %v", c.Grid.MinScale, c.Grid.MaxScale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	return nil
}

// LogLevel parses log.level.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return l, nil
}

// GridOptions converts the grid, animation and debug settings. Enum values
// are assumed valid (Load validates them).
func (c Config) GridOptions() gridcanvas.Options {
	anchor, _ := gridcanvas.ParseZoomAnchor(c.Grid.ZoomAnchor)
	overlap, _ := gridcanvas.ParseOverlap(c.Animation.Overlap)
	return gridcanvas.Options{
		CellSize:         c.Grid.CellSize,
		MinScale:         c.Grid.MinScale,
		MaxScale:         c.Grid.MaxScale,
		ZoomStep:         c.Grid.ZoomStep,
		ZoomAnchor:       anchor,
		WheelNotchPixels: c.Grid.WheelNotchPixels,
		CenterDuration:   c.Animation.CenterDuration,
		Overlap:          overlap,
		Debug:            c.Debug.Overlay,
		ScreenshotDir:    c.Debug.ScreenshotDir,
	}
}
