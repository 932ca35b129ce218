// Package config loads the optional karto.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/sheet"
	"github.com/karto-app/karto/pkg/theme"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "karto.yaml"

// SchemaMajor is the only configuration major version understood.
const SchemaMajor = "v1"

// ErrUnsupportedVersion is returned for a config written for another major
// schema version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config represents the optional karto.yaml configuration.
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Viewport ViewportConfig `yaml:"viewport"`
	Sheet    SheetConfig    `yaml:"sheet"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ViewportConfig sizes the simulated screen.
type ViewportConfig struct {
	Width  float64      `yaml:"width,omitempty"`
	Height float64      `yaml:"height,omitempty"`
	Insets InsetsConfig `yaml:"insets"`
}

// InsetsConfig is the simulated safe area.
type InsetsConfig struct {
	Top    float64 `yaml:"top,omitempty"`
	Bottom float64 `yaml:"bottom,omitempty"`
	Left   float64 `yaml:"left,omitempty"`
	Right  float64 `yaml:"right,omitempty"`
}

// SheetConfig sets the sheet options used by the demo.
type SheetConfig struct {
	Height          float64  `yaml:"height,omitempty"`
	FullScreen      bool     `yaml:"full_screen,omitempty"`
	CoverPercentage float64  `yaml:"cover_percentage,omitempty"`
	BackdropPress   *bool    `yaml:"backdrop_press,omitempty"`
	BlurIntensity   *float64 `yaml:"blur_intensity,omitempty"`
	Tint            string   `yaml:"tint,omitempty"`
}

// StorageConfig locates the local cache.
type StorageConfig struct {
	// Path is a SQLite file, relative to the project directory. Empty keeps
	// the cache in memory.
	Path string `yaml:"path,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	// File sends logs to a rotated file instead of stderr.
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root string
	// Path is the file the values came from, empty when defaults were used.
	Path string

	Viewport graphics.Size
	Insets   graphics.EdgeInsets

	SheetHeight     float64
	FullScreen      bool
	CoverPercentage float64
	BackdropPress   bool
	BlurIntensity   float64
	Tint            theme.BlurTint

	StoragePath string

	LogLevel      log.Level
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Defaults used when karto.yaml leaves a value unset.
const (
	DefaultViewportWidth  = 390
	DefaultViewportHeight = 844
	DefaultInsetTop       = 47
	DefaultInsetBottom    = 34
)

// LoadOptional reads karto.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kartoerrors.New("config.Load", kartoerrors.KindConfig,
			fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, kartoerrors.New("config.Load", kartoerrors.KindConfig,
			fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err))
	}
	return &cfg, nil
}

// Resolve loads karto.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(filepath.Join(dir, FileName)); statErr == nil {
		r.Path = filepath.Join(dir, FileName)
	}
	return r, nil
}

// ResolveFile loads an explicit configuration file. Relative paths inside
// it are resolved against the file's directory.
func ResolveFile(path string) (*Resolved, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	r.Path = path
	return r, nil
}

// Resolve validates c and fills defaults. root anchors relative paths.
func (c *Config) Resolve(root string) (*Resolved, error) {
	if err := checkVersion(c.Version); err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:          root,
		Viewport:      graphics.Size{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		Insets:        graphics.EdgeInsets{Top: DefaultInsetTop, Bottom: DefaultInsetBottom},
		SheetHeight:   sheet.DefaultHeight,
		BackdropPress: true,
		BlurIntensity: theme.DefaultSheetTheme().BlurIntensity,
		Tint:          theme.DefaultSheetTheme().BlurTint,
		LogLevel:      log.InfoLevel,
		LogFile:       c.Log.File,
		LogMaxSizeMB:  c.Log.MaxSizeMB,
		LogMaxBackups: c.Log.MaxBackups,
		LogMaxAgeDays: c.Log.MaxAgeDays,
	}

	vp := c.Viewport
	if vp.Width < 0 || vp.Height < 0 {
		return nil, invalid("viewport size must not be negative, got %vx%v", vp.Width, vp.Height)
	}
	if vp.Width > 0 {
		r.Viewport.Width = vp.Width
	}
	if vp.Height > 0 {
		r.Viewport.Height = vp.Height
	}
	if vp.Insets != (InsetsConfig{}) {
		in := vp.Insets
		if in.Top < 0 || in.Bottom < 0 || in.Left < 0 || in.Right < 0 {
			return nil, invalid("viewport insets must not be negative")
		}
		r.Insets = graphics.EdgeInsets{Top: in.Top, Bottom: in.Bottom, Left: in.Left, Right: in.Right}
	}

	s := c.Sheet
	if s.Height < 0 {
		return nil, invalid("sheet height must not be negative, got %v", s.Height)
	}
	if s.Height > 0 {
		r.SheetHeight = s.Height
	}
	r.FullScreen = s.FullScreen
	if s.CoverPercentage != 0 && !sheet.ValidCover(s.CoverPercentage) {
		return nil, invalid("sheet cover_percentage must be in (0, 1], got %v", s.CoverPercentage)
	}
	r.CoverPercentage = s.CoverPercentage
	if s.BackdropPress != nil {
		r.BackdropPress = *s.BackdropPress
	}
	if s.BlurIntensity != nil {
		if *s.BlurIntensity < 0 || *s.BlurIntensity > 100 {
			return nil, invalid("sheet blur_intensity must be in [0, 100], got %v", *s.BlurIntensity)
		}
		r.BlurIntensity = *s.BlurIntensity
	}
	if tint := strings.TrimSpace(s.Tint); tint != "" {
		switch t := theme.BlurTint(strings.ToLower(tint)); t {
		case theme.BlurTintDark, theme.BlurTintLight, theme.BlurTintDefault:
			r.Tint = t
		default:
			return nil, invalid("sheet tint must be dark, light or default, got %q", tint)
		}
	}

	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		r.StoragePath = p
	}
	if r.LogFile != "" && !filepath.IsAbs(r.LogFile) {
		r.LogFile = filepath.Join(root, r.LogFile)
	}

	if lvl := strings.TrimSpace(c.Log.Level); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			return nil, invalid("log level: %v", err)
		}
		r.LogLevel = level
	}
	return r, nil
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return invalid("version %q is not a semantic version", v)
	}
	if major := semver.Major(v); major != SchemaMajor {
		return kartoerrors.New("config.Resolve", kartoerrors.KindConfig,
			fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, SchemaMajor))
	}
	return nil
}

func invalid(format string, args ...any) error {
	return kartoerrors.New("config.Resolve", kartoerrors.KindConfig, fmt.Errorf(format, args...))
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Metrics returns the simulated screen.
func (r *Resolved) Metrics() platform.Metrics {
	return platform.Metrics{Viewport: r.Viewport, Insets: r.Insets}
}

// SheetOptions returns the sheet options the configuration asks for.
func (r *Resolved) SheetOptions() []sheet.Option {
	opts := []sheet.Option{
		sheet.WithHeight(r.SheetHeight),
		sheet.WithFullScreen(r.FullScreen),
		sheet.WithBackdropPress(r.BackdropPress),
		sheet.WithBackdrop(r.Tint, r.BlurIntensity),
	}
	if r.CoverPercentage != 0 {
		opts = append(opts, sheet.WithCoverPercentage(r.CoverPercentage))
	}
	return opts
}
