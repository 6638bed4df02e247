// config.go - YAML settings for the console and its viewers
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"arcos/internal/console"
	"arcos/internal/vga"
)

// Surface backends
const (
	BackendMemory = "memory"
	BackendMapped = "mapped"
)

// Viewer modes
const (
	ViewANSI  = "ansi"
	ViewPlain = "plain"
	ViewTcell = "tcell"
	ViewFyne  = "fyne"
	ViewPNG   = "png"
	ViewNone  = "none"
)

var viewModes = []string{ViewANSI, ViewPlain, ViewTcell, ViewFyne, ViewPNG, ViewNone}

// Upper bound for either display dimension.
const maxDimension = 255

// DisplaySettings describe the text surface and the driver's behaviour.
type DisplaySettings struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	StartRow        *int   `yaml:"start_row,omitempty"` // nil means height-2
	BannerRow       *int   `yaml:"banner_row,omitempty"` // nil means row 1, or 0 on a one-row display
	Welcome         string `yaml:"welcome"`
	Foreground      string `yaml:"foreground"`
	Background      string `yaml:"background"`
	BlankExposedRow bool   `yaml:"blank_exposed_row"`
	KeepAttributes  bool   `yaml:"keep_attributes"`
}

// SurfaceSettings select where cells are stored.
type SurfaceSettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// ViewerSettings select how the surface is shown.
type ViewerSettings struct {
	Mode      string `yaml:"mode"`
	PNGPath   string `yaml:"png_path,omitempty"`
	RefreshMS int    `yaml:"refresh_ms"`
}

// LoggingSettings control the log file.
type LoggingSettings struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"`
}

// Settings holds all application configuration
type Settings struct {
	Display DisplaySettings `yaml:"display"`
	Surface SurfaceSettings `yaml:"surface"`
	Viewer  ViewerSettings  `yaml:"viewer"`
	Logging LoggingSettings `yaml:"logging"`
}

// DefaultSettings returns settings for a standard 80x25 console
func DefaultSettings() *Settings {
	return &Settings{
		Display: DisplaySettings{
			Width:      vga.Width,
			Height:     vga.Height,
			Welcome:    console.DefaultWelcome,
			Foreground: vga.LightGrey.String(),
			Background: vga.Black.String(),
		},
		Surface: SurfaceSettings{
			Backend: BackendMemory,
		},
		Viewer: ViewerSettings{
			Mode:      ViewANSI,
			PNGPath:   "screen.png",
			RefreshMS: 100,
		},
		Logging: LoggingSettings{
			Enabled: true,
		},
	}
}

// Load reads settings from path. A missing file yields the defaults; keys
// absent from the file keep their default values. The result is not
// validated so that command-line overrides can be layered on first.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Config file %s not found, using defaults", path)
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	log.Printf("Loaded config from %s", path)
	return settings, nil
}

// Save writes settings to path, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EnsureFile writes the defaults to path when no file exists there yet.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	log.Printf("Config file not found, creating stub: %s", path)
	return DefaultSettings().Save(path)
}

// Validate checks the settings for values the console cannot use.
func (s *Settings) Validate() error {
	d := s.Display
	if d.Width < 1 || d.Width > maxDimension || d.Height < 1 || d.Height > maxDimension {
		return fmt.Errorf("display size %dx%d must be within 1..%d", d.Width, d.Height, maxDimension)
	}
	if d.StartRow != nil && (*d.StartRow < 0 || *d.StartRow >= d.Height) {
		return fmt.Errorf("start_row %d outside 0..%d", *d.StartRow, d.Height-1)
	}
	if d.BannerRow != nil && (*d.BannerRow < 0 || *d.BannerRow >= d.Height) {
		return fmt.Errorf("banner_row %d outside 0..%d", *d.BannerRow, d.Height-1)
	}
	if _, err := s.Attribute(); err != nil {
		return err
	}

	switch s.Surface.Backend {
	case BackendMemory:
	case BackendMapped:
		if s.Surface.Path == "" {
			return errors.New("mapped surface needs a path")
		}
	default:
		return fmt.Errorf("unknown surface backend %q", s.Surface.Backend)
	}

	if !validViewMode(s.Viewer.Mode) {
		return fmt.Errorf("unknown viewer mode %q", s.Viewer.Mode)
	}
	if s.Viewer.Mode == ViewPNG && s.Viewer.PNGPath == "" {
		return errors.New("png viewer needs png_path")
	}
	if s.Viewer.RefreshMS < 0 {
		return fmt.Errorf("refresh_ms %d must not be negative", s.Viewer.RefreshMS)
	}
	return nil
}

func validViewMode(mode string) bool {
	for _, m := range viewModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Attribute returns the configured text colours.
func (s *Settings) Attribute() (vga.Attribute, error) {
	fg, err := vga.ParseColor(s.Display.Foreground)
	if err != nil {
		return vga.Attribute{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := vga.ParseColor(s.Display.Background)
	if err != nil {
		return vga.Attribute{}, fmt.Errorf("background: %w", err)
	}
	return vga.MakeAttribute(fg, bg), nil
}

// DriverOptions converts the display settings into driver options.
func (s *Settings) DriverOptions() vga.Options {
	opts := vga.DefaultOptions(s.Display.Height)
	if s.Display.StartRow != nil {
		opts.StartRow = *s.Display.StartRow
	}
	if s.Display.BannerRow != nil {
		opts.BannerRow = *s.Display.BannerRow
	}
	opts.BlankExposedRow = s.Display.BlankExposedRow
	opts.KeepAttributes = s.Display.KeepAttributes
	return opts
}

// LogPath returns the configured log file or the default one.
func (s *Settings) LogPath() string {
	if s.Logging.File != "" {
		return s.Logging.File
	}
	return GetLogPath()
}
