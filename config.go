package floaty

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure reported by LoadConfig.
var ErrInvalidConfig = errors.New("floaty: invalid config")

// Config is the YAML configuration of a floaty application: the window, the
// log level, and one scene (engine) per entry in Scenes.
type Config struct {
	Window struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`
	LogLevel slog.Level `yaml:"logLevel"`
	Debug    bool       `yaml:"debug"`
	// IdleAfter emits activity:idle after this long without input. 0 disables
	// idle detection.
	IdleAfter time.Duration `yaml:"idleAfter"`
	// ScreensaverAfter shows the screensaver after this long without input.
	// 0 disables it.
	ScreensaverAfter time.Duration `yaml:"screensaverAfter"`
	Scenes           []SceneConfig `yaml:"scenes"`
}

// SceneConfig configures one engine and the images it animates.
type SceneConfig struct {
	Name                string        `yaml:"name"`
	Mode                Mode          `yaml:"mode"`
	Images              int           `yaml:"images"`
	Sources             []string      `yaml:"sources"`
	MaxImages           int           `yaml:"maxImages"`
	Speed               float64       `yaml:"speed"`
	Hover               HoverBehavior `yaml:"hover"`
	HoverSlowMultiplier float64       `yaml:"hoverSlowMultiplier"`
	TapToFreeze         bool          `yaml:"tapToFreeze"`
	PauseOnScreensaver  bool          `yaml:"pauseOnScreensaver"`
	PauseOnIdle         bool          `yaml:"pauseOnIdle"`
	ResizeDebounce      time.Duration `yaml:"resizeDebounce"`
}

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultSceneImages  = 12
)

// Options converts the scene into engine options. debug is the
// application-wide debug flag.
func (s SceneConfig) Options(debug bool) Options {
	return Options{
		Mode:                s.Mode,
		MaxImages:           s.MaxImages,
		SpeedMultiplier:     s.Speed,
		HoverBehavior:       s.Hover,
		HoverSlowMultiplier: s.HoverSlowMultiplier,
		TapToFreeze:         s.TapToFreeze,
		PauseOnScreensaver:  s.PauseOnScreensaver,
		PauseOnIdle:         s.PauseOnIdle,
		ResizeDebounce:      s.ResizeDebounce,
		Debug:               debug,
	}
}

// LoadConfig decodes, defaults, and validates a YAML config.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile opens path and decodes it with LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	defer r.Close()
	cfg, err := LoadConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save encodes cfg as YAML to w.
func (c *Config) Save(w io.Writer) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(c); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return e.Close()
}

func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "floaty"
	}
	if c.Window.Width == 0 {
		c.Window.Width = defaultWindowWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = defaultWindowHeight
	}
	if len(c.Scenes) == 0 {
		c.Scenes = []SceneConfig{{Name: ModeDrift.String()}}
	}
	for i := range c.Scenes {
		s := &c.Scenes[i]
		if s.Name == "" {
			s.Name = s.Mode.String()
		}
		if s.Images == 0 && len(s.Sources) == 0 {
			s.Images = defaultSceneImages
		}
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: negative window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.IdleAfter < 0 || c.ScreensaverAfter < 0 {
		return fmt.Errorf("%w: negative idle timeout", ErrInvalidConfig)
	}
	for _, s := range c.Scenes {
		switch {
		case s.Images < 0:
			return fmt.Errorf("%w: scene %q: negative images", ErrInvalidConfig, s.Name)
		case s.MaxImages < 0:
			return fmt.Errorf("%w: scene %q: negative maxImages", ErrInvalidConfig, s.Name)
		case s.Speed < 0:
			return fmt.Errorf("%w: scene %q: negative speed", ErrInvalidConfig, s.Name)
		case s.HoverSlowMultiplier < 0:
			return fmt.Errorf("%w: scene %q: negative hoverSlowMultiplier", ErrInvalidConfig, s.Name)
		}
	}
	return nil
}
