package floaty

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
window:
  title: demo
  width: 640
  height: 480
logLevel: debug
debug: true
idleAfter: 30s
screensaverAfter: 2m
scenes:
  - name: sky
    mode: parallax
    images: 20
    maxImages: 15
    speed: 1.5
    hover: slow
    hoverSlowMultiplier: 0.3
    tapToFreeze: true
    pauseOnScreensaver: true
    pauseOnIdle: true
    resizeDebounce: 150ms
  - mode: rain
    sources: [a.png, b.webp]
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.LogLevel != slog.LevelDebug || !cfg.Debug {
		t.Errorf("logLevel = %v, debug = %v", cfg.LogLevel, cfg.Debug)
	}
	if cfg.IdleAfter != 30*time.Second || cfg.ScreensaverAfter != 2*time.Minute {
		t.Errorf("timeouts = %v, %v", cfg.IdleAfter, cfg.ScreensaverAfter)
	}
	if len(cfg.Scenes) != 2 {
		t.Fatalf("scenes = %d, want 2", len(cfg.Scenes))
	}

	sky := cfg.Scenes[0]
	opts := sky.Options(cfg.Debug)
	want := Options{
		Mode:                ModeParallax,
		MaxImages:           15,
		SpeedMultiplier:     1.5,
		HoverBehavior:       HoverSlow,
		HoverSlowMultiplier: 0.3,
		TapToFreeze:         true,
		PauseOnScreensaver:  true,
		PauseOnIdle:         true,
		ResizeDebounce:      150 * time.Millisecond,
		Debug:               true,
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("options = %+v\nwant      %+v", opts, want)
	}
	if sky.Images != 20 {
		t.Errorf("images = %d", sky.Images)
	}

	rain := cfg.Scenes[1]
	if rain.Name != "rain" || rain.Mode != ModeRain {
		t.Errorf("second scene = %q/%v, want its name defaulted to the mode", rain.Name, rain.Mode)
	}
	if rain.Images != 0 || len(rain.Sources) != 2 {
		t.Errorf("images = %d, sources = %v", rain.Images, rain.Sources)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "floaty" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("logLevel = %v, want info", cfg.LogLevel)
	}
	if len(cfg.Scenes) != 1 || cfg.Scenes[0].Mode != ModeDrift || cfg.Scenes[0].Images != 12 {
		t.Errorf("scenes = %+v, want one drift scene of 12 images", cfg.Scenes)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("window:\n  colour: red\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("scenes:\n  - mode: orbit\n"))
	if err == nil || !strings.Contains(err.Error(), "orbit") {
		t.Errorf("err = %v, want an unknown mode error", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"negative speed":  "scenes:\n  - speed: -1\n",
		"negative max":    "scenes:\n  - maxImages: -2\n",
		"negative images": "scenes:\n  - images: -3\n",
		"negative hover":  "scenes:\n  - hoverSlowMultiplier: -0.5\n",
		"negative idle":   "idleAfter: -1s\n",
		"negative window": "window:\n  width: -10\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(doc))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := cfg.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(buf.String(), "mode: parallax") || !strings.Contains(buf.String(), "hover: slow") {
		t.Errorf("saved config lost the text names:\n%s", buf.String())
	}
	again, err := LoadConfig(&buf)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range cfg.Scenes {
		if !reflect.DeepEqual(again.Scenes[i].Options(false), cfg.Scenes[i].Options(false)) {
			t.Errorf("scene %d options changed across a save", i)
		}
	}
	if len(again.Scenes[1].Sources) != 2 {
		t.Errorf("sources = %v after a save", again.Scenes[1].Sources)
	}
	if again.IdleAfter != cfg.IdleAfter || again.LogLevel != cfg.LogLevel {
		t.Error("top-level fields changed across a save")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floaty.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Window.Title != "demo" {
		t.Errorf("title = %q", cfg.Window.Title)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}
