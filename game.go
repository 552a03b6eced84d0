package floaty

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background color.Color
	// Activity, when set, is told about key presses so they count as user
	// activity.
	Activity *ActivityMonitor
	// Script, when set, is stepped once per tick before input is read.
	// Its screenshot steps go to ScreenshotDir unless it has its own hook.
	Script *ScriptRunner
	// ScreenshotDir receives screenshots (default "screenshots").
	ScreenshotDir string
	// OnUpdate runs at the end of every tick. Returning an error stops the
	// game.
	OnUpdate func() error
}

// Game adapts an App to ebiten.Game. Each tick it polls input, runs element
// update hooks, and flushes one animation frame; Layout keeps the document
// viewport in sync with the window.
type Game struct {
	app   *App
	cfg   RunConfig
	dt    float64
	shots []string
}

// NewGame wraps app for ebiten.RunGame.
func NewGame(app *App, cfg RunConfig) *Game {
	if cfg.Background == nil {
		cfg.Background = color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{app: app, cfg: cfg, dt: 1.0 / float64(ebiten.TPS())}
	if cfg.Script != nil && cfg.Script.Screenshot == nil {
		cfg.Script.Screenshot = g.Screenshot
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	doc := g.app.Doc
	if g.cfg.Script == nil {
		doc.SetHidden(!ebiten.IsFocused())
	} else {
		g.cfg.Script.Step(g.app)
	}
	doc.ProcessInput()
	if g.cfg.Activity != nil && len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		g.cfg.Activity.Touch()
	}
	doc.Update(g.dt)
	g.app.Frame()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.app.Doc.Draw(screen)
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.Doc.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs app until the window closes or
// OnUpdate returns an error.
func Run(app *App, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(NewGame(app, cfg))
}
