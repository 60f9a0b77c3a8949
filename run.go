package bough

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS adds an FPS widget in the top-left corner.
	ShowFPS bool
	// Debug turns on Scene debug mode (stderr stats, goroutine checks).
	Debug bool
	// FixedStep advances animations by 1/TPS per frame instead of the
	// measured wall-clock delta.
	FixedStep bool
}

// ErrQuit can be returned from a scene's update func to end Run cleanly.
var ErrQuit = errors.New("bough: quit")

// Run opens a window and drives scene until the window is closed or the
// update func returns an error. ErrQuit is not reported as an error.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		return errors.New("bough: Run requires a scene")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("bough: invalid window size %dx%d", cfg.Width, cfg.Height)
	}

	g := &game{scene: scene, width: cfg.Width, height: cfg.Height}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.FixedStep {
		scene.FixedStep = true
	}
	if cfg.ShowFPS {
		g.fps = NewFPSWidget(scene.Clock())
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	err := ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bough: run: %w", err)
	}
	return nil
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	fps           *Sprite
	width, height int
}

func (g *game) Update() error {
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.Update(g.scene.Clock().Delta())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.ClearColor.RGBA())
	g.scene.Draw(screen)
	if g.fps != nil {
		g.scene.submit.begin(screen, identityTransform)
		g.scene.submit.DrawSingle(g.fps, g.fps.DrawKey())
		g.scene.submit.end()
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
