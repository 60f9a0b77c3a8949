package bough

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 500 * time.Millisecond

// NewFPSWidget creates a sprite that displays the clock's measured FPS next
// to Ebitengine's TPS. The text is redrawn every ~0.5 seconds by a Func leaf
// that never finishes. The widget's Offset puts its top-left corner at
// Transform.Position.
func NewFPSWidget(clock *Clock) *Sprite {
	// 100x32 is enough for "FPS: 60\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)
	tex := NewTexture(img)

	s := NewSprite("fps_widget", tex.Full(), Vec2{100, 32})
	s.Transform.Offset = Vec2{50, 16}

	var since time.Duration
	redraw := func() {
		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %d\nTPS: %.1f", clock.FPS(), ebiten.ActualTPS()))
	}
	redraw()

	s.Anim = Func(func(_ *Sprite, timer *Timer) Transition[*Sprite] {
		since += timer.Delta
		if since < fpsRefresh {
			return Remain[*Sprite]()
		}
		since = 0
		redraw()
		return Remain[*Sprite]()
	})
	return s
}
