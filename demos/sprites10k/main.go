// sprites10k spawns 10,000 sprites, each running its own repeating Bézier
// loop with a spin and a pulse, all sharing one texture and tint. A stress
// test for the animation driver and the batcher: the whole field should
// draw in a single call. Debug stats are printed to stderr every frame.
package main

import (
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/phanxgames/bough"
)

const (
	screenW = 1280
	screenH = 720
	count   = 10_000
	texSize = 32
)

func main() {
	tex := bough.NewTextureFromImage(makeOrb())

	scene := bough.NewScene()
	scene.ClearColor = bough.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}

	tint := bough.Color{R: 0.9, G: 0.8, B: 1, A: 1}
	for range count {
		size := 8 + rand.Float64()*16
		sp := bough.NewSprite("orb", tex.Full(), bough.Vec2{X: size, Y: size})
		sp.Color = tint

		p0 := randomPoint()
		loop := [4]bough.Vec2{p0, randomPoint(), randomPoint(), p0}
		period := time.Duration(2000+rand.IntN(4000)) * time.Millisecond

		sp.Anim = bough.Concurrent(
			bough.Repeat(bough.Curve(period, loop)),
			bough.Spin(time.Duration(500+rand.IntN(2500))*time.Millisecond),
			bough.Repeat(bough.Sequence(
				bough.ScaleTo(period/4, 1, 1.6),
				bough.ScaleTo(period/4, 1.6, 1),
			)),
		)
		sp.Transform.Position = p0
		scene.Add(sp)
	}

	if err := bough.Run(scene, bough.RunConfig{
		Title:   "Bough - 10k Sprites",
		Width:   screenW,
		Height:  screenH,
		ShowFPS: true,
		Debug:   true,
	}); err != nil {
		log.Fatal(err)
	}
}

func randomPoint() bough.Vec2 {
	return bough.Vec2{X: rand.Float64() * screenW, Y: rand.Float64() * screenH}
}

// makeOrb draws a soft-edged disc.
func makeOrb() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, texSize, texSize))
	r := float64(texSize) / 2
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			dx := (float64(x) + 0.5 - r) / r
			dy := (float64(y) + 0.5 - r) / r
			d := dx*dx + dy*dy
			if d > 1 {
				continue
			}
			a := uint8(255 * (1 - d*d))
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}
