package bough

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchScene creates a Scene with n sprites sharing one texture, laid
// out on a 100-wide grid.
func setupBenchScene(n int) *Scene {
	s := NewScene()
	tex := NewTexture(ebiten.NewImage(32, 32))
	for i := 0; i < n; i++ {
		sp := NewSprite("sp", tex.Full(), Vec2{X: 32, Y: 32})
		sp.SetPosition(float64(i%100)*40, float64(i/100)*40)
		s.Add(sp)
	}
	return s
}

// setupAlternatingScene creates n sprites that alternate between two
// textures, so no two neighbours can share a draw call.
func setupAlternatingScene(n int) *Scene {
	s := NewScene()
	texs := [2]*Texture{
		NewTexture(ebiten.NewImage(32, 32)),
		NewTexture(ebiten.NewImage(32, 32)),
	}
	for i := 0; i < n; i++ {
		sp := NewSprite("sp", texs[i%2].Full(), Vec2{X: 32, Y: 32})
		sp.SetPosition(float64(i%100)*40, float64(i/100)*40)
		s.Add(sp)
	}
	return s
}

func BenchmarkDraw_10000Sprites_Static(b *testing.B) {
	s := setupBenchScene(10000)
	screen := ebiten.NewImage(1280, 720)
	b.ReportAllocs()
	for b.Loop() {
		s.Draw(screen)
	}
}

func BenchmarkDraw_10000Sprites_Rotating(b *testing.B) {
	s := setupBenchScene(10000)
	screen := ebiten.NewImage(1280, 720)
	b.ReportAllocs()
	for b.Loop() {
		for _, sp := range s.Sprites() {
			sp.Transform.Rotation += 0.01
			if sp.Transform.Rotation > 2*math.Pi {
				sp.Transform.Rotation -= 2 * math.Pi
			}
		}
		s.Draw(screen)
	}
}

func BenchmarkDraw_10000Sprites_Alternating(b *testing.B) {
	s := setupAlternatingScene(10000)
	screen := ebiten.NewImage(1280, 720)
	b.ReportAllocs()
	for b.Loop() {
		s.Draw(screen)
	}
}

func BenchmarkCulling_On_10000(b *testing.B) {
	s := setupBenchScene(10000)
	cam := s.NewCamera(Rect{Width: 640, Height: 480})
	cam.Position = Vec2{320, 240}
	screen := ebiten.NewImage(640, 480)
	b.ReportAllocs()
	for b.Loop() {
		s.Draw(screen)
	}
}

func BenchmarkCulling_Off_10000(b *testing.B) {
	s := setupBenchScene(10000)
	cam := s.NewCamera(Rect{Width: 640, Height: 480})
	cam.Position = Vec2{320, 240}
	cam.CullEnabled = false
	screen := ebiten.NewImage(640, 480)
	b.ReportAllocs()
	for b.Loop() {
		s.Draw(screen)
	}
}

func BenchmarkStep_10000Animating(b *testing.B) {
	s := setupBenchScene(10000)
	for i, sp := range s.Sprites() {
		p := sp.Position()
		sp.Anim = Concurrent(
			Spin(time.Duration(1+i%3)*time.Second),
			Repeat(Sequence(
				Move(time.Second, p, p.Add(Vec2{X: 20})),
				Move(time.Second, p.Add(Vec2{X: 20}), p),
			)),
		)
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = s.Step(16 * time.Millisecond)
	}
}

func BenchmarkAnimTick_Sequence(b *testing.B) {
	s := newTestSprite()
	template := Sequence(
		FadeOut(100*time.Millisecond),
		Move(100*time.Millisecond, Vec2{}, Vec2{X: 10}),
		FadeIn(100*time.Millisecond),
	)
	a := Repeat(template)
	b.ReportAllocs()
	for b.Loop() {
		a.Tick(s, 16*time.Millisecond)
	}
}

func BenchmarkAnimTick_Concurrent(b *testing.B) {
	s := newTestSprite()
	a := Concurrent(
		Spin(time.Second),
		Repeat(ScaleTo(500*time.Millisecond, 1, 2)),
		Repeat(Fade(500*time.Millisecond, 1, 0.5)),
	)
	b.ReportAllocs()
	for b.Loop() {
		a.Tick(s, 16*time.Millisecond)
	}
}
