package bough

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// SpriteAnim is an animation tree over a Sprite.
type SpriteAnim = Anim[*Sprite]

// done reports whether a finite leaf should snap to its end value. A
// zero-length timer is done on its first tick, before Ratio is ever read.
func done(timer *Timer) bool {
	return timer.Total <= 0 || timer.Finished()
}

// Rotate turns the sprite through one full clockwise revolution over d and
// leaves it at rotation 0.
func Rotate(d time.Duration) SpriteAnim {
	return Leaf(d, func(s *Sprite, timer *Timer) Transition[*Sprite] {
		if done(timer) {
			s.Transform.Rotation = 0
			return Finish[*Sprite]()
		}
		s.Transform.Rotation = 2 * math.Pi * timer.Ratio()
		return Remain[*Sprite]()
	})
}

// Spin rotates the sprite one revolution per period, forever. It never
// finishes on its own; cancel it with SetAnim or wrap it in a Concurrent
// that is replaced. A period <= 0 finishes immediately.
func Spin(period time.Duration) SpriteAnim {
	return Func(func(s *Sprite, timer *Timer) Transition[*Sprite] {
		if period <= 0 {
			return Finish[*Sprite]()
		}
		phase := timer.Elapsed % period
		s.Transform.Rotation = 2 * math.Pi * float64(phase) / float64(period)
		return Remain[*Sprite]()
	})
}

// Fade moves the sprite's alpha from `from` to `to` linearly over d.
func Fade(d time.Duration, from, to float64) SpriteAnim {
	return Leaf(d, func(s *Sprite, timer *Timer) Transition[*Sprite] {
		if done(timer) {
			s.Color.A = to
			return Finish[*Sprite]()
		}
		s.Color.A = from + (to-from)*timer.Ratio()
		return Remain[*Sprite]()
	})
}

// FadeIn fades the sprite from transparent to opaque over d.
func FadeIn(d time.Duration) SpriteAnim {
	return Fade(d, 0, 1)
}

// FadeOut fades the sprite from opaque to transparent over d.
func FadeOut(d time.Duration) SpriteAnim {
	return Fade(d, 1, 0)
}

// Move slides the sprite's position from a to b linearly over d.
func Move(d time.Duration, a, b Vec2) SpriteAnim {
	return Leaf(d, func(s *Sprite, timer *Timer) Transition[*Sprite] {
		if done(timer) {
			s.Transform.Position = b
			return Finish[*Sprite]()
		}
		s.Transform.Position = a.Lerp(b, timer.Ratio())
		return Remain[*Sprite]()
	})
}

// Curve moves the sprite along the cubic Bézier curve with control points p
// over d, ending exactly on p[3].
func Curve(d time.Duration, p [4]Vec2) SpriteAnim {
	return Leaf(d, func(s *Sprite, timer *Timer) Transition[*Sprite] {
		if done(timer) {
			s.Transform.Position = p[3]
			return Finish[*Sprite]()
		}
		s.Transform.Position = bezier(p, timer.Ratio())
		return Remain[*Sprite]()
	})
}

// bezier evaluates a cubic Bézier curve at t using Bernstein weights.
func bezier(p [4]Vec2, t float64) Vec2 {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * t * u * u
	w2 := 3 * t * t * u
	w3 := t * t * t
	return Vec2{
		X: w0*p[0].X + w1*p[1].X + w2*p[2].X + w3*p[3].X,
		Y: w0*p[0].Y + w1*p[1].Y + w2*p[2].Y + w3*p[3].Y,
	}
}

// ScaleTo changes the sprite's uniform scale from `from` to `to` linearly
// over d.
func ScaleTo(d time.Duration, from, to float64) SpriteAnim {
	return Tween(d, from, to, ease.Linear, func(s *Sprite, v float64) {
		s.Transform.Scale = v
	})
}

// FadeEase is Fade with a gween easing law. A nil fn is linear.
func FadeEase(d time.Duration, from, to float64, fn ease.TweenFunc) SpriteAnim {
	return Tween(d, from, to, fn, func(s *Sprite, v float64) {
		s.Color.A = v
	})
}

// MoveEase is Move with a gween easing law applied to both axes.
func MoveEase(d time.Duration, a, b Vec2, fn ease.TweenFunc) SpriteAnim {
	return Concurrent(
		Tween(d, a.X, b.X, fn, func(s *Sprite, v float64) { s.Transform.Position.X = v }),
		Tween(d, a.Y, b.Y, fn, func(s *Sprite, v float64) { s.Transform.Position.Y = v }),
	)
}
