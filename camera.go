package bough

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// CameraAnim is an animation tree over a Camera.
type CameraAnim = Anim[*Camera]

// Camera is the view into a scene. It is an animation target like a
// sprite: ScrollTo and ZoomTo install eased tweens on Anim, Follow installs
// a tracking leaf, and the scene advances both every Step.
type Camera struct {
	// Position is the world point shown at the center of the viewport.
	Position Vec2
	// Zoom scales the world; 2 shows half as much of it.
	Zoom float64
	// Rotation turns the view, in radians. The world appears rotated the
	// other way.
	Rotation float64
	// Viewport is the screen rectangle the camera renders into.
	Viewport Rect

	// CullEnabled drops sprites outside VisibleBounds from the draw list.
	// The remaining sprites keep their paint order.
	CullEnabled bool

	// Bounds, when set, keeps the visible area inside this world rectangle.
	// A world smaller than the view is centered instead.
	Bounds *Rect

	// Anim drives scripted camera motion. ScrollTo and ZoomTo replace it;
	// assign any CameraAnim for custom moves.
	Anim CameraAnim

	follow CameraAnim
}

func newCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport, CullEnabled: true}
}

// CameraScroll tweens the camera position from a to b.
func CameraScroll(d time.Duration, a, b Vec2, fn ease.TweenFunc) CameraAnim {
	return Concurrent(
		Tween(d, a.X, b.X, fn, func(c *Camera, v float64) { c.Position.X = v }),
		Tween(d, a.Y, b.Y, fn, func(c *Camera, v float64) { c.Position.Y = v }),
	)
}

// CameraZoom tweens the camera zoom from a to b.
func CameraZoom(d time.Duration, a, b float64, fn ease.TweenFunc) CameraAnim {
	return Tween(d, a, b, fn, func(c *Camera, v float64) { c.Zoom = v })
}

// ScrollTo moves the camera from where it is now to target over d. A nil
// fn is linear.
func (c *Camera) ScrollTo(target Vec2, d time.Duration, fn ease.TweenFunc) {
	c.Anim = CameraScroll(d, c.Position, target, fn)
}

// ZoomTo changes the zoom from its current value to zoom over d.
func (c *Camera) ZoomTo(zoom float64, d time.Duration, fn ease.TweenFunc) {
	c.Anim = CameraZoom(d, c.Zoom, zoom, fn)
}

// Animating reports whether a scripted move is in progress.
func (c *Camera) Animating() bool {
	return !c.Anim.IsIdle()
}

// Follow tracks target every Step, closing the given fraction of the gap
// to target+offset per tick; 1 locks onto it. Tracking stops by itself
// once the target is disposed. Scripted moves on Anim run after tracking
// and win when both set the position.
func (c *Camera) Follow(target *Sprite, offset Vec2, lerp float64) {
	if target == nil {
		c.follow = Idle[*Camera]()
		return
	}
	c.follow = Func(func(c *Camera, _ *Timer) Transition[*Camera] {
		if target.IsDisposed() {
			return Finish[*Camera]()
		}
		goal := target.Position().Add(offset)
		c.Position = c.Position.Lerp(goal, lerp)
		return Remain[*Camera]()
	})
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.follow = Idle[*Camera]()
}

// Following reports whether the camera is tracking a sprite.
func (c *Camera) Following() bool {
	return !c.follow.IsIdle()
}

// update advances tracking and scripted motion, then applies Bounds.
func (c *Camera) update(dt time.Duration) {
	c.follow.Tick(c, dt)
	c.Anim.Tick(c, dt)
	c.clamp()
}

func (c *Camera) clamp() {
	if c.Bounds == nil || c.Zoom <= 0 {
		return
	}
	half := Vec2{c.Viewport.Width, c.Viewport.Height}.Scale(0.5 / c.Zoom)
	c.Position.X = clampAxis(c.Position.X, c.Bounds.X, c.Bounds.Width, half.X)
	c.Position.Y = clampAxis(c.Position.Y, c.Bounds.Y, c.Bounds.Height, half.Y)
}

// clampAxis keeps v within [lo+half, lo+size-half], or centers it when the
// span is narrower than the view.
func clampAxis(v, lo, size, half float64) float64 {
	if size < 2*half {
		return lo + size/2
	}
	return math.Max(lo+half, math.Min(v, lo+size-half))
}

// viewMatrix maps world space to screen space: the camera position lands on
// the viewport center, scaled by Zoom and turned by -Rotation.
func (c *Camera) viewMatrix() [6]float64 {
	center := Vec2{
		X: c.Viewport.X + c.Viewport.Width/2,
		Y: c.Viewport.Y + c.Viewport.Height/2,
	}
	return Transform{
		Position: center,
		Rotation: -c.Rotation,
		Scale:    c.Zoom,
		Offset:   c.Position.Scale(-1),
	}.Matrix()
}

// WorldToScreen maps a world point to the screen.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	x, y := transformPoint(c.viewMatrix(), p.X, p.Y)
	return Vec2{x, y}
}

// ScreenToWorld maps a screen point, such as the cursor, into the world.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(c.viewMatrix()), p.X, p.Y)
	return Vec2{x, y}
}

// VisibleBounds returns the world-space box that covers the viewport.
func (c *Camera) VisibleBounds() Rect {
	toWorld := multiplyAffine(invertAffine(c.viewMatrix()),
		[6]float64{1, 0, 0, 1, c.Viewport.X, c.Viewport.Y})
	return boundsOf(toWorld, c.Viewport.Width, c.Viewport.Height)
}

// culled reports whether s lies entirely outside visible. Sprites without
// a size are never culled.
func (c *Camera) culled(s *Sprite, visible Rect) bool {
	if s.Size == (Vec2{}) {
		return false
	}
	return !s.Bounds().Intersects(visible)
}
