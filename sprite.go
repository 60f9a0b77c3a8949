package bough

import "time"

// spriteIDCounter is a plain counter (no atomic, bough is single-threaded).
var spriteIDCounter uint32

func nextSpriteID() uint32 {
	spriteIDCounter++
	return spriteIDCounter
}

// Sprite is a textured quad and the standard animation target. It carries
// its own animation tree, advanced by Update.
type Sprite struct {
	// Identity
	ID       uint32
	Name     string
	EntityID uint32 // optional ECS entity, echoed in AnimationEvents

	// Geometry
	Size      Vec2 // on-screen size before Transform.Scale
	Transform Transform
	Image     Image

	// Color is the multiplier applied to every texel. Sprites batch together
	// only when both Image.Texture and Color are equal.
	Color   Color
	Visible bool

	// Anim is the sprite's animation tree. Assign it (or call SetAnim) to
	// cancel whatever was running.
	Anim Anim[*Sprite]

	// OnUpdate, when set, runs after the animation tick each frame.
	OnUpdate func(dt time.Duration)

	UserData any

	scene    *Scene
	disposed bool
}

// NewSprite creates a visible sprite showing img at the given size.
func NewSprite(name string, img Image, size Vec2) *Sprite {
	return &Sprite{
		ID:        nextSpriteID(),
		Name:      name,
		Size:      size,
		Transform: NewTransform(),
		Image:     img,
		Color:     ColorWhite,
		Visible:   true,
	}
}

// NewRect creates a solid color sprite backed by the shared white texture.
func NewRect(name string, size Vec2, c Color) *Sprite {
	s := NewSprite(name, WhiteTexture().Full(), size)
	s.Color = c
	return s
}

// SetPosition sets the sprite's world position.
func (s *Sprite) SetPosition(x, y float64) {
	s.Transform.Position = Vec2{x, y}
}

// Position returns the sprite's world position.
func (s *Sprite) Position() Vec2 {
	return s.Transform.Position
}

// SetAnim replaces the sprite's animation tree. If the previous tree was
// still running and the sprite belongs to a scene, an AnimationCancelled
// event is emitted.
func (s *Sprite) SetAnim(a Anim[*Sprite]) {
	if !s.Anim.IsIdle() && s.scene != nil {
		s.scene.emit(AnimationCancelled, s)
	}
	s.Anim = a
}

// InScene reports whether the sprite belongs to a Scene.
func (s *Sprite) InScene() bool {
	return s.scene != nil
}

// Animating reports whether the sprite's animation tree is still active.
func (s *Sprite) Animating() bool {
	return !s.Anim.IsIdle()
}

// Update advances the sprite's animation by dt and runs OnUpdate. It
// returns true if the animation finished during this call.
func (s *Sprite) Update(dt time.Duration) (finished bool) {
	if s.disposed {
		return false
	}
	if !s.Anim.IsIdle() {
		finished = !s.Anim.Tick(s, dt)
	}
	if s.OnUpdate != nil {
		s.OnUpdate(dt)
	}
	return finished
}

// DrawKey returns the key that decides which neighbours the sprite can
// share a draw call with.
func (s *Sprite) DrawKey() DrawKey {
	return DrawKey{Texture: s.Image.Texture, Color: s.Color}
}

// Quad writes the sprite's four corners (TL, TR, BL, BR) into q, mapped
// through the sprite transform and then view. Source coordinates are the
// image's clip rectangle in texels; vertex colors carry the premultiplied
// color multiplier.
func (s *Sprite) Quad(view [6]float64, q *Quad) {
	m := multiplyAffine(view, s.Transform.Matrix())
	a, b, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]

	hw := s.Size.X / 2
	hh := s.Size.Y / 2
	lx := [4]float64{-hw, hw, -hw, hw}
	ly := [4]float64{-hh, -hh, hh, hh}

	img := &s.Image
	x0 := float32(img.X)
	y0 := float32(img.Y)
	x1 := float32(img.X + img.Width)
	y1 := float32(img.Y + img.Height)
	sx := [4]float32{x0, x1, x0, x1}
	sy := [4]float32{y0, y0, y1, y1}

	cr, cg, cb, ca := s.Color.premultiplied()

	for i := 0; i < 4; i++ {
		v := &q[i]
		v.DstX = float32(a*lx[i] + c*ly[i] + tx)
		v.DstY = float32(b*lx[i] + d*ly[i] + ty)
		v.SrcX = sx[i]
		v.SrcY = sy[i]
		v.ColorR = cr
		v.ColorG = cg
		v.ColorB = cb
		v.ColorA = ca
	}
}

// Bounds returns the axis-aligned bounding box of the sprite in world space.
func (s *Sprite) Bounds() Rect {
	m := s.Transform.Matrix()
	// Shift to the top-left corner so boundsOf can span (0,0)-(w,h).
	m[4], m[5] = transformPoint(m, -s.Size.X/2, -s.Size.Y/2)
	return boundsOf(m, s.Size.X, s.Size.Y)
}

// Dispose detaches the sprite from its scene and stops its animation.
// A disposed sprite ignores Update.
func (s *Sprite) Dispose() {
	if s.disposed {
		return
	}
	if s.scene != nil {
		s.scene.Remove(s)
	}
	s.disposed = true
	s.ID = 0
	s.Anim = Idle[*Sprite]()
	s.OnUpdate = nil
	s.UserData = nil
}

// IsDisposed returns true if this sprite has been disposed.
func (s *Sprite) IsDisposed() bool {
	return s.disposed
}
