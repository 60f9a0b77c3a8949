package bough

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, animation events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event AnimationEvent)
}

// AnimationEventType identifies what happened to a sprite's animation.
type AnimationEventType uint8

const (
	AnimationFinished  AnimationEventType = iota // the tree reduced to Idle during a tick
	AnimationCancelled                           // an active tree was replaced via SetAnim
)

func (t AnimationEventType) String() string {
	switch t {
	case AnimationFinished:
		return "finished"
	case AnimationCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("AnimationEventType(%d)", uint8(t))
	}
}

// AnimationEvent carries animation lifecycle data for the ECS bridge.
type AnimationEvent struct {
	Type     AnimationEventType
	SpriteID uint32
	EntityID uint32
	Name     string
}

const defaultSpriteCap = 1024

// Scene owns a list of sprites in paint order, the clock that drives their
// animations, an optional camera, and the batcher that draws them.
type Scene struct {
	// ClearColor fills the screen before drawing when used with Run.
	ClearColor Color
	// FixedStep advances animations by 1/TPS per Update instead of the
	// measured wall-clock delta.
	FixedStep bool

	sprites []*Sprite
	camera  *Camera
	clock   *Clock
	store   EntityStore
	debug   bool
	owner   int64 // goroutine that first used the scene (debug mode only)

	updateFunc func() error

	// Render state
	batcher  *Batcher[*Sprite]
	submit   screenSubmitter
	drawList []*Sprite
	view     [6]float64

	stats debugStats
}

// NewScene creates an empty scene with a running clock.
func NewScene() *Scene {
	s := &Scene{
		sprites:  make([]*Sprite, 0, defaultSpriteCap),
		drawList: make([]*Sprite, 0, defaultSpriteCap),
		clock:    NewClock(),
		view:     identityTransform,
	}
	s.batcher = NewBatcher((*Sprite).DrawKey, func(sp *Sprite, q *Quad) {
		sp.Quad(s.view, q)
	})
	return s
}

// Add appends sprites to the scene. Later sprites paint over earlier ones.
// A sprite already in another scene is moved.
// Panics if a sprite is nil.
func (s *Scene) Add(sprites ...*Sprite) {
	for _, sp := range sprites {
		if sp == nil {
			panic("bough: cannot add nil sprite")
		}
		if sp.scene != nil {
			sp.scene.Remove(sp)
		}
		sp.scene = s
		s.sprites = append(s.sprites, sp)
	}
	if s.debug {
		debugCheckSpriteCount(s)
	}
}

// Remove detaches sp from the scene. No-op if sp is not in this scene.
func (s *Scene) Remove(sp *Sprite) {
	if sp == nil || sp.scene != s {
		return
	}
	for i, c := range s.sprites {
		if c == sp {
			copy(s.sprites[i:], s.sprites[i+1:])
			s.sprites[len(s.sprites)-1] = nil
			s.sprites = s.sprites[:len(s.sprites)-1]
			break
		}
	}
	sp.scene = nil
}

// Sprites returns the sprite list in paint order. The returned slice MUST
// NOT be mutated.
func (s *Scene) Sprites() []*Sprite {
	return s.sprites
}

// NewCamera creates a camera with the given viewport and makes it the
// scene's view.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	s.camera = newCamera(viewport)
	return s.camera
}

// Camera returns the scene's camera, or nil when drawing in screen space.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera sets the camera; nil draws in screen space.
func (s *Scene) SetCamera(cam *Camera) {
	s.camera = cam
}

// Clock returns the clock that supplies frame deltas.
func (s *Scene) Clock() *Clock {
	return s.clock
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, the scene
// panics if used from more than one goroutine, warns about oversized
// sprite lists, and logs per-frame timing and draw-call stats to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.owner = 0
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that
// collaborators without a Scene pointer (such as Atlas) can check it cheaply.
var globalDebug bool

// Update ticks the clock and advances the scene by the measured delta
// (or by 1/TPS when FixedStep is set).
func (s *Scene) Update() error {
	dt := s.clock.Tick()
	if s.FixedStep {
		dt = time.Second / time.Duration(ebiten.TPS())
	}
	return s.Step(dt)
}

// Step advances the camera and every sprite's animation by dt, in paint
// order, then runs the update callback.
func (s *Scene) Step(dt time.Duration) error {
	if s.debug {
		debugCheckOwner(s, "Update")
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.camera != nil {
		s.camera.update(dt)
	}

	// Sprites may be removed by their own callbacks; iterate over a stable
	// snapshot of the count and re-check membership.
	for i := 0; i < len(s.sprites); i++ {
		sp := s.sprites[i]
		if sp.Update(dt) {
			s.emit(AnimationFinished, sp)
		}
		if i < len(s.sprites) && s.sprites[i] != sp {
			i--
		}
	}

	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// emit forwards an animation event to the entity store, if any.
func (s *Scene) emit(t AnimationEventType, sp *Sprite) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(AnimationEvent{
		Type:     t,
		SpriteID: sp.ID,
		EntityID: sp.EntityID,
		Name:     sp.Name,
	})
}

// Draw collects the visible sprites in paint order and submits them through
// the batcher onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.debug {
		debugCheckOwner(s, "Draw")
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.view = identityTransform
	var visible Rect
	cull := false
	if s.camera != nil {
		s.view = s.camera.viewMatrix()
		if s.camera.CullEnabled {
			cull = true
			visible = s.camera.VisibleBounds()
		}
	}

	s.drawList = s.drawList[:0]
	for _, sp := range s.sprites {
		if !sp.Visible || sp.Image.Texture == nil {
			continue
		}
		if cull && s.camera.culled(sp, visible) {
			continue
		}
		s.drawList = append(s.drawList, sp)
	}

	if s.debug {
		s.stats.collectTime = time.Since(t0)
		t0 = time.Now()
	}

	s.submit.begin(screen, s.view)
	s.batcher.Draw(s.drawList, &s.submit)
	s.submit.end()

	if s.debug {
		s.stats.submitTime = time.Since(t0)
		s.stats.spriteCount = len(s.sprites)
		s.stats.drawn = len(s.drawList)
		s.stats.batch = s.batcher.Stats()
		s.stats.drawCalls = s.submit.drawCalls
		s.debugLog(s.stats)
	}

	// Drop references to this frame's drawables.
	clear(s.drawList)
	s.drawList = s.drawList[:0]
}

// BatchStats returns the batcher statistics of the most recent Draw.
func (s *Scene) BatchStats() BatchStats {
	return s.batcher.Stats()
}
