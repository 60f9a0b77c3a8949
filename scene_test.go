package bough

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordingStore is an EntityStore that keeps every event it receives.
type recordingStore struct {
	events []AnimationEvent
}

func (r *recordingStore) EmitEvent(e AnimationEvent) {
	r.events = append(r.events, e)
}

func (r *recordingStore) count(t AnimationEventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestNewScene(t *testing.T) {
	s := NewScene()
	if len(s.Sprites()) != 0 {
		t.Errorf("new scene has %d sprites", len(s.Sprites()))
	}
	if s.Clock() == nil {
		t.Error("new scene has no clock")
	}
	if s.Camera() != nil {
		t.Error("new scene should draw in screen space")
	}
}

func TestSceneAddKeepsPaintOrder(t *testing.T) {
	s := NewScene()
	a, b, c := newTestSprite(), newTestSprite(), newTestSprite()
	s.Add(a, b)
	s.Add(c)

	got := s.Sprites()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("sprites out of order")
	}
	if !a.InScene() {
		t.Error("added sprite does not report InScene")
	}
}

func TestSceneAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding nil sprite")
		}
	}()
	NewScene().Add(nil)
}

func TestSceneAddMovesBetweenScenes(t *testing.T) {
	s1, s2 := NewScene(), NewScene()
	sp := newTestSprite()
	s1.Add(sp)
	s2.Add(sp)

	if len(s1.Sprites()) != 0 {
		t.Error("sprite still listed in its old scene")
	}
	if len(s2.Sprites()) != 1 || sp.scene != s2 {
		t.Error("sprite not moved to new scene")
	}
}

func TestSceneRemove(t *testing.T) {
	s := NewScene()
	a, b, c := newTestSprite(), newTestSprite(), newTestSprite()
	s.Add(a, b, c)

	s.Remove(b)
	got := s.Sprites()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("remove broke order")
	}
	if b.InScene() {
		t.Error("removed sprite still reports InScene")
	}

	// Removing a foreign or nil sprite is a no-op.
	s.Remove(b)
	s.Remove(nil)
	NewScene().Remove(a)
	if len(s.Sprites()) != 2 || !a.InScene() {
		t.Error("no-op removes changed the scene")
	}
}

func TestSpriteDisposeRemovesFromScene(t *testing.T) {
	s := NewScene()
	sp := newTestSprite()
	sp.Anim = FadeOut(time.Second)
	s.Add(sp)

	sp.Dispose()
	if len(s.Sprites()) != 0 {
		t.Error("disposed sprite still in scene")
	}
	if !sp.IsDisposed() || sp.Animating() {
		t.Error("disposed sprite should be idle")
	}
	if sp.Update(time.Second) {
		t.Error("disposed sprite reported a finished animation")
	}
	sp.Dispose() // second call is a no-op
}

func TestSceneStepEmitsFinishedOnce(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)

	sp := newTestSprite()
	sp.EntityID = 42
	sp.Anim = Wait[*Sprite](10 * time.Millisecond)
	s.Add(sp)

	for i := 0; i < 10; i++ {
		if err := s.Step(5 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}

	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
	e := store.events[0]
	if e.Type != AnimationFinished || e.SpriteID != sp.ID || e.EntityID != 42 || e.Name != "test" {
		t.Errorf("event = %+v", e)
	}
}

func TestSceneStepWithoutStore(t *testing.T) {
	s := NewScene()
	sp := newTestSprite()
	sp.Anim = Wait[*Sprite](0)
	s.Add(sp)
	if err := s.Step(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if sp.Animating() {
		t.Error("animation should have finished")
	}
}

func TestSetAnimEmitsCancelled(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)

	sp := newTestSprite()
	s.Add(sp)

	sp.SetAnim(FadeIn(time.Second)) // replaces idle: no event
	sp.SetAnim(FadeOut(time.Second))
	if got := store.count(AnimationCancelled); got != 1 {
		t.Errorf("cancelled events = %d, want 1", got)
	}

	loose := newTestSprite()
	loose.SetAnim(FadeIn(time.Second))
	loose.SetAnim(FadeOut(time.Second))
	if got := store.count(AnimationCancelled); got != 1 {
		t.Errorf("sprite outside a scene emitted events")
	}
}

func TestSceneStepRunsUpdateFunc(t *testing.T) {
	s := NewScene()
	errStop := errors.New("stop")
	calls := 0
	s.SetUpdateFunc(func() error {
		calls++
		if calls == 2 {
			return errStop
		}
		return nil
	})

	if err := s.Step(time.Millisecond); err != nil {
		t.Fatalf("first step: %v", err)
	}
	if err := s.Step(time.Millisecond); !errors.Is(err, errStop) {
		t.Fatalf("second step err = %v, want errStop", err)
	}
}

func TestSceneStepSurvivesSelfRemoval(t *testing.T) {
	s := NewScene()
	var ticked [3]int
	sprites := make([]*Sprite, 3)
	for i := range sprites {
		sp := newTestSprite()
		sp.OnUpdate = func(time.Duration) { ticked[i]++ }
		sprites[i] = sp
	}
	sprites[0].OnUpdate = func(time.Duration) {
		ticked[0]++
		s.Remove(sprites[0])
	}
	s.Add(sprites...)

	if err := s.Step(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if ticked != [3]int{1, 1, 1} {
		t.Errorf("ticks = %v, want each sprite once", ticked)
	}
	if len(s.Sprites()) != 2 {
		t.Errorf("sprites = %d, want 2", len(s.Sprites()))
	}
}

func TestSceneFixedStep(t *testing.T) {
	s := NewScene()
	s.FixedStep = true
	var got time.Duration
	sp := newTestSprite()
	sp.OnUpdate = func(dt time.Duration) { got = dt }
	s.Add(sp)

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if want := time.Second / time.Duration(ebiten.TPS()); got != want {
		t.Errorf("dt = %v, want %v", got, want)
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	s.SetEntityStore(nil) // should not panic
	if s.store != nil {
		t.Error("store should be nil")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

// --- Draw ---

func TestSceneDrawBatchesSameTexture(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(16, 16))
	s := NewScene()
	for i := 0; i < 3; i++ {
		sp := NewSprite("s", tex.Full(), Vec2{X: 16, Y: 16})
		sp.SetPosition(float64(i)*20, 0)
		s.Add(sp)
	}

	s.Draw(ebiten.NewImage(64, 64))
	st := s.BatchStats()
	if st.Drawables != 3 || st.Runs != 1 || st.Batches != 1 || st.Singles != 0 {
		t.Errorf("stats = %+v, want one batched run of 3", st)
	}
	if s.submit.drawCalls != 1 {
		t.Errorf("draw calls = %d, want 1", s.submit.drawCalls)
	}
}

func TestSceneDrawBreaksRunsOnTextureChange(t *testing.T) {
	x := NewTexture(ebiten.NewImage(8, 8))
	y := NewTexture(ebiten.NewImage(8, 8))
	s := NewScene()
	for _, tex := range []*Texture{x, x, y, x} {
		s.Add(NewSprite("s", tex.Full(), Vec2{X: 8, Y: 8}))
	}

	s.Draw(ebiten.NewImage(32, 32))
	st := s.BatchStats()
	if st.Runs != 3 || st.Batches != 1 || st.Singles != 2 {
		t.Errorf("stats = %+v, want 3 runs (1 batched, 2 single)", st)
	}
	if s.submit.drawCalls != 3 {
		t.Errorf("draw calls = %d, want 3", s.submit.drawCalls)
	}
}

func TestSceneDrawSkipsInvisibleAndUntextured(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(8, 8))
	s := NewScene()
	visible := NewSprite("v", tex.Full(), Vec2{X: 8, Y: 8})
	hidden := NewSprite("h", tex.Full(), Vec2{X: 8, Y: 8})
	hidden.Visible = false
	s.Add(visible, hidden, newTestSprite())

	s.Draw(ebiten.NewImage(32, 32))
	if got := s.BatchStats().Drawables; got != 1 {
		t.Errorf("drawables = %d, want 1", got)
	}
	for _, sp := range s.drawList[:cap(s.drawList)] {
		if sp != nil {
			t.Fatal("draw list retains sprites after Draw")
		}
	}
}

func TestSceneDrawColorSplitsRuns(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(8, 8))
	s := NewScene()
	a := NewSprite("a", tex.Full(), Vec2{X: 8, Y: 8})
	b := NewSprite("b", tex.Full(), Vec2{X: 8, Y: 8})
	b.Color = Color{1, 0, 0, 1}
	s.Add(a, b)

	s.Draw(ebiten.NewImage(32, 32))
	if got := s.BatchStats().Runs; got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
}
