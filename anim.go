package bough

import "time"

// Kind distinguishes the variants of an animation node.
type Kind uint8

const (
	KindIdle       Kind = iota // finished, or never started; ticks are no-ops
	KindLeaf                   // a timer plus a function that mutates the target
	KindSequence               // children run one at a time, in order
	KindConcurrent             // children all advance every tick, in order
	KindRepeat                 // a template replayed a bounded or unbounded number of times
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	case KindConcurrent:
		return "concurrent"
	case KindRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// LeafFunc mutates the target for one tick. It reads the already-advanced
// timer and decides whether the leaf remains, finishes, or turns into a
// different node. A LeafFunc must not modify the animation tree it belongs to.
type LeafFunc[T any] func(target T, timer *Timer) Transition[T]

// Anim is one node of an animation state tree over a mutable target type T,
// usually a pointer such as *Sprite. A single flat struct carries every
// variant; the zero value is Idle.
//
// Trees are owned by exactly one target. The builders clone the nodes they
// are given, but assigning an Anim shares its slices, so use Clone to
// duplicate one by hand.
type Anim[T any] struct {
	kind Kind

	// Leaf
	timer Timer
	fn    LeafFunc[T]

	// Sequence (stored reversed, head is the last element) and Concurrent
	list []Anim[T]

	// Repeat
	bounded   bool
	remaining int
	template  *Anim[T] // immutable, shared between clones
	current   *Anim[T]
}

// Transition is the result of advancing a node: either remain as is, or be
// replaced by another node.
type Transition[T any] struct {
	next   Anim[T]
	become bool
}

// Remain leaves the advanced node in place.
func Remain[T any]() Transition[T] {
	return Transition[T]{}
}

// Become replaces the advanced node with next.
func Become[T any](next Anim[T]) Transition[T] {
	return Transition[T]{next: next, become: true}
}

// Finish replaces the advanced node with Idle.
func Finish[T any]() Transition[T] {
	return Transition[T]{become: true}
}

// Replacement returns the node to become and true, or false for Remain.
func (t Transition[T]) Replacement() (Anim[T], bool) {
	return t.next, t.become
}

// IsRemain reports whether the transition leaves the node in place.
func (t Transition[T]) IsRemain() bool {
	return !t.become
}

// Idle returns an idle node.
func Idle[T any]() Anim[T] {
	return Anim[T]{}
}

// Kind returns the node's variant.
func (a *Anim[T]) Kind() Kind {
	return a.kind
}

// IsIdle reports whether the node has finished (or was never started).
func (a *Anim[T]) IsIdle() bool {
	return a.kind == KindIdle
}

// Timer returns a copy of a leaf's timer. It is the zero Timer for other kinds.
func (a *Anim[T]) Timer() Timer {
	return a.timer
}

// Len returns the number of children still held by a Sequence or Concurrent
// node, including idle ones not yet popped.
func (a *Anim[T]) Len() int {
	return len(a.list)
}

// Remaining returns the cycles left on a bounded Repeat. ok is false for
// unbounded repeats and for other kinds.
func (a *Anim[T]) Remaining() (n int, ok bool) {
	if a.kind != KindRepeat || !a.bounded {
		return 0, false
	}
	return a.remaining, true
}

// Advance moves the node forward by delta, mutating target through its
// leaves, and reports whether the caller must replace the node. Composite
// nodes write their children's replacements back themselves. A zero delta
// is a no-op: no leaf runs and no child starts.
func (a *Anim[T]) Advance(target T, delta time.Duration) Transition[T] {
	if delta == 0 {
		return Remain[T]()
	}
	switch a.kind {
	case KindLeaf:
		a.timer.Advance(delta)
		return a.fn(target, &a.timer)
	case KindSequence:
		return a.advanceSequence(target, delta)
	case KindConcurrent:
		return a.advanceConcurrent(target, delta)
	case KindRepeat:
		return a.advanceRepeat(target, delta)
	}
	return Remain[T]()
}

// Tick advances the node and applies any replacement in place. It returns
// true while the node is still active.
func (a *Anim[T]) Tick(target T, delta time.Duration) bool {
	if next, ok := a.Advance(target, delta).Replacement(); ok {
		*a = next
	}
	return a.kind != KindIdle
}

func (a *Anim[T]) advanceSequence(target T, delta time.Duration) Transition[T] {
	a.popIdleHeads()
	if len(a.list) == 0 {
		return Finish[T]()
	}
	a.list[len(a.list)-1].Tick(target, delta)
	a.popIdleHeads()
	if len(a.list) == 0 {
		return Finish[T]()
	}
	return Remain[T]()
}

// popIdleHeads discards finished nodes from the head of a sequence.
func (a *Anim[T]) popIdleHeads() {
	for n := len(a.list); n > 0 && a.list[n-1].kind == KindIdle; n = len(a.list) {
		a.list[n-1] = Anim[T]{}
		a.list = a.list[:n-1]
	}
}

func (a *Anim[T]) advanceConcurrent(target T, delta time.Duration) Transition[T] {
	allIdle := true
	for i := range a.list {
		if a.list[i].Tick(target, delta) {
			allIdle = false
		}
	}
	if allIdle {
		return Finish[T]()
	}
	return Remain[T]()
}

func (a *Anim[T]) advanceRepeat(target T, delta time.Duration) Transition[T] {
	if a.bounded && a.remaining <= 0 {
		return Finish[T]()
	}
	if a.template == nil || a.template.kind == KindIdle {
		return Finish[T]()
	}
	if a.current.kind == KindIdle {
		*a.current = a.template.Clone()
	}
	if a.current.Tick(target, delta) {
		return Remain[T]()
	}
	if a.bounded {
		a.remaining--
		if a.remaining == 0 {
			return Finish[T]()
		}
	}
	return Remain[T]()
}

// Clone duplicates the tree structure. Leaf functions and their captured
// parameters are shared, as is a Repeat's immutable template; timers and
// progress are copied.
func (a Anim[T]) Clone() Anim[T] {
	c := a
	if a.list != nil {
		c.list = make([]Anim[T], len(a.list))
		for i := range a.list {
			c.list[i] = a.list[i].Clone()
		}
	}
	if a.current != nil {
		cur := a.current.Clone()
		c.current = &cur
	}
	return c
}
