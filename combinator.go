package bough

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Sequence runs nodes one after another, in the order given. Each node
// starts on the tick after the previous one finished; the sequence finishes
// on the same tick as its last node. The nodes are cloned, so one value may
// appear several times.
func Sequence[T any](nodes ...Anim[T]) Anim[T] {
	list := make([]Anim[T], len(nodes))
	for i, n := range nodes {
		list[len(nodes)-1-i] = n.Clone()
	}
	return Anim[T]{kind: KindSequence, list: list}
}

// Concurrent advances every node on every tick, in the order given, and
// finishes once all of them are idle. When two nodes write the same target
// field in one tick, the later one in the list wins.
func Concurrent[T any](nodes ...Anim[T]) Anim[T] {
	list := make([]Anim[T], len(nodes))
	for i, n := range nodes {
		list[i] = n.Clone()
	}
	return Anim[T]{kind: KindConcurrent, list: list}
}

// Repeat replays node forever. Each cycle restarts from a pristine copy of
// node on the tick after the previous cycle finished.
func Repeat[T any](node Anim[T]) Anim[T] {
	return newRepeat(false, 0, node)
}

// RepeatN replays node n times and then finishes. n <= 0 is already finished:
// the first tick completes without ever running node.
func RepeatN[T any](n int, node Anim[T]) Anim[T] {
	if n < 0 {
		n = 0
	}
	return newRepeat(true, n, node)
}

func newRepeat[T any](bounded bool, n int, node Anim[T]) Anim[T] {
	template := node.Clone()
	current := node.Clone()
	return Anim[T]{
		kind:      KindRepeat,
		bounded:   bounded,
		remaining: n,
		template:  &template,
		current:   &current,
	}
}

// Leaf builds a leaf node with a timer of the given duration. A nil fn
// yields Idle.
func Leaf[T any](d time.Duration, fn LeafFunc[T]) Anim[T] {
	if fn == nil {
		return Idle[T]()
	}
	return Anim[T]{kind: KindLeaf, timer: NewTimer(d), fn: fn}
}

// Func builds a leaf with an empty timer, for effects that run every frame
// and decide on their own when to stop. A nil fn yields Idle.
func Func[T any](fn LeafFunc[T]) Anim[T] {
	if fn == nil {
		return Idle[T]()
	}
	return Anim[T]{kind: KindLeaf, timer: EmptyTimer(), fn: fn}
}

// Call builds an instantaneous leaf that invokes fn once and finishes.
func Call[T any](fn func(T)) Anim[T] {
	if fn == nil {
		return Idle[T]()
	}
	return Func(func(target T, _ *Timer) Transition[T] {
		fn(target)
		return Finish[T]()
	})
}

// Wait builds a leaf that does nothing for d and then finishes. Useful as a
// delay inside a Sequence.
func Wait[T any](d time.Duration) Anim[T] {
	return Leaf(d, func(_ T, timer *Timer) Transition[T] {
		if timer.Finished() {
			return Finish[T]()
		}
		return Remain[T]()
	})
}

// Tween builds a leaf that moves a scalar from `from` to `to` over d using a
// gween easing function, passing each value to apply. The final tick applies
// exactly `to`.
func Tween[T any](d time.Duration, from, to float64, fn ease.TweenFunc, apply func(T, float64)) Anim[T] {
	if apply == nil {
		return Idle[T]()
	}
	if fn == nil {
		fn = ease.Linear
	}
	change := to - from
	return Leaf(d, func(target T, timer *Timer) Transition[T] {
		if timer.Total <= 0 || timer.Finished() {
			apply(target, to)
			return Finish[T]()
		}
		v := fn(float32(timer.Elapsed.Seconds()), float32(from), float32(change), float32(timer.Total.Seconds()))
		apply(target, float64(v))
		return Remain[T]()
	})
}
