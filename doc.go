// Package bough is a small 2D animation framework for [Ebitengine] built
// around animation state trees.
//
// Every animated object carries one tree of [Anim] nodes. A node is Idle, a
// Leaf (a timer plus a function that mutates the target), a Sequence, a
// Concurrent group, or a Repeat. Each frame the driver advances the tree by
// the frame delta and the tree rewrites itself as its parts finish, until the
// whole thing reduces to Idle.
//
// # Quick start
//
//	scene := bough.NewScene()
//	box := bough.NewRect("box", bough.Vec2{X: 40, Y: 40}, bough.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.Anim = bough.Repeat(bough.Sequence(
//		bough.Move(time.Second, bough.Vec2{X: 100, Y: 100}, bough.Vec2{X: 500, Y: 100}),
//		bough.Concurrent(bough.Rotate(time.Second), bough.FadeOut(time.Second)),
//		bough.FadeIn(500*time.Millisecond),
//	))
//	scene.Add(box)
//	bough.Run(scene, bough.RunConfig{Title: "Box", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Animation trees
//
// Trees are generic over their target, so [Anim] works on any mutable type;
// [Sprite] is the built-in one. Build trees with [Sequence], [Concurrent],
// [Repeat] and [RepeatN], and leaves with [Leaf], [Func], [Call], [Wait] and
// [Tween], or the sprite leaves [Rotate], [Spin], [Fade], [Move], [Curve] and
// friends. Eased leaves use [gween] easing functions.
//
// Replacing a tree cancels it. Nothing else can interrupt a running tree.
//
// # Batching
//
// [Scene.Draw] hands the visible sprites, in paint order, to a [Batcher].
// Neighbouring sprites with the same texture and color are merged into one
// DrawTriangles32 call; paint order is never changed to improve batching.
//
// # ECS
//
// The bough/ecs module bridges animation events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bough
