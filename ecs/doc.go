// Package ecs provides ECS adapters for bough's animation events.
//
// The primary adapter is [NewDonburiStore], which bridges bough animation
// events (finished, cancelled) into a [Donburi] world as typed events.
// Subscribe to [AnimationEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// Sprites that live in the world instead of a scene can be attached with
// [NewSpriteEntity] and advanced by the [UpdateAnimations] system.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
