// Package ecs provides ECS adapters for bough.
package ecs

import (
	"time"

	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimationEventType is the Donburi event type for bough animation events.
// Subscribe to this in your ECS systems to learn when a sprite's animation
// finished or was cancelled.
var AnimationEventType = events.NewEventType[bough.AnimationEvent]()

// SpriteData attaches a bough sprite to an entity.
type SpriteData struct {
	Sprite *bough.Sprite
}

// Sprite is the component holding an entity's sprite.
var Sprite = donburi.NewComponentType[SpriteData]()

var spriteQuery = donburi.NewQuery(filter.Contains(Sprite))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Animation events are published to AnimationEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) bough.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bough.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}

// NewSpriteEntity creates an entity carrying sp and records the entity's id
// on the sprite, so that animation events can be routed back to it.
func NewSpriteEntity(world donburi.World, sp *bough.Sprite) donburi.Entity {
	e := world.Create(Sprite)
	sp.EntityID = uint32(e.Id())
	Sprite.SetValue(world.Entry(e), SpriteData{Sprite: sp})
	return e
}

// UpdateAnimations is a system that advances the animation of every sprite
// component by dt. Use it for sprites driven by the world rather than by a
// bough.Scene; sprites that already belong to a scene are skipped so they are
// not advanced twice. Finished events are published to AnimationEventType.
func UpdateAnimations(world donburi.World, dt time.Duration) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		sp := Sprite.Get(entry).Sprite
		if sp == nil || sp.IsDisposed() || sp.InScene() {
			return
		}
		if sp.Update(dt) {
			AnimationEventType.Publish(world, bough.AnimationEvent{
				Type:     bough.AnimationFinished,
				SpriteID: sp.ID,
				EntityID: sp.EntityID,
				Name:     sp.Name,
			})
		}
	})
}
