package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// AnimationSystem advances movement animations from the active direction and
// one-shot entity animations from the interaction counter.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.VelocityComponent.ID(),
			component.InteractableComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.MovementAnimationComponent.ID(),
			component.EntityAnimationComponent.ID(),
			component.SpriteComponent.ID(),
		},
	}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.MovementAnimationComponent.Kind(), component.SpriteComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, anim *component.MovementAnimation, sprite *component.Sprite, vel *component.Velocity) {
		dir, ok := vel.Front()
		if !ok {
			return
		}
		frames := anim.Frames(dir)
		if len(frames) == 0 {
			return
		}
		anim.Frame = (anim.Frame + 1) % len(frames)
		*sprite = frames[anim.Frame]
	})

	ecs.ForEach3(w, component.EntityAnimationComponent.Kind(), component.SpriteComponent.Kind(), component.InteractableComponent.Kind(), func(_ ecs.Entity, anim *component.EntityAnimation, sprite *component.Sprite, it *component.Interactable) {
		if it.Count <= 0 || len(anim.Frames) == 0 {
			return
		}
		if anim.Frame < len(anim.Frames)-1 {
			anim.Frame++
		}
		*sprite = anim.Frames[anim.Frame]
	})
}
