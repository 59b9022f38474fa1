package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// MotionSystem moves every entity with a queued direction one step of its
// speed. A move is staged only if the segment from the current to the new
// position misses every obstacle; staged moves are applied in a second pass so
// the outcome does not depend on iteration order.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.VelocityComponent.ID(),
			component.CollisionBoxComponent.ID(),
			component.PlayableComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.PositionComponent.ID(),
			component.FlagForMovementComponent.ID(),
		},
	}
}

type obstacle struct {
	entity ecs.Entity
	rect   common.Rect
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var obstacles []obstacle
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionBoxComponent.Kind(), func(e ecs.Entity, pos *component.Position, box *component.CollisionBox) {
		obstacles = append(obstacles, obstacle{entity: e, rect: box.Rect(*pos)})
	}, ecs.Without(component.PlayableComponent.Kind()))

	ecs.ForEach3(w, component.PositionComponent.Kind(), component.VelocityComponent.Kind(), component.FlagForMovementComponent.Kind(), func(e ecs.Entity, pos *component.Position, vel *component.Velocity, flag *component.FlagForMovement) {
		flag.Moving = false
		dir, ok := vel.Front()
		if !ok {
			return
		}
		target := pos.Step(dir, vel.Speed)
		for _, o := range obstacles {
			if o.entity == e {
				continue
			}
			if o.rect.IntersectsSegment(pos.X, pos.Y, target.X, target.Y) {
				return
			}
		}
		flag.Moving = true
		flag.Target = target
	})

	ecs.ForEach2(w, component.PositionComponent.Kind(), component.FlagForMovementComponent.Kind(), func(_ ecs.Entity, pos *component.Position, flag *component.FlagForMovement) {
		if !flag.Moving {
			return
		}
		*pos = flag.Target
		flag.Moving = false
	})
}
