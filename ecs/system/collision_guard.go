package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"go.uber.org/zap"
)

// CollisionGuardSystem stops keyboard-controlled movers whose box overlaps a
// static or NPC obstacle. Only the speed is zeroed; the direction queue is
// kept so the next Move resumes from there.
type CollisionGuardSystem struct {
	log *zap.Logger
}

func NewCollisionGuardSystem(log *zap.Logger) *CollisionGuardSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionGuardSystem{log: log}
}

func (s *CollisionGuardSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.PositionComponent.ID(),
			component.CollisionBoxComponent.ID(),
			component.KeyboardControlledComponent.ID(),
			component.CollectibleComponent.ID(),
			component.PlayableComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.VelocityComponent.ID(),
		},
	}
}

func (s *CollisionGuardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var obstacles []common.Rect
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionBoxComponent.Kind(), func(_ ecs.Entity, pos *component.Position, box *component.CollisionBox) {
		obstacles = append(obstacles, box.Rect(*pos))
	},
		ecs.Without(component.KeyboardControlledComponent.Kind()),
		ecs.Without(component.PlayableComponent.Kind()),
		ecs.Without(component.CollectibleComponent.Kind()),
	)
	if len(obstacles) == 0 {
		return
	}

	ecs.ForEach3(w, component.PositionComponent.Kind(), component.CollisionBoxComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, pos *component.Position, box *component.CollisionBox, vel *component.Velocity) {
		actor := box.Rect(*pos)
		for _, o := range obstacles {
			if !actor.Overlaps(o) {
				continue
			}
			if vel.Speed != 0 {
				s.log.Debug("mover overlaps obstacle, stopping", zap.Stringer("entity", e))
				w.Events().Push(ecs.Event{Type: EventMoverBlocked, Entity: e})
			}
			vel.Speed = 0
			return
		}
	}, ecs.With(component.KeyboardControlledComponent.Kind()))
}
