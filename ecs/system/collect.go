package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"go.uber.org/zap"
)

// CollectSystem removes collectibles whose box overlaps a player's box. The
// entity is marked for deletion and disappears when the tick is maintained.
type CollectSystem struct {
	log *zap.Logger
}

func NewCollectSystem(log *zap.Logger) *CollectSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollectSystem{log: log}
}

func (s *CollectSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.PositionComponent.ID(),
			component.CollisionBoxComponent.ID(),
			component.PlayableComponent.ID(),
			component.CollectibleComponent.ID(),
		},
	}
}

func (s *CollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var players []common.Rect
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionBoxComponent.Kind(), func(_ ecs.Entity, pos *component.Position, box *component.CollisionBox) {
		players = append(players, box.Rect(*pos))
	}, ecs.With(component.PlayableComponent.Kind()))
	if len(players) == 0 {
		return
	}

	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionBoxComponent.Kind(), func(e ecs.Entity, pos *component.Position, box *component.CollisionBox) {
		if w.MarkedForDeletion(e) {
			return
		}
		item := box.Rect(*pos)
		for _, p := range players {
			if p.Overlaps(item) {
				s.log.Debug("collected", zap.Stringer("entity", e))
				w.MarkForDeletion(e)
				w.Events().Push(ecs.Event{Type: EventCollected, Entity: e})
				return
			}
		}
	}, ecs.With(component.CollectibleComponent.Kind()))
}
