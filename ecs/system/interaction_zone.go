package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// InteractionZoneSystem keeps each interaction zone just outside its owner's
// collision box on the facing side. The zone is flipped when facing moves
// between the vertical and horizontal axes so its long side stays
// perpendicular to the facing direction.
type InteractionZoneSystem struct{}

func NewInteractionZoneSystem() *InteractionZoneSystem {
	return &InteractionZoneSystem{}
}

func (s *InteractionZoneSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.PositionComponent.ID(),
			component.FacingComponent.ID(),
			component.CollisionBoxComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.InteractionZoneComponent.ID(),
		},
	}
}

func (s *InteractionZoneSystem) Update(w *ecs.World) {
	ecs.ForEach4(w, component.PositionComponent.Kind(), component.InteractionZoneComponent.Kind(), component.FacingComponent.Kind(), component.CollisionBoxComponent.Kind(), func(_ ecs.Entity, pos *component.Position, zone *component.InteractionZone, facing *component.Facing, box *component.CollisionBox) {
		vertical := facing.Direction.Vertical()
		if vertical == zone.Flipped {
			zone.Flip()
		}

		var reach int
		if vertical {
			reach = (int(box.Height) + int(zone.Rect.H)) / 2
		} else {
			reach = (int(box.Width) + int(zone.Rect.W)) / 2
		}
		dx, dy := facing.Direction.Delta(reach)
		zone.Rect.CenterOn(pos.X+dx, pos.Y+dy)
	})
}
