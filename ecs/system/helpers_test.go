package system

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

func add[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, h.Kind(), v))
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	add(t, w, e, component.KeyboardControlledComponent, &component.KeyboardControlled{})
	add(t, w, e, component.PlayableComponent, &component.Playable{})
	add(t, w, e, component.PositionComponent, &component.Position{X: x, Y: y})
	add(t, w, e, component.VelocityComponent, &component.Velocity{})
	add(t, w, e, component.CollisionBoxComponent, &component.CollisionBox{Width: 26, Height: 36})
	add(t, w, e, component.FlagForMovementComponent, &component.FlagForMovement{})
	add(t, w, e, component.FacingComponent, &component.Facing{Direction: component.DirectionDown})
	add(t, w, e, component.InteractionZoneComponent, &component.InteractionZone{Rect: common.Rect{W: 30, H: 10}})
	return e
}

func spawnBox(t *testing.T, w *ecs.World, x, y int, width, height uint32) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	add(t, w, e, component.UnplayableComponent, &component.Unplayable{})
	add(t, w, e, component.PositionComponent, &component.Position{X: x, Y: y})
	add(t, w, e, component.CollisionBoxComponent, &component.CollisionBox{Width: width, Height: height})
	return e
}

func position(t *testing.T, w *ecs.World, e ecs.Entity) component.Position {
	t.Helper()
	p, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	require.True(t, ok)
	return *p
}

func velocity(t *testing.T, w *ecs.World, e ecs.Entity) *component.Velocity {
	t.Helper()
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	require.True(t, ok)
	return v
}

func eventTypes(events []ecs.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
