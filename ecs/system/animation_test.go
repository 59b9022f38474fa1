package system

import (
	"image"
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

func frames(n int) []component.Sprite {
	out := make([]component.Sprite, n)
	for i := range out {
		out[i] = component.Sprite{Source: image.Rect(i*16, 0, i*16+16, 16)}
	}
	return out
}

func TestMovementAnimationWraps(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	right := frames(3)
	anim := &component.MovementAnimation{Right: right, Left: frames(2)}
	sprite := &component.Sprite{}
	vel := &component.Velocity{Speed: 5}
	add(t, w, e, component.MovementAnimationComponent, anim)
	add(t, w, e, component.SpriteComponent, sprite)
	add(t, w, e, component.VelocityComponent, vel)
	sys := NewAnimationSystem()

	sys.Update(w)
	require.Zero(t, anim.Frame, "idle movers keep their frame")

	vel.Push(component.DirectionRight)
	for _, want := range []int{1, 2, 0, 1} {
		sys.Update(w)
		require.Equal(t, want, anim.Frame)
		require.Equal(t, right[want], *sprite)
	}
}

func TestMovementAnimationSkipsEmptySequence(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.MovementAnimation{Right: frames(2)}
	sprite := &component.Sprite{Sheet: 7}
	add(t, w, e, component.MovementAnimationComponent, anim)
	add(t, w, e, component.SpriteComponent, sprite)
	add(t, w, e, component.VelocityComponent, &component.Velocity{Queue: []component.Direction{component.DirectionUp}})

	NewAnimationSystem().Update(w)
	require.Equal(t, component.Sprite{Sheet: 7}, *sprite)
}

func TestEntityAnimationClampsAtLastFrame(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	chest := frames(4)
	anim := &component.EntityAnimation{Frames: chest}
	sprite := &component.Sprite{}
	it := &component.Interactable{Kind: component.InteractableChest, Max: 1}
	add(t, w, e, component.EntityAnimationComponent, anim)
	add(t, w, e, component.SpriteComponent, sprite)
	add(t, w, e, component.InteractableComponent, it)
	sys := NewAnimationSystem()

	sys.Update(w)
	require.Zero(t, anim.Frame, "untouched chest stays closed")

	it.Interact()
	for _, want := range []int{1, 2, 3, 3, 3} {
		sys.Update(w)
		require.Equal(t, want, anim.Frame)
	}
	require.Equal(t, chest[3], *sprite)
}
