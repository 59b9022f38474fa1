package system

import (
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestCollisionGuard(t *testing.T) {
	cases := []struct {
		name        string
		setup       func(t *testing.T, w *ecs.World)
		wantSpeed   int
		wantBlocked bool
	}{
		{
			name:        "overlapping_obstacle_zeroes_speed",
			setup:       func(t *testing.T, w *ecs.World) { spawnBox(t, w, 5, 5, 24, 24) },
			wantSpeed:   0,
			wantBlocked: true,
		},
		{
			name:      "touching_edges_do_not_count",
			setup:     func(t *testing.T, w *ecs.World) { spawnBox(t, w, 25, 0, 24, 24) },
			wantSpeed: 5,
		},
		{
			name: "collectibles_are_ignored",
			setup: func(t *testing.T, w *ecs.World) {
				e := spawnBox(t, w, 0, 0, 16, 16)
				add(t, w, e, component.CollectibleComponent, &component.Collectible{})
			},
			wantSpeed: 5,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := spawnPlayer(t, w, 0, 0)
			vel := velocity(t, w, p)
			vel.Speed = 5
			vel.Push(component.DirectionRight)
			c.setup(t, w)

			NewCollisionGuardSystem(nil).Update(w)

			require.Equal(t, c.wantSpeed, vel.Speed)
			require.Equal(t, []component.Direction{component.DirectionRight}, vel.Queue, "queue untouched")
			events := eventTypes(w.Events().Drain())
			if c.wantBlocked {
				require.Equal(t, []string{EventMoverBlocked}, events)
			} else {
				require.Empty(t, events)
			}
		})
	}
}

func TestCollisionGuardReportsOnlyOnce(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnPlayer(t, w, 0, 0)
	velocity(t, w, p).Speed = 5
	spawnBox(t, w, 0, 0, 24, 24)
	guard := NewCollisionGuardSystem(nil)

	guard.Update(w)
	guard.Update(w)
	require.Len(t, w.Events().Drain(), 1)
}
