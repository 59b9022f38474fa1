package system

import (
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

func spawnFruit(t *testing.T, w *ecs.World, x, y int) ecs.Entity {
	t.Helper()
	e := spawnBox(t, w, x, y, 16, 16)
	add(t, w, e, component.CollectibleComponent, &component.Collectible{})
	return e
}

func TestCollectRemovesOverlappingCollectible(t *testing.T) {
	w := ecs.NewWorld()
	spawnPlayer(t, w, 0, 0)
	near := spawnFruit(t, w, 10, 10)
	far := spawnFruit(t, w, 200, 200)
	sys := NewCollectSystem(nil)

	sys.Update(w)
	require.True(t, w.MarkedForDeletion(near))
	require.True(t, ecs.IsAlive(w, near), "removal waits for maintenance")
	require.Equal(t, []string{EventCollected}, eventTypes(w.Events().Drain()))

	require.Equal(t, 1, w.Maintain())
	require.False(t, ecs.IsAlive(w, near))
	require.True(t, ecs.IsAlive(w, far))

	sys.Update(w)
	require.Empty(t, w.Events().Drain(), "collected once")
	n := 0
	ecs.ForEach(w, component.CollectibleComponent.Kind(), func(ecs.Entity, *component.Collectible) { n++ })
	require.Equal(t, 1, n)
}

func TestCollectIgnoresNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	spawnBox(t, w, 0, 0, 40, 40)
	fruit := spawnFruit(t, w, 0, 0)

	NewCollectSystem(nil).Update(w)
	require.False(t, w.MarkedForDeletion(fruit))
}
