package system

import (
	"testing"
	"time"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Duration }

func (c *fakeClock) elapsed() time.Duration { return c.now }

func spawnWalker(t *testing.T, w *ecs.World) (ecs.Entity, *component.Velocity, *component.Facing) {
	t.Helper()
	e := ecs.CreateEntity(w)
	vel := &component.Velocity{}
	facing := &component.Facing{Direction: component.DirectionDown}
	add(t, w, e, component.NPCWalkerComponent, &component.NPCWalker{})
	add(t, w, e, component.VelocityComponent, vel)
	add(t, w, e, component.FacingComponent, facing)
	return e, vel, facing
}

func TestWalkerSamplesOncePerCadence(t *testing.T) {
	w := ecs.NewWorld()
	_, vel, facing := spawnWalker(t, w)
	clock := &fakeClock{}
	cfg := WalkerConfig{Cadence: 50 * time.Millisecond, Chance: 1, Speed: 2, MaxQueue: 0}
	sys := NewWalkerSystem(cfg, clock.elapsed, 42)

	sys.Update(w)
	require.Len(t, vel.Queue, 1)
	require.Equal(t, 2, vel.Speed)
	require.Equal(t, vel.Queue[0], facing.Direction)

	clock.now = 49 * time.Millisecond
	sys.Update(w)
	require.Len(t, vel.Queue, 1, "same cadence bucket")

	clock.now = 50 * time.Millisecond
	sys.Update(w)
	require.Len(t, vel.Queue, 2)

	clock.now = 260 * time.Millisecond
	sys.Update(w)
	require.Len(t, vel.Queue, 3, "skipped buckets are not replayed")
}

func TestWalkerQueueBoundKeepsNewest(t *testing.T) {
	w := ecs.NewWorld()
	_, vel, _ := spawnWalker(t, w)
	clock := &fakeClock{}
	cfg := DefaultWalkerConfig()
	cfg.Chance = 1
	sys := NewWalkerSystem(cfg, clock.elapsed, 7)

	for i := 0; i < 20; i++ {
		clock.now = time.Duration(i) * cfg.Cadence
		sys.Update(w)
		require.Len(t, vel.Queue, 1)
	}
}

func TestWalkerChanceZeroNeverMoves(t *testing.T) {
	w := ecs.NewWorld()
	_, vel, facing := spawnWalker(t, w)
	clock := &fakeClock{}
	sys := NewWalkerSystem(WalkerConfig{Cadence: time.Millisecond, Chance: 0, Speed: 2}, clock.elapsed, 1)

	for i := 0; i < 50; i++ {
		clock.now = time.Duration(i) * time.Millisecond
		sys.Update(w)
	}
	require.Empty(t, vel.Queue)
	require.Zero(t, vel.Speed)
	require.Equal(t, component.DirectionDown, facing.Direction)
}

func TestWalkerSeedIsDeterministic(t *testing.T) {
	run := func() []component.Direction {
		w := ecs.NewWorld()
		_, vel, _ := spawnWalker(t, w)
		clock := &fakeClock{}
		sys := NewWalkerSystem(WalkerConfig{Cadence: time.Millisecond, Chance: 0.5, Speed: 1}, clock.elapsed, 99)
		for i := 0; i < 64; i++ {
			clock.now = time.Duration(i) * time.Millisecond
			sys.Update(w)
		}
		return vel.Queue
	}
	first := run()
	require.NotEmpty(t, first)
	require.Equal(t, first, run())
}

func TestWalkerIgnoresPlayers(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnPlayer(t, w, 0, 0)
	NewWalkerSystem(WalkerConfig{Cadence: time.Millisecond, Chance: 1, Speed: 2}, (&fakeClock{}).elapsed, 3).Update(w)
	require.Empty(t, velocity(t, w, p).Queue)
}
