package system

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// Clock reports the time elapsed since the simulation started.
type Clock func() time.Duration

// WallClock returns a Clock anchored at the moment of the call.
func WallClock() Clock {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

type WalkerConfig struct {
	// Cadence is the sampling period; at most one sample is taken per period.
	Cadence time.Duration
	// Chance is the probability that a sample pushes a new direction.
	Chance float64
	// Speed is set on the walker whenever it is given a direction.
	Speed int
	// MaxQueue bounds the direction queue, keeping the newest entries. Zero
	// leaves it unbounded.
	MaxQueue int
}

// DefaultWalkerConfig mirrors the shipped config.yaml.
func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{Cadence: 50 * time.Millisecond, Chance: 0.9, Speed: 2, MaxQueue: 1}
}

// WalkerSystem gives NPC walkers random directions on a wall-clock cadence.
type WalkerSystem struct {
	cfg    WalkerConfig
	clock  Clock
	rng    *rand.Rand
	bucket int64
}

func NewWalkerSystem(cfg WalkerConfig, clock Clock, seed uint64) *WalkerSystem {
	if cfg.Cadence <= 0 {
		cfg.Cadence = DefaultWalkerConfig().Cadence
	}
	if clock == nil {
		clock = WallClock()
	}
	return &WalkerSystem{
		cfg:    cfg,
		clock:  clock,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bucket: -1,
	}
}

func (s *WalkerSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.NPCWalkerComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.VelocityComponent.ID(),
			component.FacingComponent.ID(),
		},
	}
}

func (s *WalkerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	bucket := int64(s.clock() / s.cfg.Cadence)
	if bucket == s.bucket {
		return
	}
	s.bucket = bucket

	ecs.ForEach2(w, component.NPCWalkerComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, _ *component.NPCWalker, vel *component.Velocity) {
		if s.rng.Float64() >= s.cfg.Chance {
			return
		}
		dir := component.Directions[s.rng.IntN(len(component.Directions))]
		vel.Push(dir)
		vel.Bound(s.cfg.MaxQueue)
		if s.cfg.Speed > 0 {
			vel.Speed = s.cfg.Speed
		}
		if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			if front, ok := vel.Front(); ok {
				facing.Direction = front
			}
		}
	})
}
