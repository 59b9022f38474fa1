// Package game wires the world, the system pipeline and the session into a
// simulation that advances one tick per input frame.
package game

import (
	"fmt"

	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/session"
	"go.uber.org/zap"
)

// Deps are the collaborators a simulation reads from. Zero fields fall back
// to the embedded prefabs and the wall clock.
type Deps struct {
	Dialogue system.DialogueSource
	Scripts  system.ScriptSource
	Clock    system.Clock
	Log      *zap.Logger
}

type Simulation struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	session   *session.Session
	feed      *input.Buffer
	builder   *prefabs.Builder
	effects   *system.EffectRunner
	log       *zap.Logger

	ticks uint64
}

// New builds the tick pipeline described by cfg and spawns its starting
// entities.
func New(cfg prefabs.Config, deps Deps) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	scripts := deps.Dialogue
	if scripts == nil {
		scripts = dialogue.NewLoader(prefabs.DialogueFS(), log.Named("dialogue"))
	}
	src := deps.Scripts
	if src == nil {
		src = prefabs.Scripts
	}
	clock := deps.Clock
	if clock == nil {
		clock = system.WallClock()
	}

	s := &Simulation{
		world:   ecs.NewWorld(),
		session: session.New(log.Named("session")),
		feed:    &input.Buffer{},
		builder: prefabs.NewBuilder(cfg.Seed),
		effects: system.NewEffectRunner(src),
		log:     log,
	}

	interactor := system.NewInteractor(s.session, scripts, s.effects, log.Named("interaction"))

	var guard ecs.System
	if cfg.CollisionGuard {
		guard = system.NewCollisionGuardSystem(log.Named("guard"))
	}

	s.scheduler = ecs.NewScheduler(system.NewInputSystem(s.feed, s.session, interactor, cfg.PlayerSpeed, log.Named("input")))
	s.scheduler.Parallel = cfg.Parallel
	s.scheduler.AddStage(system.NewMotionSystem(), guard)
	s.scheduler.AddStage(
		system.NewAnimationSystem(),
		system.NewWalkerSystem(cfg.WalkerConfig(), clock, cfg.Seed),
		system.NewCollectSystem(log.Named("collect")),
		system.NewInteractionZoneSystem(),
	)

	for _, spawn := range cfg.Spawns {
		if _, err := s.Spawn(spawn.Prefab, spawn.X, spawn.Y); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}
	return s, nil
}

// Spawn places a prefab in the world between ticks.
func (s *Simulation) Spawn(prefab string, x, y int) (ecs.Entity, error) {
	e, err := s.builder.Spawn(s.world, prefab, x, y)
	if err != nil {
		return 0, err
	}
	s.log.Debug("spawned", zap.String("prefab", prefab), zap.Stringer("entity", e), zap.Int("x", x), zap.Int("y", y))
	return e, nil
}

// Tick runs one simulation step for frame, applies deferred deletions and
// returns the events the systems raised.
func (s *Simulation) Tick(frame input.Frame) []ecs.Event {
	s.feed.Load(frame)
	s.scheduler.Update(s.world)
	removed := s.world.Maintain()
	events := s.world.Events().Drain()
	s.ticks++

	if removed > 0 || len(events) > 0 {
		s.log.Debug("tick",
			zap.Uint64("tick", s.ticks),
			zap.Int("removed", removed),
			zap.Int("events", len(events)),
			zap.Stringer("state", s.session.State()),
		)
	}
	return events
}

func (s *Simulation) World() *ecs.World             { return s.world }
func (s *Simulation) Session() *session.Session     { return s.session }
func (s *Simulation) Effects() *system.EffectRunner { return s.effects }
func (s *Simulation) Builder() *prefabs.Builder     { return s.builder }
func (s *Simulation) Ticks() uint64                 { return s.ticks }
