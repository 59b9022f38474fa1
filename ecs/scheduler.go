package ecs

import (
	"slices"

	"github.com/milk9111/overworld/ecs/component"
	"golang.org/x/sync/errgroup"
)

// Access lists the component stores a system reads and writes. Exclusive
// marks use of process-wide state that must never be touched by two systems
// at once.
type Access struct {
	Reads     []component.ComponentID
	Writes    []component.ComponentID
	Exclusive bool
}

// AccessDeclarer is implemented by systems that can share a parallel batch.
type AccessDeclarer interface {
	Access() Access
}

func (a Access) conflicts(b Access) bool {
	if a.Exclusive && b.Exclusive {
		return true
	}
	for _, id := range a.Writes {
		if slices.Contains(b.Writes, id) || slices.Contains(b.Reads, id) {
			return true
		}
	}
	for _, id := range b.Writes {
		if slices.Contains(a.Reads, id) {
			return true
		}
	}
	return false
}

// Scheduler runs ordered stages of systems. Systems within a stage have no
// ordering requirement between them; when Parallel is set, a stage is split in
// order into batches of non-conflicting systems and each batch runs
// concurrently.
type Scheduler struct {
	Parallel bool

	stages [][]System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends a single-system stage.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.stages = append(s.stages, []System{system})
}

// AddStage appends a stage of mutually orderable systems.
func (s *Scheduler) AddStage(systems ...System) {
	stage := make([]System, 0, len(systems))
	for _, system := range systems {
		if system != nil {
			stage = append(stage, system)
		}
	}
	if len(stage) > 0 {
		s.stages = append(s.stages, stage)
	}
}

// Update runs every stage once, in order.
func (s *Scheduler) Update(w *World) {
	for _, stage := range s.stages {
		if !s.Parallel || len(stage) == 1 {
			for _, system := range stage {
				system.Update(w)
			}
			continue
		}
		for _, batch := range Batches(stage) {
			runBatch(w, batch)
		}
	}
}

// Systems returns every scheduled system in execution order.
func (s *Scheduler) Systems() []System {
	var out []System
	for _, stage := range s.stages {
		out = append(out, stage...)
	}
	return out
}

// Batches splits a stage, preserving order, into runs of systems whose
// declared access does not conflict. Systems without a declaration always get
// a batch of their own.
func Batches(stage []System) [][]System {
	var out [][]System
	var cur []System
	var curAccess []Access
	for _, system := range stage {
		decl, ok := system.(AccessDeclarer)
		if !ok {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			out = append(out, []System{system})
			cur, curAccess = nil, nil
			continue
		}
		acc := decl.Access()
		fits := true
		for _, other := range curAccess {
			if acc.conflicts(other) {
				fits = false
				break
			}
		}
		if !fits {
			out = append(out, cur)
			cur, curAccess = nil, nil
		}
		cur = append(cur, system)
		curAccess = append(curAccess, acc)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func runBatch(w *World, batch []System) {
	if len(batch) == 1 {
		batch[0].Update(w)
		return
	}
	var g errgroup.Group
	for _, system := range batch {
		g.Go(func() error {
			system.Update(w)
			return nil
		})
	}
	_ = g.Wait()
}
