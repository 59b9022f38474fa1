package ecs

import (
	"slices"
	"sync"
	"testing"

	"github.com/milk9111/overworld/ecs/component"
)

type fakeSystem struct {
	name   string
	access *Access
	run    func(w *World)
	log    *[]string
	mu     *sync.Mutex
}

func (s *fakeSystem) Update(w *World) {
	if s.run != nil {
		s.run(w)
	}
	if s.log != nil {
		s.mu.Lock()
		*s.log = append(*s.log, s.name)
		s.mu.Unlock()
	}
}

type declaredSystem struct{ *fakeSystem }

func (s declaredSystem) Access() Access { return *s.access }

func declared(name string, acc Access) System {
	return declaredSystem{&fakeSystem{name: name, access: &acc}}
}

func names(batches [][]System) [][]string {
	out := make([][]string, 0, len(batches))
	for _, b := range batches {
		var row []string
		for _, s := range b {
			switch v := s.(type) {
			case declaredSystem:
				row = append(row, v.name)
			case *fakeSystem:
				row = append(row, v.name)
			}
		}
		out = append(out, row)
	}
	return out
}

func TestBatches(t *testing.T) {
	x, y := component.ComponentID(1001), component.ComponentID(1002)

	tests := []struct {
		name  string
		stage []System
		want  [][]string
	}{
		{
			name: "disjoint_share_a_batch",
			stage: []System{
				declared("a", Access{Writes: []component.ComponentID{x}}),
				declared("b", Access{Writes: []component.ComponentID{y}}),
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "read_after_write_splits",
			stage: []System{
				declared("a", Access{Writes: []component.ComponentID{x}}),
				declared("b", Access{Reads: []component.ComponentID{y}}),
				declared("c", Access{Reads: []component.ComponentID{x}}),
			},
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "shared_reads_are_fine",
			stage: []System{
				declared("a", Access{Reads: []component.ComponentID{x, y}}),
				declared("b", Access{Reads: []component.ComponentID{x}}),
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "exclusive_pair_splits",
			stage: []System{
				declared("a", Access{Exclusive: true}),
				declared("b", Access{Exclusive: true}),
			},
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "undeclared_runs_alone",
			stage: []System{
				declared("a", Access{Reads: []component.ComponentID{x}}),
				&fakeSystem{name: "u"},
				declared("b", Access{Reads: []component.ComponentID{x}}),
			},
			want: [][]string{{"a"}, {"u"}, {"b"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Batches(tc.stage))
			if !slices.EqualFunc(got, tc.want, slices.Equal[[]string]) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSchedulerStageOrder(t *testing.T) {
	var log []string
	var mu sync.Mutex
	sys := func(name string) *fakeSystem { return &fakeSystem{name: name, log: &log, mu: &mu} }

	s := NewScheduler(sys("input"))
	s.AddStage(sys("motion"), sys("guard"))
	s.Add(nil)
	s.AddStage()
	s.Add(sys("collect"))

	s.Update(NewWorld())
	want := []string{"input", "motion", "guard", "collect"}
	if !slices.Equal(log, want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	if len(s.Systems()) != 4 {
		t.Fatalf("expected 4 systems, got %d", len(s.Systems()))
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	a := component.NewComponent[int]()
	b := component.NewComponent[int]()

	build := func() (*World, []Entity) {
		w := NewWorld()
		var ents []Entity
		for i := 0; i < 32; i++ {
			e := CreateEntity(w)
			_ = Add(w, e, a.Kind(), intPtr(i))
			_ = Add(w, e, b.Kind(), intPtr(-i))
			ents = append(ents, e)
		}
		return w, ents
	}
	bump := func(kind component.ComponentKind[int], by int) func(w *World) {
		return func(w *World) {
			ForEach(w, kind, func(e Entity, v *int) {
				*v += by
				if *v%7 == 0 {
					w.Events().Push(Event{Type: "seven", Entity: e})
				}
			})
		}
	}
	stage := func() []System {
		return []System{
			declaredSystem{&fakeSystem{name: "a", access: &Access{Writes: []component.ComponentID{a.ID()}}, run: bump(a.Kind(), 3)}},
			declaredSystem{&fakeSystem{name: "b", access: &Access{Writes: []component.ComponentID{b.ID()}}, run: bump(b.Kind(), 5)}},
		}
	}

	run := func(parallel bool) ([]int, int) {
		w, ents := build()
		s := NewScheduler()
		s.Parallel = parallel
		s.AddStage(stage()...)
		for i := 0; i < 10; i++ {
			s.Update(w)
		}
		var out []int
		for _, e := range ents {
			va, _ := Get(w, e, a.Kind())
			vb, _ := Get(w, e, b.Kind())
			out = append(out, *va, *vb)
		}
		return out, len(w.Events().Drain())
	}

	seqVals, seqEvents := run(false)
	parVals, parEvents := run(true)
	if !slices.Equal(seqVals, parVals) || seqEvents != parEvents {
		t.Fatalf("parallel run diverged: events %d vs %d", seqEvents, parEvents)
	}
}
