package ecs

import "github.com/milk9111/overworld/ecs/component"

// Filter narrows a join to entities that also carry, or do not carry, a
// component kind.
type Filter struct {
	id      component.ComponentID
	exclude bool
}

// With keeps only entities that carry kind.
func With[T any](kind component.ComponentKind[T]) Filter {
	return Filter{id: kind.ID()}
}

// Without drops entities that carry kind.
func Without[T any](kind component.ComponentKind[T]) Filter {
	return Filter{id: kind.ID(), exclude: true}
}

func (f Filter) match(w *World, id entityID) bool {
	s := w.lookup(f.id)
	present := s != nil && s.has(id)
	return present != f.exclude
}

// join returns a snapshot of the live entities present in every required
// store and accepted by every filter. The smallest store drives the scan.
func join(w *World, required []component.ComponentID, filters []Filter) []Entity {
	if w == nil || len(required) == 0 {
		return nil
	}
	stores := make([]store, len(required))
	var driver store
	for i, id := range required {
		s := w.lookup(id)
		if s == nil || s.len() == 0 {
			return nil
		}
		stores[i] = s
		if driver == nil || s.len() < driver.len() {
			driver = s
		}
	}

	src := driver.entities()
	out := make([]Entity, 0, len(src))
next:
	for _, e := range src {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range stores {
			if s != driver && !s.has(e.id()) {
				continue next
			}
		}
		for _, f := range filters {
			if !f.match(w, e.id()) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// Query returns the entities carrying every kind named by the With filters
// and none named by the Without filters. At least one With filter is needed.
func Query(w *World, filters ...Filter) []Entity {
	var required []component.ComponentID
	var rest []Filter
	for _, f := range filters {
		if f.exclude {
			rest = append(rest, f)
			continue
		}
		required = append(required, f.id)
	}
	return join(w, required, rest)
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T], filters ...Filter) (Entity, bool) {
	ents := join(w, []component.ComponentID{kind.ID()}, filters)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// ForEach calls fn for every entity carrying a.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A), filters ...Filter) {
	sa := storeFor(w, a, false)
	if sa == nil || fn == nil {
		return
	}
	for _, e := range join(w, []component.ComponentID{a.ID()}, filters) {
		if !w.entities.isAlive(e) {
			continue
		}
		va, ok := sa.get(e.id())
		if !ok {
			continue
		}
		fn(e, va)
	}
}

// ForEach2 calls fn for every entity carrying both a and b.
func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B), filters ...Filter) {
	sa, sb := storeFor(w, a, false), storeFor(w, b, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range join(w, []component.ComponentID{a.ID(), b.ID()}, filters) {
		if !w.entities.isAlive(e) {
			continue
		}
		va, okA := sa.get(e.id())
		vb, okB := sb.get(e.id())
		if !okA || !okB {
			continue
		}
		fn(e, va, vb)
	}
}

// ForEach3 calls fn for every entity carrying a, b and c.
func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C), filters ...Filter) {
	sa, sb, sc := storeFor(w, a, false), storeFor(w, b, false), storeFor(w, c, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range join(w, []component.ComponentID{a.ID(), b.ID(), c.ID()}, filters) {
		if !w.entities.isAlive(e) {
			continue
		}
		va, okA := sa.get(e.id())
		vb, okB := sb.get(e.id())
		vc, okC := sc.get(e.id())
		if !okA || !okB || !okC {
			continue
		}
		fn(e, va, vb, vc)
	}
}

// ForEach4 calls fn for every entity carrying a, b, c and d.
func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D), filters ...Filter) {
	sa, sb, sc, sd := storeFor(w, a, false), storeFor(w, b, false), storeFor(w, c, false), storeFor(w, d, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, e := range join(w, []component.ComponentID{a.ID(), b.ID(), c.ID(), d.ID()}, filters) {
		if !w.entities.isAlive(e) {
			continue
		}
		va, okA := sa.get(e.id())
		vb, okB := sb.get(e.id())
		vc, okC := sc.get(e.id())
		vd, okD := sd.get(e.id())
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, va, vb, vc, vd)
	}
}
