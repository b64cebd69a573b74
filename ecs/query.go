package ecs

import "github.com/milk9111/slingshot/ecs/component"

// ForEach calls fn for every entity holding the component. fn may add or
// remove components and destroy entities; entities destroyed earlier in the
// same pass are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	for _, e := range s.snapshot() {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEach2 visits entities holding both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range smallest(sa, sb).snapshot() {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits entities holding all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	sc := w.store(kc.ID(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range smallest(sa, sb, sc).snapshot() {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

// Query returns the entities holding the component, in storage order.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return nil
	}
	return s.snapshot()
}

func smallest(sets ...*sparseSet) *sparseSet {
	best := sets[0]
	for _, s := range sets[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}
