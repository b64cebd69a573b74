package ecs

import "github.com/milk9111/slingshot/ecs/component"

// Add stores value as e's component of the given kind, replacing any previous
// value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return nil, false
	}
	raw, ok := s.get(e)
	if !ok {
		return nil, false
	}
	value, ok := raw.(*T)
	return value, ok
}

// First returns an arbitrary entity holding the component. Used for
// singletons such as the level state.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	if w == nil {
		return 0, nil, false
	}
	s := w.store(kind.ID(), false)
	if s == nil || s.len() == 0 {
		return 0, nil, false
	}
	for i, e := range s.dense {
		if v, ok := s.values[i].(*T); ok && w.entities.isAlive(e) {
			return e, v, true
		}
	}
	return 0, nil, false
}

// Count returns how many entities hold the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0
	}
	return s.len()
}
