package ecs

// sparseSet is a cache-friendly component store keyed by entity slot. Values
// are held as `any` so one map of stores can serve every component kind; the
// typed accessors in generics.go restore the static type.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *sparseSet) index(id entityID) (int, bool) {
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx, ok := s.index(e.id())
	if !ok || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := e.id()
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	idx, ok := s.index(e.id())
	if !ok || s.dense[idx] != e {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.id()] = -1
	return true
}

func (s *sparseSet) len() int {
	return len(s.dense)
}

// snapshot copies the entity list so callers may mutate the set while
// iterating.
func (s *sparseSet) snapshot() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
