package ecs

import "reflect"

// System updates a world once per fixed frame.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in the order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends system. A nil system, including a typed nil pointer, is
// ignored.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	if v := reflect.ValueOf(system); v.Kind() == reflect.Pointer && v.IsNil() {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
