package ecs

type System interface {
	Update(w *World)
}

// SystemFunc lets a plain function run as a frame stage.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	if f != nil {
		f(w)
	}
}

// Scheduler runs its systems once per frame in the order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
