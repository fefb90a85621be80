package ecs

// System runs once per rendered frame (input sampling, animation selection).
type System interface {
	Update(w *World)
}

// FixedSystem runs at the physics rate with a fixed elapsed time in seconds.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// Scheduler holds the frame-phase and fixed-phase system lists. The owning
// loop runs the full frame phase before any fixed steps of that frame, so
// the two phases never interleave.
type Scheduler struct {
	frame []System
	fixed []FixedSystem
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AddFrame(sys System) {
	if sys == nil {
		return
	}
	s.frame = append(s.frame, sys)
}

func (s *Scheduler) AddFixed(sys FixedSystem) {
	if sys == nil {
		return
	}
	s.fixed = append(s.fixed, sys)
}

// Update runs the frame-phase systems once.
func (s *Scheduler) Update(w *World) {
	for _, sys := range s.frame {
		sys.Update(w)
	}
}

// FixedUpdate runs the fixed-phase systems once for a single physics step.
func (s *Scheduler) FixedUpdate(w *World, dt float64) {
	for _, sys := range s.fixed {
		sys.FixedUpdate(w, dt)
	}
}
