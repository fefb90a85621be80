package system

import (
	"github.com/jakecoffman/cp"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
)

// PlatformSystem drives kinematic platforms back and forth between their two
// patrol points at constant speed. It runs before movement resolution so a
// rider sees this step's platform velocity, not last step's.
type PlatformSystem struct {
	physics *PhysicsSystem
}

func NewPlatformSystem(physics *PhysicsSystem) *PlatformSystem {
	return &PlatformSystem{physics: physics}
}

func (ps *PlatformSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ps == nil || w == nil || ps.physics == nil {
		return
	}

	for _, e := range w.Query(
		component.PlatformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	) {
		plat, ok := ecs.Get(w, e, component.PlatformComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}

		from := cp.Vector{X: plat.FromX, Y: plat.FromY}
		to := cp.Vector{X: plat.ToX, Y: plat.ToY}
		target := to
		if !plat.Forward {
			target = from
		}

		pos := bodyComp.Body.Position()
		delta := target.Sub(pos)
		dist := delta.Length()

		// Within one step of the waypoint: snap, turn around, and continue
		// toward the other end so the velocity never reads zero mid-patrol.
		if dist <= plat.Speed*dt || plat.Speed <= 0 {
			bodyComp.Body.SetPosition(target)
			plat.Forward = !plat.Forward
			if plat.Speed <= 0 {
				bodyComp.Body.SetVelocity(0, 0)
				continue
			}
			if plat.Forward {
				target = to
			} else {
				target = from
			}
			delta = target.Sub(bodyComp.Body.Position())
			dist = delta.Length()
		}

		if dist == 0 {
			// Degenerate patrol with coincident endpoints.
			bodyComp.Body.SetVelocity(0, 0)
			continue
		}
		vel := delta.Mult(plat.Speed / dist)
		bodyComp.Body.SetVelocityVector(vel)
	}
}
