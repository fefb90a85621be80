package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollis909/ledgerunner/common"
	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/motion"
)

// MovementSystem runs the per-step movement resolution for every entity that
// has movement tuning, sampled input, and a physics body. It reads the body's
// position and velocity, resolves a target velocity through motion.Resolver,
// and writes the result back, keeping the platform attachment and animation
// parameters in step.
type MovementSystem struct {
	physics  *PhysicsSystem
	resolver *motion.Resolver
}

func NewMovementSystem(physics *PhysicsSystem) *MovementSystem {
	return &MovementSystem{
		physics:  physics,
		resolver: motion.NewResolver(physics),
	}
}

func (ms *MovementSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ms == nil || w == nil || ms.physics == nil {
		return
	}
	tracker := ms.physics.Tracker()

	for _, e := range w.Query(
		component.MovementComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	) {
		mov, ok := ecs.Get(w, e, component.MovementComponent.Kind())
		if !ok {
			continue
		}
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}

		step := motion.StepInput{
			HorizontalAxis: common.Clamp(in.MoveX, -1, 1),
			JumpPressed:    in.JumpPressed,
		}
		// The edge latch transfers into the step exactly once.
		in.JumpPressed = false

		platformVel := tracker.PlatformVelocity(uint64(e))
		out := ms.resolver.Resolve(
			&mov.Config, &mov.State, step,
			bodyComp.Body.Position(), bodyComp.Body.Velocity(), platformVel,
			dt,
		)

		bodyComp.Body.SetVelocity(out.Velocity.X, out.Velocity.Y)
		tracker.FrameEnd(uint64(e), motion.KeepsPlatform(&mov.State, out))

		if mov.Config.DisableGravityDuringWallGrab {
			if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
				gs.Scale = out.GravityScale
			}
		}

		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			publishAnimParams(anim, out, platformVel)
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = mov.State.Facing < 0
		}
	}
}

// publishAnimParams exposes platform-relative speeds so a character idling on
// a moving platform animates as idle, not running. A grab pins vspeed to the
// sentinel so the threshold logic picks the cling clip.
func publishAnimParams(anim *component.Animator, out motion.StepOutput, platformVel cp.Vector) {
	if anim.Params == nil {
		anim.Params = make(map[string]float64)
	}
	anim.Params[component.AnimParamSpeed] = math.Abs(out.Velocity.X - platformVel.X)
	vspeed := out.Velocity.Y - platformVel.Y
	if out.Grabbing {
		vspeed = motion.ClingSentinel
	}
	anim.Params[component.AnimParamVSpeed] = vspeed
}
