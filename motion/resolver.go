package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// groundedEpsilon is the relative vertical speed (px/s) below which a
	// step counts as a ground-contact sample.
	groundedEpsilon = 4.0
	// groundBias is a small downward velocity applied while grounded so the
	// contact solver stays engaged instead of toggling the contact on and
	// off every step.
	groundBias = 1.0
)

// Resolver turns one fixed step of input and physics state into a target
// velocity and updated movement state. It never fails: every input has a
// defined default and every branch produces a usable output.
type Resolver struct {
	probe GrabProbe
}

func NewResolver(probe GrabProbe) *Resolver {
	return &Resolver{probe: probe}
}

// Resolve computes a single fixed step.
//
// pos is the character's world position (probe placement), rawVel the rigid
// body's current velocity, platformVel the velocity of the attached platform
// (zero vector when none). All contact classification runs on the relative
// velocity so a character riding a fast platform is not misread as airborne.
func (r *Resolver) Resolve(cfg *Config, st *State, in StepInput, pos, rawVel, platformVel cp.Vector, dt float64) StepOutput {
	out := StepOutput{GravityScale: 1}
	if cfg == nil || st == nil {
		out.Velocity = rawVel
		return out
	}

	if in.JumpPressed {
		st.Jumping = true
	}

	rel := rawVel.Sub(platformVel)

	// Grounded needs two consecutive near-zero samples: vertical velocity
	// can read zero for one step at a jump apex.
	nearGround := math.Abs(rel.Y) < groundedEpsilon
	grounded := nearGround && st.GroundedLastFrame
	st.GroundedLastFrame = nearGround

	// Grabbing: airborne, enabled, not control-locked, pushing toward the
	// wall the character faces, and the probe finds a grabbable surface.
	grabbing := false
	if !grounded && cfg.AllowWallGrab && st.WallJumpControlDelayLeft <= 0 &&
		in.HorizontalAxis*st.Facing > 0 && r.probe != nil {
		center := cp.Vector{
			X: pos.X + cfg.GrabPoint.X*st.Facing,
			Y: pos.Y + cfg.GrabPoint.Y,
		}
		grabbing = r.probe.GrabSurfaceAt(center, cfg.GrabRadius, cfg.WallGrabMask)
	}

	if cfg.DisableGravityDuringWallGrab && grabbing {
		out.GravityScale = 0
	}

	vy := rawVel.Y
	if grounded {
		vy = platformVel.Y + groundBias
	}

	// The lock always counts down; contact of either kind clears it. The
	// decrement may transiently go negative before the clamp.
	st.WallJumpControlDelayLeft -= dt
	if st.WallJumpControlDelayLeft < 0 || grounded || grabbing {
		st.WallJumpControlDelayLeft = 0
	}

	// Direct input mapping, no acceleration ramp: full control the moment
	// the lock releases.
	vx := rawVel.X
	if st.WallJumpControlDelayLeft <= 0 {
		vx = in.HorizontalAxis*cfg.MaxSpeed + platformVel.X
	}

	// Wall cling: cancel a downward relative slide at the moment of grab,
	// and pin the horizontal component unless the character is pulling
	// away, which suppresses the one-step bounce at ledges.
	if grabbing {
		if rel.Y >= 0 {
			vy = platformVel.Y
		}
		if rel.X*st.Facing <= 0 {
			vx = platformVel.X
		}
	}

	// Jump latch is consumed at most once and discarded if nothing could
	// service it.
	if st.Jumping && (grounded || (grabbing && cfg.AllowWallJump)) {
		vy = -cfg.JumpSpeed
		if cfg.PlatformRelativeJump {
			vy += platformVel.Y
		}
		if grabbing {
			vx = -cfg.MaxSpeed * st.Facing
			st.WallJumpControlDelayLeft = cfg.WallJumpControlDelay
		}
	}
	st.Jumping = false

	// Facing flips only on strictly signed input; zero input holds it.
	if in.HorizontalAxis > 0 {
		st.Facing = 1
	} else if in.HorizontalAxis < 0 {
		st.Facing = -1
	}

	out.Velocity = cp.Vector{X: vx, Y: vy}
	out.Grounded = grounded
	out.Grabbing = grabbing
	return out
}

// KeepsPlatform reports whether the platform attachment should survive this
// step: any ground or grab contact, or this step's raw near-ground sample,
// keeps it; otherwise the character is fully airborne and a stale platform
// velocity must not leak into later steps.
func KeepsPlatform(st *State, out StepOutput) bool {
	if st == nil {
		return false
	}
	return out.Grounded || out.Grabbing || st.GroundedLastFrame
}
