// Package motion implements the per-step character movement resolution:
// grounded/grabbing classification relative to a possibly moving platform,
// input-to-velocity mapping, wall-jump control locking, and the contact
// bookkeeping that feeds it. It is engine-free; rigid-body integration and
// overlap queries are supplied by the caller.
package motion

import "github.com/jakecoffman/cp"

// Config is the immutable movement tuning for one character.
// All velocities are px/s in screen coordinates (+Y down), durations in
// seconds.
type Config struct {
	MaxSpeed                     float64
	JumpSpeed                    float64
	PlatformRelativeJump         bool
	AllowWallGrab                bool
	AllowWallJump                bool
	DisableGravityDuringWallGrab bool
	// WallJumpControlDelay is how long horizontal input stays locked out
	// after a wall jump so the push-away impulse survives held input.
	WallJumpControlDelay float64
	// GrabPoint is the local-space probe offset, mirrored on X by facing.
	GrabPoint  cp.Vector
	GrabRadius float64
	// WallGrabMask selects which surface categories can be grabbed.
	WallGrabMask uint
}

// State is the movement state that persists across fixed steps. It is owned
// by exactly one character and mutated only by Resolve.
type State struct {
	// Facing is the current orientation sign, +1 right / -1 left. It drives
	// grab-direction gating and sprite mirroring, never physics scale.
	Facing                   float64
	WallJumpControlDelayLeft float64
	GroundedLastFrame        bool
	// Jumping is the edge-triggered jump latch. It is set by the input
	// observer at the sampling rate and consumed at most once per fixed
	// step; an unserviceable request is discarded, never buffered.
	Jumping bool
}

// NewState returns the spawn-time state: facing right, timers zero.
func NewState() State {
	return State{Facing: 1}
}

// StepInput is the per-fixed-step input sample.
type StepInput struct {
	// HorizontalAxis is pre-clamped to [-1, 1] by the input layer.
	HorizontalAxis float64
	// JumpPressed transfers the observer's edge latch into the state.
	JumpPressed bool
}

// StepOutput is what one Resolve call produces for the physics and
// animation layers.
type StepOutput struct {
	// Velocity is the target velocity to hand to the rigid body.
	Velocity cp.Vector
	Grounded bool
	Grabbing bool
	// GravityScale is 0 while an anti-gravity wall grab is active, else 1.
	GravityScale float64
}

// ClingSentinel is the vertical-speed magnitude published to the animation
// layer while grabbing, so a simple threshold can select the cling clip.
const ClingSentinel = 10000.0

// GrabProbe answers a short-range circular overlap query against the
// grabbable surface categories. A nil or empty-mask result is simply "no
// surface", never an error.
type GrabProbe interface {
	GrabSurfaceAt(center cp.Vector, radius float64, mask uint) bool
}
