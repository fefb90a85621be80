package motion

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProbe struct {
	hit        bool
	lastCenter cp.Vector
	lastRadius float64
	lastMask   uint
	calls      int
}

func (p *stubProbe) GrabSurfaceAt(center cp.Vector, radius float64, mask uint) bool {
	p.calls++
	p.lastCenter = center
	p.lastRadius = radius
	p.lastMask = mask
	return p.hit
}

func testConfig() Config {
	return Config{
		MaxSpeed:                     220,
		JumpSpeed:                    560,
		PlatformRelativeJump:         true,
		AllowWallGrab:                true,
		AllowWallJump:                true,
		DisableGravityDuringWallGrab: true,
		WallJumpControlDelay:         0.18,
		GrabPoint:                    cp.Vector{X: 14, Y: -4},
		GrabRadius:                   6,
		WallGrabMask:                 1 << 1,
	}
}

const dt = 1.0 / 120.0

func TestResolveGroundedDebounce(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	r := NewResolver(&stubProbe{})

	// First near-zero sample: not yet grounded, one sample is an apex too.
	out := r.Resolve(&cfg, &st, StepInput{}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	assert.False(t, out.Grounded)
	assert.True(t, st.GroundedLastFrame)

	// Second consecutive sample confirms ground contact.
	out = r.Resolve(&cfg, &st, StepInput{}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	assert.True(t, out.Grounded)
	assert.InDelta(t, groundBias, out.Velocity.Y, 1e-9)

	// A fast fall breaks the streak immediately.
	out = r.Resolve(&cfg, &st, StepInput{}, cp.Vector{}, cp.Vector{Y: 300}, cp.Vector{}, dt)
	assert.False(t, out.Grounded)
	assert.False(t, st.GroundedLastFrame)
}

func TestResolveGroundedIsPlatformRelative(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	r := NewResolver(&stubProbe{})

	// Riding a platform falling at 90 px/s: raw velocity is far from zero
	// but relative velocity is zero, so this still reads as grounded.
	platVel := cp.Vector{X: 40, Y: 90}
	var out StepOutput
	for i := 0; i < 2; i++ {
		out = r.Resolve(&cfg, &st, StepInput{HorizontalAxis: 1}, cp.Vector{}, platVel, platVel, dt)
	}
	require.True(t, out.Grounded)
	assert.InDelta(t, cfg.MaxSpeed+platVel.X, out.Velocity.X, 1e-9)
	assert.InDelta(t, platVel.Y+groundBias, out.Velocity.Y, 1e-9)
}

func TestResolveFacing(t *testing.T) {
	cases := []struct {
		name   string
		axis   float64
		start  float64
		expect float64
	}{
		{"right_input_faces_right", 1, -1, 1},
		{"left_input_faces_left", -1, 1, -1},
		{"zero_input_holds_left", 0, -1, -1},
		{"zero_input_holds_right", 0, 1, 1},
		{"small_input_still_flips", 0.05, -1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			st := NewState()
			st.Facing = c.start
			r := NewResolver(&stubProbe{})

			r.Resolve(&cfg, &st, StepInput{HorizontalAxis: c.axis}, cp.Vector{}, cp.Vector{Y: 300}, cp.Vector{}, dt)
			assert.Equal(t, c.expect, st.Facing)
		})
	}
}

func TestResolveJumpFromGround(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.GroundedLastFrame = true
	r := NewResolver(&stubProbe{})

	out := r.Resolve(&cfg, &st, StepInput{JumpPressed: true}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	require.True(t, out.Grounded)
	assert.InDelta(t, -cfg.JumpSpeed, out.Velocity.Y, 1e-9)
	assert.False(t, st.Jumping, "latch must be consumed")
}

func TestResolveJumpIsPlatformRelative(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(&stubProbe{})

	// Jumping off a platform moving up at 60 px/s with relative jumps on:
	// the takeoff velocity stacks on the platform's.
	platVel := cp.Vector{Y: -60}

	st := NewState()
	st.GroundedLastFrame = true
	out := r.Resolve(&cfg, &st, StepInput{JumpPressed: true}, cp.Vector{}, platVel, platVel, dt)
	require.True(t, out.Grounded)
	assert.InDelta(t, -cfg.JumpSpeed+platVel.Y, out.Velocity.Y, 1e-9)

	cfg.PlatformRelativeJump = false
	st = NewState()
	st.GroundedLastFrame = true
	out = r.Resolve(&cfg, &st, StepInput{JumpPressed: true}, cp.Vector{}, platVel, platVel, dt)
	require.True(t, out.Grounded)
	assert.InDelta(t, -cfg.JumpSpeed, out.Velocity.Y, 1e-9)
}

func TestResolveAirborneJumpDiscarded(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	r := NewResolver(&stubProbe{})

	// Airborne, no grab surface: the press cannot be serviced.
	out := r.Resolve(&cfg, &st, StepInput{JumpPressed: true}, cp.Vector{}, cp.Vector{Y: 300}, cp.Vector{}, dt)
	assert.False(t, out.Grounded)
	assert.False(t, st.Jumping, "unserviceable press is discarded, not buffered")

	// Landing two steps later must not fire the stale press.
	r.Resolve(&cfg, &st, StepInput{}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	out = r.Resolve(&cfg, &st, StepInput{}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	require.True(t, out.Grounded)
	assert.InDelta(t, groundBias, out.Velocity.Y, 1e-9)
}

func TestResolveWallGrab(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	probe := &stubProbe{hit: true}
	r := NewResolver(probe)

	pos := cp.Vector{X: 100, Y: 200}
	rawVel := cp.Vector{Y: 150} // sliding down the wall

	out := r.Resolve(&cfg, &st, StepInput{HorizontalAxis: 1}, pos, rawVel, cp.Vector{}, dt)
	require.True(t, out.Grabbing)
	assert.Equal(t, 0.0, out.GravityScale)
	// Downward slide cancelled, horizontal pinned to the surface.
	assert.Equal(t, cp.Vector{}, out.Velocity)
	// Probe lands at the facing-mirrored grab point.
	assert.Equal(t, cp.Vector{X: 114, Y: 196}, probe.lastCenter)
	assert.Equal(t, cfg.GrabRadius, probe.lastRadius)
	assert.Equal(t, cfg.WallGrabMask, probe.lastMask)
}

func TestResolveWallGrabGates(t *testing.T) {
	pos := cp.Vector{X: 100, Y: 200}
	falling := cp.Vector{Y: 150}

	cases := []struct {
		name  string
		cfg   func(*Config)
		st    func(*State)
		input StepInput
		probe bool
		want  bool
	}{
		{"pushing_toward_wall_grabs", func(*Config) {}, func(*State) {}, StepInput{HorizontalAxis: 1}, true, true},
		{"no_input_no_grab", func(*Config) {}, func(*State) {}, StepInput{}, true, false},
		{"pulling_away_no_grab", func(*Config) {}, func(*State) {}, StepInput{HorizontalAxis: -1}, true, false},
		{"disabled_no_grab", func(c *Config) { c.AllowWallGrab = false }, func(*State) {}, StepInput{HorizontalAxis: 1}, true, false},
		{"no_surface_no_grab", func(*Config) {}, func(*State) {}, StepInput{HorizontalAxis: 1}, false, false},
		{"locked_no_grab", func(*Config) {}, func(s *State) { s.WallJumpControlDelayLeft = 0.1 }, StepInput{HorizontalAxis: 1}, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			c.cfg(&cfg)
			st := NewState()
			c.st(&st)
			r := NewResolver(&stubProbe{hit: c.probe})

			out := r.Resolve(&cfg, &st, c.input, pos, falling, cp.Vector{}, dt)
			assert.Equal(t, c.want, out.Grabbing)
		})
	}
}

func TestResolveWallJump(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	r := NewResolver(&stubProbe{hit: true})

	pos := cp.Vector{X: 100, Y: 200}
	rawVel := cp.Vector{Y: 150}

	out := r.Resolve(&cfg, &st, StepInput{HorizontalAxis: 1, JumpPressed: true}, pos, rawVel, cp.Vector{}, dt)
	require.True(t, out.Grabbing)
	assert.InDelta(t, -cfg.JumpSpeed, out.Velocity.Y, 1e-9)
	assert.InDelta(t, -cfg.MaxSpeed, out.Velocity.X, 1e-9, "push-away opposes facing")
	assert.Equal(t, cfg.WallJumpControlDelay, st.WallJumpControlDelayLeft)

	// Held input toward the wall is ignored while the lock runs.
	airVel := cp.Vector{X: -cfg.MaxSpeed, Y: -400}
	out = r.Resolve(&cfg, &st, StepInput{HorizontalAxis: 1}, pos, airVel, cp.Vector{}, dt)
	assert.False(t, out.Grabbing, "no immediate re-grab while locked")
	assert.InDelta(t, airVel.X, out.Velocity.X, 1e-9)
	assert.InDelta(t, cfg.WallJumpControlDelay-dt, st.WallJumpControlDelayLeft, 1e-9)
}

func TestResolveLockExpiryRestoresControl(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.WallJumpControlDelayLeft = dt
	r := NewResolver(&stubProbe{})

	// The step that drains the lock already honors input again.
	out := r.Resolve(&cfg, &st, StepInput{HorizontalAxis: 1}, cp.Vector{}, cp.Vector{Y: 300}, cp.Vector{}, dt)
	assert.Equal(t, 0.0, st.WallJumpControlDelayLeft)
	assert.InDelta(t, cfg.MaxSpeed, out.Velocity.X, 1e-9)
}

func TestResolveLockClearedByContact(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.WallJumpControlDelayLeft = 0.5
	st.GroundedLastFrame = true
	r := NewResolver(&stubProbe{})

	out := r.Resolve(&cfg, &st, StepInput{HorizontalAxis: -1}, cp.Vector{}, cp.Vector{}, cp.Vector{}, dt)
	require.True(t, out.Grounded)
	assert.Equal(t, 0.0, st.WallJumpControlDelayLeft)
	assert.InDelta(t, -cfg.MaxSpeed, out.Velocity.X, 1e-9)
}

func TestResolveNilConfigPassesVelocityThrough(t *testing.T) {
	r := NewResolver(&stubProbe{})
	rawVel := cp.Vector{X: 12, Y: 34}

	out := r.Resolve(nil, nil, StepInput{JumpPressed: true}, cp.Vector{}, rawVel, cp.Vector{}, dt)
	assert.Equal(t, rawVel, out.Velocity)
	assert.Equal(t, 1.0, out.GravityScale)
}

func TestKeepsPlatform(t *testing.T) {
	st := NewState()

	assert.True(t, KeepsPlatform(&st, StepOutput{Grounded: true}))
	assert.True(t, KeepsPlatform(&st, StepOutput{Grabbing: true}))
	assert.False(t, KeepsPlatform(&st, StepOutput{}))

	// A single near-ground sample (debounce not yet satisfied) still keeps
	// the attachment so the platform velocity survives the landing frame.
	st.GroundedLastFrame = true
	assert.True(t, KeepsPlatform(&st, StepOutput{}))

	assert.False(t, KeepsPlatform(nil, StepOutput{Grounded: true}))
}
