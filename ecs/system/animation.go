package system

import (
	"math"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/motion"
)

// Clip names the animation system selects between.
const (
	ClipIdle     = "idle"
	ClipRun      = "run"
	ClipJump     = "jump"
	ClipFall     = "fall"
	ClipWallGrab = "wall_grab"
)

// animThreshold is the speed (px/s) below which motion reads as standing
// still. Platform-relative speeds come in already, so a rider idling on a
// fast platform still selects idle.
const animThreshold = 8.0

// AnimationSystem maps the movement parameters to a clip and swaps the
// sprite image accordingly.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.SpriteComponent.Kind(),
		func(e ecs.Entity, anim *component.Animator, sprite *component.Sprite) {
			speed := anim.Params[component.AnimParamSpeed]
			vspeed := anim.Params[component.AnimParamVSpeed]

			clip := ClipIdle
			switch {
			case math.Abs(vspeed) >= 0.9*motion.ClingSentinel:
				clip = ClipWallGrab
			case vspeed < -animThreshold:
				clip = ClipJump
			case vspeed > animThreshold:
				clip = ClipFall
			case speed > animThreshold:
				clip = ClipRun
			}

			anim.Current = clip
			if img, ok := anim.Clips[clip]; ok && img != nil {
				sprite.Image = img
			}
		})
}
