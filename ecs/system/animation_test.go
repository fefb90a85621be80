package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/motion"
)

func TestAnimationClipSelection(t *testing.T) {
	cases := []struct {
		name   string
		speed  float64
		vspeed float64
		want   string
	}{
		{"idle", 0, 0, ClipIdle},
		{"run", 150, 0, ClipRun},
		{"jump", 0, -200, ClipJump},
		{"fall", 0, 200, ClipFall},
		{"jump_beats_run", 150, -200, ClipJump},
		{"wall_grab", 0, motion.ClingSentinel, ClipWallGrab},
		{"below_threshold_is_idle", 5, 5, ClipIdle},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := w.CreateEntity()
			require.NoError(t, ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{
				Params: map[string]float64{
					component.AnimParamSpeed:  c.speed,
					component.AnimParamVSpeed: c.vspeed,
				},
			}))
			require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))

			NewAnimationSystem().Update(w)

			anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, c.want, anim.Current)
		})
	}
}
