package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/motion"
)

// RenderSystem draws every entity with a Transform and a Sprite, mirroring on
// X when the sprite faces left. It also prints a small debug line for the
// player's movement state.
type RenderSystem struct {
	Debug bool

	tracker *motion.ContactTracker
}

func NewRenderSystem(tracker *motion.ContactTracker) *RenderSystem {
	return &RenderSystem{tracker: tracker}
}

// Update is a no-op; rendering happens in Draw.
func (s *RenderSystem) Update(w *ecs.World) {}

func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(),
		func(e ecs.Entity, tx *component.Transform, spr *component.Sprite) {
			if spr.Image == nil {
				return
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-spr.OriginX, -spr.OriginY)
			if spr.FacingLeft {
				op.GeoM.Scale(-1, 1)
			}
			op.GeoM.Rotate(tx.Rotation)
			op.GeoM.Translate(tx.X, tx.Y)
			screen.DrawImage(spr.Image, op)
		})

	if s.Debug {
		s.drawDebug(w, screen)
	}
}

func (s *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	mov, ok := ecs.Get(w, player, component.MovementComponent.Kind())
	if !ok {
		return
	}
	anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())

	line := fmt.Sprintf("facing=%+.0f lock=%.2f grounded=%t",
		mov.State.Facing, mov.State.WallJumpControlDelayLeft, mov.State.GroundedLastFrame)
	if anim != nil {
		line += fmt.Sprintf(" clip=%s", anim.Current)
	}
	if s.tracker != nil {
		if id, attached := s.tracker.Attached(uint64(player)); attached {
			line += fmt.Sprintf(" platform=%d", id)
		}
	}
	ebitenutil.DebugPrint(screen, line)
}
