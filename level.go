package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/ecs/system"
	"github.com/hollis909/ledgerunner/motion"
	"github.com/hollis909/ledgerunner/prefabs"
)

// BuildLevel populates the world from the level and player prefabs.
func BuildLevel(w *ecs.World) error {
	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		return err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}

	for i, wall := range level.Walls {
		if err := buildWall(w, wall); err != nil {
			return fmt.Errorf("level: wall %d: %w", i, err)
		}
	}
	for i, plat := range level.Platforms {
		if err := buildPlatform(w, plat); err != nil {
			return fmt.Errorf("level: platform %d: %w", i, err)
		}
	}
	if err := buildPlayer(w, player, level.Spawn); err != nil {
		return fmt.Errorf("level: player: %w", err)
	}
	return nil
}

func buildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, spawn prefabs.TransformSpec) error {
	e := w.CreateEntity()

	x, y := spawn.X, spawn.Y
	if x == 0 && y == 0 {
		x, y = spec.Transform.X, spec.Transform.Y
	}

	width := spec.Collider.Width
	height := spec.Collider.Height
	clips := playerClips(width, height)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{
		Config: spec.MovementConfig(),
		State:  motion.NewState(),
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         width,
		Height:        height,
		Mass:          spec.Mass,
		Friction:      spec.Collider.Friction,
		Mode:          component.BodyDynamic,
		FixedRotation: true,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   clips[system.ClipIdle],
		OriginX: width / 2,
		OriginY: height / 2,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{
		Params: make(map[string]float64),
		Clips:  clips,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func buildWall(w *ecs.World, spec prefabs.WallSpec) error {
	e := w.CreateEntity()

	category := component.CategorySolid
	tint := colornames.Slategray
	if spec.Grabbable {
		category |= component.CategoryGrabWall
		tint = colornames.Darkolivegreen
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Friction: 0,
		Mode:     component.BodyStatic,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: category,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   solidImage(spec.Width, spec.Height, tint),
		OriginX: spec.Width / 2,
		OriginY: spec.Height / 2,
	})
}

func buildPlatform(w *ecs.World, spec prefabs.PlatformSpec) error {
	e := w.CreateEntity()

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.FromX, Y: spec.FromY}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
		FromX:   spec.FromX,
		FromY:   spec.FromY,
		ToX:     spec.ToX,
		ToY:     spec.ToY,
		Speed:   spec.Speed,
		Forward: true,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Friction: 0,
		Mode:     component.BodyKinematic,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlatform | component.CategorySolid,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   solidImage(spec.Width, spec.Height, colornames.Peru),
		OriginX: spec.Width / 2,
		OriginY: spec.Height / 2,
	})
}

// playerClips builds flat-color placeholder clips, one tint per state.
func playerClips(width, height float64) map[string]*ebiten.Image {
	return map[string]*ebiten.Image{
		system.ClipIdle:     solidImage(width, height, colornames.Cornflowerblue),
		system.ClipRun:      solidImage(width, height, colornames.Royalblue),
		system.ClipJump:     solidImage(width, height, colornames.Lightskyblue),
		system.ClipFall:     solidImage(width, height, colornames.Steelblue),
		system.ClipWallGrab: solidImage(width, height, colornames.Goldenrod),
	}
}

func solidImage(width, height float64, c color.Color) *ebiten.Image {
	iw, ih := int(width), int(height)
	if iw < 1 {
		iw = 1
	}
	if ih < 1 {
		ih = 1
	}
	img := ebiten.NewImage(iw, ih)
	img.Fill(c)
	return img
}
