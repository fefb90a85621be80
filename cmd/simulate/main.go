// Command simulate runs the movement stack headless for a fixed number of
// steps with scripted input and prints the player's trajectory. Useful for
// tuning prefab values and for diffing behavior across changes, since the
// fixed step makes the run deterministic.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/ecs/system"
	"github.com/hollis909/ledgerunner/motion"
	"github.com/hollis909/ledgerunner/prefabs"
)

const fixedDT = 1.0 / 120.0

func main() {
	seconds := flag.Float64("seconds", 5, "simulated duration")
	jumpEvery := flag.Float64("jump-every", 1.5, "seconds between scripted jumps (0 = never)")
	moveX := flag.Float64("move", 1, "held horizontal axis in [-1, 1]")
	sampleEvery := flag.Float64("sample-every", 0.5, "seconds between printed samples")
	flag.Parse()

	if err := run(*seconds, *jumpEvery, *moveX, *sampleEvery); err != nil {
		log.Fatal(err)
	}
}

func run(seconds, jumpEvery, moveX, sampleEvery float64) error {
	world := ecs.NewWorld()
	physics := system.NewPhysicsSystem()

	scheduler := ecs.NewScheduler()
	scheduler.AddFixed(system.NewPlatformSystem(physics))
	scheduler.AddFixed(system.NewMovementSystem(physics))
	scheduler.AddFixed(physics)

	player, err := buildWorld(world)
	if err != nil {
		return err
	}

	steps := int(seconds / fixedDT)
	jumpSteps := 0
	if jumpEvery > 0 {
		jumpSteps = int(jumpEvery / fixedDT)
	}
	sampleSteps := int(sampleEvery / fixedDT)
	if sampleSteps < 1 {
		sampleSteps = 1
	}

	fmt.Fprintln(os.Stdout, "t\tx\ty\tvx\tvy\tgrounded\tplatform")
	for step := 0; step < steps; step++ {
		if in, ok := ecs.Get(world, player, component.InputComponent.Kind()); ok {
			in.MoveX = moveX
			if jumpSteps > 0 && step%jumpSteps == 0 {
				in.JumpPressed = true
			}
		}

		scheduler.FixedUpdate(world, fixedDT)

		if step%sampleSteps == 0 {
			printSample(world, physics, player, float64(step)*fixedDT)
		}
	}
	return nil
}

func buildWorld(w *ecs.World) (ecs.Entity, error) {
	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		return 0, err
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, err
	}

	for _, wall := range level.Walls {
		e := w.CreateEntity()
		category := component.CategorySolid
		if wall.Grabbable {
			category |= component.CategoryGrabWall
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: wall.X, Y: wall.Y}); err != nil {
			return 0, err
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width: wall.Width, Height: wall.Height, Mode: component.BodyStatic,
		}); err != nil {
			return 0, err
		}
		if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category}); err != nil {
			return 0, err
		}
	}

	for _, plat := range level.Platforms {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: plat.FromX, Y: plat.FromY}); err != nil {
			return 0, err
		}
		if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
			FromX: plat.FromX, FromY: plat.FromY,
			ToX: plat.ToX, ToY: plat.ToY,
			Speed: plat.Speed, Forward: true,
		}); err != nil {
			return 0, err
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width: plat.Width, Height: plat.Height, Mode: component.BodyKinematic,
		}); err != nil {
			return 0, err
		}
		if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.CategoryPlatform | component.CategorySolid,
		}); err != nil {
			return 0, err
		}
	}

	player := w.CreateEntity()
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: level.Spawn.X, Y: level.Spawn.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.MovementComponent.Kind(), &component.Movement{
		Config: spec.MovementConfig(),
		State:  motion.NewState(),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: spec.Collider.Width, Height: spec.Collider.Height,
		Mass: spec.Mass, Mode: component.BodyDynamic, FixedRotation: true,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, err
	}
	return player, nil
}

func printSample(w *ecs.World, physics *system.PhysicsSystem, player ecs.Entity, t float64) {
	bodyComp, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok || bodyComp.Body == nil {
		return
	}
	mov, ok := ecs.Get(w, player, component.MovementComponent.Kind())
	if !ok {
		return
	}

	pos := bodyComp.Body.Position()
	vel := bodyComp.Body.Velocity()
	platform := "-"
	if id, attached := physics.Tracker().Attached(uint64(player)); attached {
		platform = fmt.Sprintf("%d", id)
	}
	fmt.Fprintf(os.Stdout, "%.2f\t%.1f\t%.1f\t%.1f\t%.1f\t%t\t%s\n",
		t, pos.X, pos.Y, vel.X, vel.Y, mov.State.GroundedLastFrame, platform)
}
