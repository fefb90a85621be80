package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/ecs/system"
	"github.com/hollis909/ledgerunner/prefabs"
)

const (
	baseWidth  = 640
	baseHeight = 480

	// fixedDT is the movement/physics step. Two steps per 60 Hz tick keeps
	// the contact solver stable under fast platforms.
	fixedDT = 1.0 / 120.0
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	watcher   *prefabs.Watcher

	accumulator float64
}

func NewGame(debug, watch bool) (*Game, error) {
	world := ecs.NewWorld()

	physics := system.NewPhysicsSystem()
	render := system.NewRenderSystem(physics.Tracker())
	render.Debug = debug

	scheduler := ecs.NewScheduler()
	scheduler.AddFrame(system.NewInputSystem())
	scheduler.AddFrame(system.NewAnimationSystem())
	scheduler.AddFrame(render)
	// Platforms move first so riders see this step's platform velocity.
	scheduler.AddFixed(system.NewPlatformSystem(physics))
	scheduler.AddFixed(system.NewMovementSystem(physics))
	scheduler.AddFixed(physics)

	if err := BuildLevel(world); err != nil {
		return nil, fmt.Errorf("game: build level: %w", err)
	}

	g := &Game{
		world:     world,
		scheduler: scheduler,
		physics:   physics,
		render:    render,
	}

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			// No disk prefabs directory is fine; embedded tuning still works.
			log.Printf("game: prefab watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.drainPrefabEvents()

	g.scheduler.Update(g.world)

	g.accumulator += 1.0 / float64(ebiten.TPS())
	for g.accumulator >= fixedDT {
		g.scheduler.FixedUpdate(g.world, fixedDT)
		g.accumulator -= fixedDT
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// drainPrefabEvents applies edited player tuning without restarting. Only the
// config is replaced; the movement state and the body are untouched.
func (g *Game) drainPrefabEvents() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			reload = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("game: prefab watch: %v", err)
			}
		default:
			if reload {
				g.reloadPlayerTuning()
			}
			return
		}
	}
}

func (g *Game) reloadPlayerTuning() {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("game: reload player tuning: %v", err)
		return
	}
	player, ok := g.world.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if mov, ok := ecs.Get(g.world, player, component.MovementComponent.Kind()); ok {
		mov.Config = spec.MovementConfig()
		log.Printf("game: reloaded player tuning from player.yaml")
	}
}
