package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollis909/ledgerunner/common"
	"github.com/hollis909/ledgerunner/ecs"
	"github.com/hollis909/ledgerunner/ecs/component"
	"github.com/hollis909/ledgerunner/motion"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePlatform
)

// PhysicsSystem owns the Chipmunk space: it builds bodies for entities,
// steps the simulation, syncs transforms back, and surfaces the contact and
// query hooks the movement core needs (platform contact-begin events, the
// grab probe, platform velocity lookup).
type PhysicsSystem struct {
	space         *cp.Space
	world         *ecs.World
	tracker       *motion.ContactTracker
	bodies        map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	handlersReady bool
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	mode  component.BodyMode
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	ps := &PhysicsSystem{
		space:         space,
		bodies:        make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
	ps.tracker = motion.NewContactTracker(ps)
	return ps
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Tracker returns the contact tracker fed by this space's contact events.
func (ps *PhysicsSystem) Tracker() *motion.ContactTracker {
	if ps == nil {
		return nil
	}
	return ps.tracker
}

// PlatformVelocity implements motion.PlatformSource: an entity counts as a
// platform only while it is alive, carries the Platform component, and has
// a built body.
func (ps *PhysicsSystem) PlatformVelocity(id uint64) (cp.Vector, bool) {
	if ps == nil || ps.world == nil {
		return cp.Vector{}, false
	}
	e := ecs.Entity(id)
	if !ps.world.IsAlive(e) || !ecs.Has(ps.world, e, component.PlatformComponent.Kind()) {
		return cp.Vector{}, false
	}
	info := ps.bodies[e]
	if info == nil || info.body == nil {
		return cp.Vector{}, false
	}
	return info.body.Velocity(), true
}

// GrabSurfaceAt implements motion.GrabProbe with a point query of the given
// radius, filtered to the wall-grab categories. An empty mask finds nothing.
func (ps *PhysicsSystem) GrabSurfaceAt(center cp.Vector, radius float64, mask uint) bool {
	if ps == nil || ps.space == nil || mask == 0 || radius <= 0 {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	info := ps.space.PointQueryNearest(center, radius, filter)
	return info != nil && info.Shape != nil
}

func (ps *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}
	ps.world = w

	ps.ensureHandlers()
	ps.cleanupBodies(w)
	ps.syncBodies(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypePlatform)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapeToEntity[shapeA]
		b, okB := sys.shapeToEntity[shapeB]
		if !okA || !okB || sys.world == nil {
			return true
		}
		player, platform := a, b
		if ecs.Has(sys.world, a, component.PlatformComponent.Kind()) {
			player, platform = b, a
		}
		sys.tracker.OnContactBegin(uint64(player), uint64(platform))
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.bodies[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shape
			}
			continue
		}

		info := ps.buildBody(w, e, transform, bodyComp)
		if info == nil {
			continue
		}
		ps.bodies[e] = info
		ps.shapeToEntity[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) buildBody(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	center := cp.Vector{X: transform.X, Y: transform.Y}

	var body *cp.Body
	switch bodyComp.Mode {
	case component.BodyStatic:
		body = ps.space.StaticBody
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
		body.SetPosition(center)
		ps.space.AddBody(body)
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := cp.MomentForBox(mass, width, height)
		if bodyComp.FixedRotation {
			moment = math.Inf(1)
		}
		body = cp.NewBody(mass, moment)
		body.SetPosition(center)
		ps.space.AddBody(body)

		if ecs.Has(w, e, component.GravityScaleComponent.Kind()) {
			entity := e
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
				scale := 1.0
				if ps.world != nil {
					if gs, ok := ecs.Get(ps.world, entity, component.GravityScaleComponent.Kind()); ok {
						scale = gs.Scale
					}
				}
				cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
			})
		}
	}

	var shape *cp.Shape
	if bodyComp.Mode == component.BodyStatic {
		bb := cp.BB{
			L: center.X - width/2,
			B: center.Y - height/2,
			R: center.X + width/2,
			T: center.Y + height/2,
		}
		shape = cp.NewBox2(body, bb, 0)
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(ps.collisionTypeFor(w, e))
	shape.SetFilter(ps.filterFor(w, e))
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape, mode: bodyComp.Mode}
}

func (ps *PhysicsSystem) collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.PlatformComponent.Kind()):
		return collisionTypePlatform
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) filterFor(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	category := uint(1)
	mask := cp.ALL_CATEGORIES
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		info := ps.bodies[e]
		if info == nil || info.mode == component.BodyStatic {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupBodies(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapeToEntity, info.shape)
		}
		if info.body != nil && info.mode != component.BodyStatic {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
		ps.tracker.Forget(uint64(e))
	}
}
