package motion

import "github.com/jakecoffman/cp"

// PlatformSource resolves an entity id to its current platform velocity.
// ok=false means the entity is not a recognized moving platform (or no
// longer exists); the tracker treats that as "no platform".
type PlatformSource interface {
	PlatformVelocity(id uint64) (cp.Vector, bool)
}

// ContactTracker maintains, per character, which moving platform it is
// physically resting on. The reference is a plain id into externally owned
// state; the tracker never mutates the platform itself.
type ContactTracker struct {
	source   PlatformSource
	attached map[uint64]uint64
}

func NewContactTracker(source PlatformSource) *ContactTracker {
	return &ContactTracker{
		source:   source,
		attached: make(map[uint64]uint64),
	}
}

// OnContactBegin records other as the character's attached platform when it
// exposes the platform capability, replacing any previous attachment.
// Unrelated contacts are ignored silently.
func (t *ContactTracker) OnContactBegin(character, other uint64) {
	if t == nil || t.source == nil || character == 0 || other == 0 {
		return
	}
	if _, ok := t.source.PlatformVelocity(other); !ok {
		return
	}
	t.attached[character] = other
}

// FrameEnd is called once per fixed step after grounded/grabbing are known.
// Without contact this step, the attachment is dropped so stale platform
// velocity cannot leak into relative-velocity math once airborne.
func (t *ContactTracker) FrameEnd(character uint64, inContact bool) {
	if t == nil {
		return
	}
	if !inContact {
		delete(t.attached, character)
	}
}

// PlatformVelocity returns the attached platform's current velocity, or the
// zero vector when nothing is attached.
func (t *ContactTracker) PlatformVelocity(character uint64) cp.Vector {
	if t == nil || t.source == nil {
		return cp.Vector{}
	}
	id, ok := t.attached[character]
	if !ok {
		return cp.Vector{}
	}
	v, ok := t.source.PlatformVelocity(id)
	if !ok {
		// Platform despawned under us.
		delete(t.attached, character)
		return cp.Vector{}
	}
	return v
}

// Attached returns the attached platform id, if any.
func (t *ContactTracker) Attached(character uint64) (uint64, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.attached[character]
	return id, ok
}

// Forget drops all state for a destroyed character.
func (t *ContactTracker) Forget(character uint64) {
	if t == nil {
		return
	}
	delete(t.attached, character)
}
