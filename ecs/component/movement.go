package component

import "github.com/hollis909/ledgerunner/motion"

// Movement pairs a character's immutable movement tuning with its mutable
// per-step state. The state is owned by this entity alone and lives exactly
// as long as it does.
type Movement struct {
	Config motion.Config
	State  motion.State
}

var MovementComponent = NewComponent[Movement]()
