package component

import "github.com/hajimehoshi/ebiten/v2"

// Animator receives named float parameters from the movement layer and maps
// them to a clip. Clips here are single images; the selection thresholds are
// what matter, not playback.
type Animator struct {
	Params  map[string]float64
	Clips   map[string]*ebiten.Image
	Current string
}

// Parameter names published by the movement system.
const (
	AnimParamSpeed  = "speed"  // |relative horizontal velocity|
	AnimParamVSpeed = "vspeed" // relative vertical velocity, sentinel while clinging
)

var AnimatorComponent = NewComponent[Animator]()
