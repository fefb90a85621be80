package component

// Input stores sampled input state for an entity. JumpPressed is an edge
// latch: the input system sets it at the sampling rate and only the fixed
// step clears it, so a press between physics steps is never lost.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
