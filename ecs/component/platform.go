package component

// Platform marks a kinematic moving platform patrolling between two points
// at constant speed. Its presence is the "platform capability" the contact
// tracker checks for.
type Platform struct {
	FromX, FromY float64
	ToX, ToY     float64
	Speed        float64
	// Forward is the current patrol direction (from -> to when true).
	Forward bool
}

var PlatformComponent = NewComponent[Platform]()
