package component

// GravityScale scales world gravity for a dynamic body.
// 1.0 = normal gravity, 0.0 = no gravity (anti-gravity wall grab).
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
