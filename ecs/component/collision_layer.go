package component

// CollisionLayer declares an entity's collision category and mask so the
// physics system can filter contacts and queries between groups.
type CollisionLayer struct {
	// Category is this entity's category bits. Zero is treated as 1.
	Category uint
	// Mask is the categories this entity collides with. Zero means all.
	Mask uint
}

// Well-known categories used by the level builder.
const (
	CategorySolid    uint = 1 << 0
	CategoryGrabWall uint = 1 << 1
	CategoryPlatform uint = 1 << 2
	CategoryPlayer   uint = 1 << 3
)

var CollisionLayerComponent = NewComponent[CollisionLayer]()
