package component

// Capsule is the collision capsule of a character. Transform.Position is the
// capsule center.
type Capsule struct {
	Radius     float64
	HalfHeight float64
}

var CapsuleComponent = NewComponent[Capsule]()
