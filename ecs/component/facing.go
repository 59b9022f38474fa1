package component

// Facing mirrors the mover's active direction and orients its interaction
// zone.
type Facing struct {
	Direction Direction
}

var FacingComponent = NewComponent[Facing]()
