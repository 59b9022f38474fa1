package component

// Position is a world-space integer point.
type Position struct {
	X int
	Y int
}

// Step returns the position one step of the given length away in direction d.
func (p Position) Step(d Direction, step int) Position {
	dx, dy := d.Delta(step)
	return Position{X: p.X + dx, Y: p.Y + dy}
}

var PositionComponent = NewComponent[Position]()
