package component

// MovementAnimation cycles through the frames of the active movement
// direction.
type MovementAnimation struct {
	Frame int
	Up    []Sprite
	Down  []Sprite
	Left  []Sprite
	Right []Sprite
}

// Frames returns the sequence for d.
func (m *MovementAnimation) Frames(d Direction) []Sprite {
	switch d {
	case DirectionUp:
		return m.Up
	case DirectionDown:
		return m.Down
	case DirectionLeft:
		return m.Left
	case DirectionRight:
		return m.Right
	}
	return nil
}

var MovementAnimationComponent = NewComponent[MovementAnimation]()

// EntityAnimation plays once, driven by the owner's interaction counter.
type EntityAnimation struct {
	Frame  int
	Frames []Sprite
}

var EntityAnimationComponent = NewComponent[EntityAnimation]()
