package component

import (
	"fmt"
	"strings"
)

// Direction is one of the four facing/movement directions.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Vertical reports whether d lies on the up/down axis.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// Delta returns the offset of a step of the given length in direction d.
func (d Direction) Delta(step int) (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -step
	case DirectionDown:
		return 0, step
	case DirectionLeft:
		return -step, 0
	case DirectionRight:
		return step, 0
	}
	return 0, 0
}

// ParseDirection maps a config name to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("component: unknown direction %q", s)
}
