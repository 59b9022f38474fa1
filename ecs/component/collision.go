package component

import "github.com/milk9111/overworld/common"

// CollisionBox is an axis-aligned box centered on the owner's position.
type CollisionBox struct {
	Width  uint32
	Height uint32
}

// Flip exchanges width and height.
func (c *CollisionBox) Flip() {
	c.Width, c.Height = c.Height, c.Width
}

// Rect returns the box placed around p.
func (c CollisionBox) Rect(p Position) common.Rect {
	return common.FromCenter(p.X, p.Y, c.Width, c.Height)
}

var CollisionBoxComponent = NewComponent[CollisionBox]()

// FlagForMovement stages a validated move until the commit pass of the same
// tick applies it.
type FlagForMovement struct {
	Moving bool
	Target Position
}

var FlagForMovementComponent = NewComponent[FlagForMovement]()
