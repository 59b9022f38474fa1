package component

import "image"

// Sprite selects a region of a spritesheet. Sheet indexes the renderer's
// texture table.
type Sprite struct {
	Sheet  int
	Source image.Rectangle
}

var SpriteComponent = NewComponent[Sprite]()
