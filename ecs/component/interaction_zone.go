package component

import "github.com/milk9111/overworld/common"

// InteractionZone is the probe rectangle placed in front of its owner. An
// unflipped zone is laid out for vertical facing.
type InteractionZone struct {
	Rect    common.Rect
	Flipped bool
}

// Flip swaps the probe's width and height and toggles Flipped. Two flips
// restore the original zone.
func (z *InteractionZone) Flip() {
	z.Rect.Flip()
	z.Flipped = !z.Flipped
}

var InteractionZoneComponent = NewComponent[InteractionZone]()
