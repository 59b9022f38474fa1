package game

import (
	"slices"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/session"
)

// Drawable is the render-side copy of one positioned entity.
type Drawable struct {
	Entity   ecs.Entity
	Position component.Position
	Sprite   *component.Sprite
	Box      *common.Rect
	Zone     *common.Rect
}

// View is a read-only snapshot for the renderer, taken between ticks.
type View struct {
	Drawables []Drawable
	State     session.State
	Line      dialogue.Line
	Talking   bool
}

// View copies everything the renderer needs. Drawables are ordered back to
// front by their Y position.
func (s *Simulation) View() View {
	v := View{State: s.session.State()}
	v.Line, v.Talking = s.session.CurrentLine()

	ecs.ForEach(s.world, component.PositionComponent.Kind(), func(e ecs.Entity, pos *component.Position) {
		d := Drawable{Entity: e, Position: *pos}
		if sprite, ok := ecs.Get(s.world, e, component.SpriteComponent.Kind()); ok {
			cp := *sprite
			d.Sprite = &cp
		}
		if box, ok := ecs.Get(s.world, e, component.CollisionBoxComponent.Kind()); ok {
			r := box.Rect(*pos)
			d.Box = &r
		}
		if zone, ok := ecs.Get(s.world, e, component.InteractionZoneComponent.Kind()); ok {
			r := zone.Rect
			d.Zone = &r
		}
		v.Drawables = append(v.Drawables, d)
	})

	slices.SortStableFunc(v.Drawables, func(a, b Drawable) int {
		return a.Position.Y - b.Position.Y
	})
	return v
}

// DialogueText is the text the renderer should show for the current line.
func (v View) DialogueText() string {
	if !v.Talking {
		return ""
	}
	return v.Line.Speaker + ": " + v.Line.Text
}

// RefreshDialogue records text as the last rasterized dialogue and reports
// whether the renderer has to rasterize it again.
func (s *Simulation) RefreshDialogue(text string) bool {
	return s.session.SetRenderedText(text)
}
