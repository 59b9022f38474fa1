package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const dialogueHeight = 200

var dialogueFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// toScreen maps world coordinates, whose origin is the screen center, to
// screen pixels.
func (g *Game) toScreen(x, y int) (float32, float32) {
	return float32(x + g.width/2), float32(y + g.height/2)
}

func (g *Game) drawWorld(screen *ebiten.Image, view game.View) {
	screen.Fill(color.NRGBA{R: 0x1d, G: 0x2b, B: 0x1f, A: 0xff})

	for _, d := range view.Drawables {
		drawn := false
		if d.Sprite != nil && d.Sprite.Sheet >= 0 && d.Sprite.Sheet < len(g.sheets) && g.sheets[d.Sprite.Sheet] != nil {
			sub := g.sheets[d.Sprite.Sheet].SubImage(d.Sprite.Source).(*ebiten.Image)
			w, h := d.Sprite.Source.Dx(), d.Sprite.Source.Dy()
			x, y := g.toScreen(d.Position.X-w/2, d.Position.Y-h/2)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(sub, op)
			drawn = true
		}
		if d.Box != nil && (!drawn || g.drawBoxes) {
			g.strokeRect(screen, *d.Box, boxColor(drawn), drawn)
		}
		if d.Zone != nil && g.drawZones {
			g.strokeRect(screen, *d.Zone, colornames.Gold, true)
		}
	}
}

func boxColor(outline bool) color.Color {
	if outline {
		return colornames.Red
	}
	return colornames.Lightsteelblue
}

func (g *Game) strokeRect(screen *ebiten.Image, r common.Rect, clr color.Color, outline bool) {
	x, y := g.toScreen(r.X, r.Y)
	if outline {
		vector.StrokeRect(screen, x, y, float32(r.W), float32(r.H), 1, clr, false)
		return
	}
	vector.DrawFilledRect(screen, x, y, float32(r.W), float32(r.H), clr, false)
}

// drawDialogue rasterizes the current line into an offscreen panel only when
// the text changed since the last frame.
func (g *Game) drawDialogue(screen *ebiten.Image, view game.View) {
	text := view.DialogueText()
	if text == "" {
		g.sim.RefreshDialogue("")
		return
	}
	if g.dialogue == nil {
		g.dialogue = ebiten.NewImage(g.width, dialogueHeight)
	}
	if g.sim.RefreshDialogue(text) {
		g.dialogue.Fill(color.NRGBA{A: 0xd0})
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(24, 24)
		op.LineSpacing = 18
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(g.dialogue, text, dialogueFace, op)

		hint := &ebtext.DrawOptions{}
		hint.GeoM.Translate(float64(g.width-120), dialogueHeight-24)
		hint.ColorScale.ScaleWithColor(colornames.Gray)
		ebtext.Draw(g.dialogue, "Z to continue", dialogueFace, hint)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(g.height-dialogueHeight))
	screen.DrawImage(g.dialogue, op)
}

func (g *Game) drawHUD(screen *ebiten.Image, view game.View) {
	msg := fmt.Sprintf("TPS: %.1f  state: %s  entities: %d  spawn: %s",
		ebiten.ActualTPS(), view.State, len(view.Drawables), g.keys.Spawner.prefab())
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

