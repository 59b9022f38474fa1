package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/input"
)

var arrowKeys = []struct {
	key ebiten.Key
	dir component.Direction
}{
	{ebiten.KeyArrowUp, component.DirectionUp},
	{ebiten.KeyArrowDown, component.DirectionDown},
	{ebiten.KeyArrowLeft, component.DirectionLeft},
	{ebiten.KeyArrowRight, component.DirectionRight},
}

type spawner uint8

const (
	spawnChest spawner = iota
	spawnFruit
)

func (s spawner) prefab() string {
	if s == spawnFruit {
		return "fruit.yaml"
	}
	return "chest.yaml"
}

// Keyboard turns this frame's key edges into an input frame plus the local
// debug toggles that never reach the simulation.
type Keyboard struct {
	Quit       bool
	ToggleBox  bool
	ToggleZone bool
	Spawner    spawner
	Click      bool
	ClickX     int
	ClickY     int

	// pending is a command raised from outside the key poll, such as a menu
	// button.
	pending input.Command
}

// Raise queues cmd for the next polled frame.
func (k *Keyboard) Raise(cmd input.Command) {
	k.pending = cmd
}

// Poll reads key edges for this frame.
func (k *Keyboard) Poll() input.Frame {
	var frame input.Frame

	k.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	k.ToggleBox = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	k.ToggleZone = inpututil.IsKeyJustPressed(ebiten.KeyF2)

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		k.Spawner = spawnChest
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		k.Spawner = spawnFruit
	}

	for _, a := range arrowKeys {
		if inpututil.IsKeyJustPressed(a.key) {
			frame.Intents = append(frame.Intents, input.Move(a.dir))
		}
		if inpututil.IsKeyJustReleased(a.key) {
			frame.Intents = append(frame.Intents, input.Stop(a.dir))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		frame.Command = input.CommandInteract
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		frame.Command = input.CommandMenu
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyKP0):
		frame.Command = input.CommandPause
	case inpututil.IsKeyJustPressed(ebiten.KeyKP1):
		frame.Command = input.CommandResume
	}
	if k.pending != input.CommandNone {
		frame.Command = k.pending
		k.pending = input.CommandNone
	}

	k.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if k.Click {
		k.ClickX, k.ClickY = ebiten.CursorPosition()
	}
	return frame
}
