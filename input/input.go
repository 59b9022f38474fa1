// Package input defines the per-tick input feed consumed by the simulation.
package input

import (
	"sync"

	"github.com/milk9111/overworld/ecs/component"
)

// IntentKind distinguishes starting and stopping movement.
type IntentKind uint8

const (
	IntentMove IntentKind = iota
	IntentStop
)

// Intent is a single movement request.
type Intent struct {
	Kind      IntentKind
	Direction component.Direction
}

// Move returns an intent to start moving in d.
func Move(d component.Direction) Intent {
	return Intent{Kind: IntentMove, Direction: d}
}

// Stop returns an intent to stop moving in d.
func Stop(d component.Direction) Intent {
	return Intent{Kind: IntentStop, Direction: d}
}

// Command is a high-level player command. At most one is delivered per tick.
type Command uint8

const (
	CommandNone Command = iota
	CommandInteract
	CommandMenu
	CommandPause
	CommandResume
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandInteract:
		return "interact"
	case CommandMenu:
		return "menu"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	}
	return "unknown"
}

// Frame is everything the input device layer delivers for one tick.
type Frame struct {
	Intents []Intent
	Command Command
}

// Buffer hands the current frame to the input translator. Load replaces any
// frame that was not consumed.
type Buffer struct {
	mu    sync.Mutex
	frame Frame
}

// Load installs the frame for the coming tick.
func (b *Buffer) Load(f Frame) {
	b.mu.Lock()
	b.frame = f
	b.mu.Unlock()
}

// Take returns the loaded frame and empties the buffer.
func (b *Buffer) Take() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.frame
	b.frame = Frame{}
	return f
}
