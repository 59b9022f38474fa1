// Package session holds the process-wide game state shared by systems: the
// Gamestate mode and the dialogue queue. Exactly one system writes it per
// tick; every method is safe for concurrent readers.
package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/milk9111/overworld/dialogue"
	"go.uber.org/zap"
)

// State is the global game mode.
type State uint8

const (
	Running State = iota
	Paused
	Menu
	Dialogue
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Menu:
		return "menu"
	case Dialogue:
		return "dialogue"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Session is the process-wide state.
type Session struct {
	mu       sync.Mutex
	state    State
	queue    []dialogue.Line
	rendered string
	log      *zap.Logger
}

// New returns a session in the Running state.
func New(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{state: Running, log: log}
}

// State returns the current mode.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transition switches to the given mode. Leaving Dialogue drops any lines
// still queued.
func (s *Session) Transition(to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(to)
}

func (s *Session) transition(to State) {
	if s.state == to {
		return
	}
	s.log.Debug("gamestate transition", zap.Stringer("from", s.state), zap.Stringer("to", to))
	if s.state == Dialogue {
		s.queue = nil
	}
	s.state = to
}

// BeginDialogue queues lines and enters Dialogue. It reports false, and
// leaves the state alone, when there is nothing to say.
func (s *Session) BeginDialogue(lines []dialogue.Line) bool {
	if len(lines) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(Dialogue)
	s.queue = slices.Clone(lines)
	return true
}

// AdvanceDialogue pops the front line. When the queue runs dry the session
// returns to Running and ended is true. Outside Dialogue it does nothing.
func (s *Session) AdvanceDialogue() (ended bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Dialogue {
		return false
	}
	if len(s.queue) > 0 {
		s.queue = s.queue[1:]
	}
	if len(s.queue) == 0 {
		s.transition(Running)
		return true
	}
	return false
}

// CurrentLine returns the line being shown.
func (s *Session) CurrentLine() (dialogue.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Dialogue || len(s.queue) == 0 {
		return dialogue.Line{}, false
	}
	return s.queue[0], true
}

// QueueLen returns how many lines remain, the current one included.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// RenderedText returns the text the renderer last rasterized.
func (s *Session) RenderedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

// SetRenderedText records text as rasterized and reports whether it differs
// from the previous value.
func (s *Session) SetRenderedText(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rendered == text {
		return false
	}
	s.rendered = text
	return true
}
