package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/session"
	"go.uber.org/zap"
)

// DefaultPlayerSpeed is the speed a Move intent sets on controlled movers.
const DefaultPlayerSpeed = 5

// InputSystem translates the tick's input frame into velocity and facing
// changes and drives the Gamestate machine. Interact is handed to the
// Interactor while Running and advances the dialogue while in Dialogue.
type InputSystem struct {
	feed       *input.Buffer
	session    *session.Session
	interactor *Interactor
	speed      int
	log        *zap.Logger
}

func NewInputSystem(feed *input.Buffer, sess *session.Session, interactor *Interactor, speed int, log *zap.Logger) *InputSystem {
	if speed <= 0 {
		speed = DefaultPlayerSpeed
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InputSystem{feed: feed, session: sess, interactor: interactor, speed: speed, log: log}
}

func (s *InputSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []component.ComponentID{
			component.KeyboardControlledComponent.ID(),
			component.PositionComponent.ID(),
			component.InteractionZoneComponent.ID(),
			component.DialogueComponent.ID(),
		},
		Writes: []component.ComponentID{
			component.VelocityComponent.ID(),
			component.FacingComponent.ID(),
			component.InteractableComponent.ID(),
			component.DialogueComponent.ID(),
		},
		Exclusive: true,
	}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.feed == nil || s.session == nil {
		return
	}

	frame := s.feed.Take()
	before := s.session.State()

	switch before {
	case session.Running:
		for _, intent := range frame.Intents {
			s.apply(w, intent)
		}
		switch frame.Command {
		case input.CommandInteract:
			if s.interactor != nil {
				s.interactor.Interact(w)
			}
		case input.CommandMenu:
			s.session.Transition(session.Menu)
		case input.CommandPause:
			s.session.Transition(session.Paused)
		}
	case session.Dialogue:
		if frame.Command == input.CommandInteract && s.session.AdvanceDialogue() && s.interactor != nil {
			s.interactor.EndDialogue(w)
		}
	case session.Menu:
		if frame.Command == input.CommandMenu || frame.Command == input.CommandResume {
			s.session.Transition(session.Running)
		}
	case session.Paused:
		if frame.Command == input.CommandPause || frame.Command == input.CommandResume {
			s.session.Transition(session.Running)
		}
	}

	if before == session.Running && s.session.State() != session.Running {
		s.halt(w)
	}
}

func (s *InputSystem) apply(w *ecs.World, intent input.Intent) {
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.FacingComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, facing *component.Facing) {
		switch intent.Kind {
		case input.IntentMove:
			vel.Speed = s.speed
			vel.Push(intent.Direction)
		case input.IntentStop:
			vel.Stop(intent.Direction)
		}
		if d, ok := vel.Front(); ok {
			facing.Direction = d
		}
	}, ecs.With(component.KeyboardControlledComponent.Kind()))
}

// halt drops queued directions so keys released while input is ignored do not
// leave a mover walking once play resumes.
func (s *InputSystem) halt(w *ecs.World) {
	ecs.ForEach(w, component.VelocityComponent.Kind(), func(e ecs.Entity, vel *component.Velocity) {
		vel.Clear()
	}, ecs.With(component.KeyboardControlledComponent.Kind()))
}
