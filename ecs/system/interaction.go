package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/session"
	"go.uber.org/zap"
)

const defaultChestLoot = "potion"

// DialogueSource loads the lines of a character script.
type DialogueSource interface {
	Load(name string) ([]dialogue.Line, error)
}

// Interactor resolves an Interact command against the interaction zones
// placed on the previous tick.
type Interactor struct {
	session *session.Session
	scripts DialogueSource
	effects *EffectRunner
	log     *zap.Logger
}

func NewInteractor(sess *session.Session, scripts DialogueSource, effects *EffectRunner, log *zap.Logger) *Interactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{session: sess, scripts: scripts, effects: effects, log: log}
}

// Interact applies the effect of every eligible interactable whose position
// lies inside a zone, in entity order, and returns how many were used.
// Processing stops as soon as a dialogue begins.
func (r *Interactor) Interact(w *ecs.World) int {
	if w == nil || r.session == nil {
		return 0
	}

	var zones []common.Rect
	ecs.ForEach(w, component.InteractionZoneComponent.Kind(), func(_ ecs.Entity, z *component.InteractionZone) {
		zones = append(zones, z.Rect)
	})

	used := 0
	for _, zone := range zones {
		ecs.ForEach2(w, component.PositionComponent.Kind(), component.InteractableComponent.Kind(), func(e ecs.Entity, pos *component.Position, it *component.Interactable) {
			if r.session.State() != session.Running {
				return
			}
			if !zone.Contains(pos.X, pos.Y) || !it.Available() {
				return
			}
			r.apply(w, e, it)
			used++
		})
	}
	return used
}

func (r *Interactor) apply(w *ecs.World, e ecs.Entity, it *component.Interactable) {
	it.Interact()
	result := EffectResult{Kind: it.Kind.String(), Count: it.Count}
	r.runScript(e, it, &result)

	events := w.Events()
	switch it.Kind {
	case component.InteractableChest:
		if result.Item == "" {
			result.Item = defaultChestLoot
		}
		r.log.Info("chest opened", zap.Stringer("entity", e), zap.String("item", result.Item))
		events.Push(ecs.Event{Type: EventChestOpened, Entity: e, Data: result})
	case component.InteractablePickup:
		r.log.Info("item picked up", zap.Stringer("entity", e), zap.String("item", result.Item))
		events.Push(ecs.Event{Type: EventItemPickedUp, Entity: e, Data: result})
	case component.InteractableLever:
		result.On = it.Count%2 == 1
		r.log.Info("lever toggled", zap.Stringer("entity", e), zap.Bool("on", result.On))
		events.Push(ecs.Event{Type: EventLeverToggled, Entity: e, Data: result})
	case component.InteractableDestroyedOnUse:
		r.log.Info("object destroyed", zap.Stringer("entity", e))
		events.Push(ecs.Event{Type: EventObjectDestroyed, Entity: e, Data: result})
		w.MarkForDeletion(e)
	case component.InteractableCharacter:
		r.talk(w, e)
	default:
		r.log.Warn("interactable kind has no effect", zap.Stringer("entity", e), zap.Stringer("kind", it.Kind))
	}
}

func (r *Interactor) runScript(e ecs.Entity, it *component.Interactable, result *EffectResult) {
	if it.Script == "" || r.effects == nil {
		return
	}
	out, err := r.effects.Run(it.Script, it)
	if err != nil {
		r.log.Warn("effect script failed, using built-in effect", zap.Stringer("entity", e), zap.String("script", it.Script), zap.Error(err))
		return
	}
	if out.Item != "" {
		result.Item = out.Item
	}
	result.Message = out.Message
}

func (r *Interactor) talk(w *ecs.World, e ecs.Entity) {
	dlg, ok := ecs.Get(w, e, component.DialogueComponent.Kind())
	if !ok {
		return
	}
	if r.scripts == nil {
		r.unavailable(w, e, dlg.Script, nil)
		return
	}
	lines, err := r.scripts.Load(dlg.Script)
	if err != nil || !r.session.BeginDialogue(lines) {
		r.unavailable(w, e, dlg.Script, err)
		return
	}
	dlg.Show = true
	r.log.Debug("dialogue started", zap.Stringer("entity", e), zap.String("script", dlg.Script), zap.Int("lines", len(lines)))
	w.Events().Push(ecs.Event{Type: EventDialogueStarted, Entity: e, Data: len(lines)})
}

func (r *Interactor) unavailable(w *ecs.World, e ecs.Entity, script string, err error) {
	r.log.Warn("no dialogue available", zap.Stringer("entity", e), zap.String("script", script), zap.Error(err))
	w.Events().Push(ecs.Event{Type: EventDialogueUnavailable, Entity: e, Data: script})
}

// EndDialogue hides every dialogue that was on screen.
func (r *Interactor) EndDialogue(w *ecs.World) {
	ecs.ForEach(w, component.DialogueComponent.Kind(), func(e ecs.Entity, dlg *component.Dialogue) {
		if !dlg.Show {
			return
		}
		dlg.Show = false
		w.Events().Push(ecs.Event{Type: EventDialogueEnded, Entity: e})
	})
}
