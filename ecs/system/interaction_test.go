package system

import (
	"errors"
	"testing"

	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/session"
	"github.com/stretchr/testify/require"
)

// The player at the origin facing down places its zone centered on (0, 23).
var inFront = component.Position{X: 0, Y: 23}

func spawnInteractable(t *testing.T, w *ecs.World, at component.Position, kind component.InteractableKind, max int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	add(t, w, e, component.PositionComponent, &at)
	add(t, w, e, component.InteractableComponent, &component.Interactable{Kind: kind, Max: max})
	return e
}

func interactable(t *testing.T, w *ecs.World, e ecs.Entity) *component.Interactable {
	t.Helper()
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	require.True(t, ok)
	return it
}

func TestChestOpensOnce(t *testing.T) {
	h := newHarness(nil)
	spawnPlayer(t, h.world, 0, 0)
	chest := spawnInteractable(t, h.world, inFront, component.InteractableChest, 1)
	h.tick(input.Frame{})

	events := h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, 1, interactable(t, h.world, chest).Count)
	require.Equal(t, []string{EventChestOpened}, eventTypes(events))
	require.Equal(t, "potion", events[0].Data.(EffectResult).Item)

	events = h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, 1, interactable(t, h.world, chest).Count)
	require.Empty(t, events)
}

func TestInteractRequiresPositionInsideZone(t *testing.T) {
	h := newHarness(nil)
	spawnPlayer(t, h.world, 0, 0)
	behind := spawnInteractable(t, h.world, component.Position{X: 0, Y: -23}, component.InteractableChest, 1)
	h.tick(input.Frame{})

	h.tick(input.Frame{Command: input.CommandInteract})
	require.Zero(t, interactable(t, h.world, behind).Count)
}

func TestUnlimitedInteractionsGrowWithoutBound(t *testing.T) {
	h := newHarness(nil)
	spawnPlayer(t, h.world, 0, 0)
	lever := spawnInteractable(t, h.world, inFront, component.InteractableLever, 0)
	h.tick(input.Frame{})

	var last []ecs.Event
	for i := 0; i < 25; i++ {
		last = h.tick(input.Frame{Command: input.CommandInteract})
	}
	require.Equal(t, 25, interactable(t, h.world, lever).Count)
	require.Equal(t, EventLeverToggled, last[0].Type)
	require.True(t, last[0].Data.(EffectResult).On)
}

func TestDestroyedOnUseIsRemovedAtTickEnd(t *testing.T) {
	h := newHarness(nil)
	spawnPlayer(t, h.world, 0, 0)
	crate := spawnInteractable(t, h.world, inFront, component.InteractableDestroyedOnUse, 1)
	h.tick(input.Frame{})

	events := h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, []string{EventObjectDestroyed}, eventTypes(events))
	require.False(t, ecs.IsAlive(h.world, crate))
}

func TestCharacterDialogueRoundTrip(t *testing.T) {
	lines := []dialogue.Line{
		{Speaker: "Reaper", Text: "Hello."},
		{Speaker: "Reaper", Text: "Nice weather."},
		{Speaker: "Reaper", Text: "Goodbye."},
	}
	h := newHarness(fakeScripts{"reaper.txt": lines})
	p := spawnPlayer(t, h.world, 0, 0)
	npc := spawnInteractable(t, h.world, inFront, component.InteractableCharacter, 0)
	add(t, h.world, npc, component.DialogueComponent, &component.Dialogue{Script: "reaper.txt"})
	h.tick(input.Frame{})

	events := h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, []string{EventDialogueStarted}, eventTypes(events))
	require.Equal(t, session.Dialogue, h.session.State())
	dlg, _ := ecs.Get(h.world, npc, component.DialogueComponent.Kind())
	require.True(t, dlg.Show)

	// Movement is ignored while talking.
	h.tick(input.Frame{Intents: []input.Intent{input.Move(component.DirectionLeft)}})
	require.Equal(t, component.Position{}, position(t, h.world, p))

	for i := 1; i < len(lines); i++ {
		h.tick(input.Frame{Command: input.CommandInteract})
		require.Equal(t, session.Dialogue, h.session.State())
	}
	events = h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, session.Running, h.session.State())
	require.Equal(t, []string{EventDialogueEnded}, eventTypes(events))
	require.False(t, dlg.Show)
	require.Equal(t, 1, interactable(t, h.world, npc).Count)
}

func TestMissingDialogueStaysRunning(t *testing.T) {
	h := newHarness(fakeScripts{})
	spawnPlayer(t, h.world, 0, 0)
	npc := spawnInteractable(t, h.world, inFront, component.InteractableCharacter, 0)
	add(t, h.world, npc, component.DialogueComponent, &component.Dialogue{Script: "nowhere.txt"})
	h.tick(input.Frame{})

	events := h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, session.Running, h.session.State())
	require.Equal(t, []string{EventDialogueUnavailable}, eventTypes(events))
}

func TestInteractionStopsAfterDialogueBegins(t *testing.T) {
	h := newHarness(fakeScripts{"a.txt": {{Speaker: "A", Text: "hi"}}})
	spawnPlayer(t, h.world, 0, 0)
	npc := spawnInteractable(t, h.world, inFront, component.InteractableCharacter, 0)
	add(t, h.world, npc, component.DialogueComponent, &component.Dialogue{Script: "a.txt"})
	chest := spawnInteractable(t, h.world, inFront, component.InteractableChest, 1)
	h.tick(input.Frame{})

	h.tick(input.Frame{Command: input.CommandInteract})
	require.Equal(t, session.Dialogue, h.session.State())
	require.Zero(t, interactable(t, h.world, chest).Count)
}

var errNoScript = errors.New("script not found")

type mapScripts map[string]string

func (m mapScripts) LoadScript(name string) ([]byte, error) {
	src, ok := m[name]
	if !ok {
		return nil, errNoScript
	}
	return []byte(src), nil
}

func TestChestEffectScript(t *testing.T) {
	h := newHarness(nil)
	effects := NewEffectRunner(mapScripts{
		"chest.tengo": `item = kind == "chest" ? "sword" : "nothing"; message = "found after " + string(count)`,
		"broken.tengo": `item = `,
	})
	interactor := NewInteractor(h.session, nil, effects, nil)
	spawnPlayer(t, h.world, 0, 0)
	scripted := spawnInteractable(t, h.world, inFront, component.InteractableChest, 1)
	interactable(t, h.world, scripted).Script = "chest.tengo"
	broken := spawnInteractable(t, h.world, inFront, component.InteractableChest, 1)
	interactable(t, h.world, broken).Script = "broken.tengo"
	h.tick(input.Frame{})

	require.Equal(t, 2, interactor.Interact(h.world))
	events := h.world.Events().Drain()
	require.Len(t, events, 2)

	first := events[0].Data.(EffectResult)
	require.Equal(t, "sword", first.Item)
	require.Equal(t, "found after 1", first.Message)

	second := events[1].Data.(EffectResult)
	require.Equal(t, "potion", second.Item, "broken script falls back to the built-in loot")
}
