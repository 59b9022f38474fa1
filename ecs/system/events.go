package system

// Event types pushed to the world event queue.
const (
	EventChestOpened         = "chest_opened"
	EventItemPickedUp        = "item_picked_up"
	EventLeverToggled        = "lever_toggled"
	EventObjectDestroyed     = "object_destroyed"
	EventDialogueStarted     = "dialogue_started"
	EventDialogueEnded       = "dialogue_ended"
	EventDialogueUnavailable = "dialogue_unavailable"
	EventCollected           = "collected"
	EventMoverBlocked        = "mover_blocked"
)

// EffectResult is the payload of interaction events.
type EffectResult struct {
	Kind    string
	Count   int
	Item    string
	Message string
	// On is the lever position after the toggle.
	On bool
}
