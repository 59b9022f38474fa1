package component

import (
	"fmt"
	"strings"
)

// InteractableKind selects the effect an interaction has.
type InteractableKind uint8

const (
	InteractableChest InteractableKind = iota
	InteractablePickup
	InteractableDestroyedOnUse
	InteractableCharacter
	InteractableLever
)

func (k InteractableKind) String() string {
	switch k {
	case InteractableChest:
		return "chest"
	case InteractablePickup:
		return "pickup"
	case InteractableDestroyedOnUse:
		return "destroyed_on_use"
	case InteractableCharacter:
		return "character"
	case InteractableLever:
		return "lever"
	}
	return fmt.Sprintf("interactable(%d)", uint8(k))
}

// ParseInteractableKind maps a prefab name to a kind.
func ParseInteractableKind(s string) (InteractableKind, error) {
	for k := InteractableChest; k <= InteractableLever; k++ {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("component: unknown interactable kind %q", s)
}

// Interactable counts interactions against an optional cap. Max of zero means
// unlimited.
type Interactable struct {
	Kind  InteractableKind
	Count int
	Max   int
	// Script optionally names an effect script run on each interaction.
	Script string
}

// Available reports whether another interaction is allowed.
func (i *Interactable) Available() bool {
	return i.Max == 0 || (i.Max > 0 && i.Count < i.Max)
}

// Interact records one interaction if one is available.
func (i *Interactable) Interact() bool {
	if !i.Available() {
		return false
	}
	i.Count++
	return true
}

var InteractableComponent = NewComponent[Interactable]()
