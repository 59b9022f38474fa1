package component

type Playable struct{}

var PlayableComponent = NewComponent[Playable]()

type Unplayable struct{}

var UnplayableComponent = NewComponent[Unplayable]()

type KeyboardControlled struct{}

var KeyboardControlledComponent = NewComponent[KeyboardControlled]()

type NPCWalker struct{}

var NPCWalkerComponent = NewComponent[NPCWalker]()

type Collectible struct{}

var CollectibleComponent = NewComponent[Collectible]()
