package prefabs

import (
	"fmt"
	"image"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type VelocityComponentSpec struct {
	Speed int `yaml:"speed"`
}

type CollisionBoxComponentSpec struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

type FacingComponentSpec struct {
	Direction string `yaml:"direction"`
}

type InteractionZoneComponentSpec struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// SpriteComponentSpec selects a fixed region, or a random cell of a Cols x
// Rows grid starting at (X, Y) when either is above one.
type SpriteComponentSpec struct {
	Sheet int `yaml:"sheet"`
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	W     int `yaml:"w"`
	H     int `yaml:"h"`
	Cols  int `yaml:"cols"`
	Rows  int `yaml:"rows"`
}

// MovementAnimationComponentSpec lays out one row of Frames per direction;
// Rows maps a direction name to its row index on the sheet.
type MovementAnimationComponentSpec struct {
	Sheet  int            `yaml:"sheet"`
	FrameW int            `yaml:"frame_w"`
	FrameH int            `yaml:"frame_h"`
	Frames int            `yaml:"frames"`
	Rows   map[string]int `yaml:"rows"`
}

type EntityAnimationComponentSpec struct {
	Sheet  int `yaml:"sheet"`
	FrameW int `yaml:"frame_w"`
	FrameH int `yaml:"frame_h"`
	Frames int `yaml:"frames"`
	Row    int `yaml:"row"`
}

type InteractableComponentSpec struct {
	Kind   string `yaml:"kind"`
	Max    int    `yaml:"max"`
	Script string `yaml:"script"`
}

type DialogueComponentSpec struct {
	Script string `yaml:"script"`
}

// Builder spawns entities from prefab specs. Specs are read once and cached.
type Builder struct {
	mu    sync.Mutex
	specs map[string]EntityBuildSpec
	rng   *rand.Rand
}

func NewBuilder(seed uint64) *Builder {
	return &Builder{
		specs: make(map[string]EntityBuildSpec),
		rng:   rand.New(rand.NewPCG(seed, ^seed)),
	}
}

// Forget drops a cached spec so the next spawn re-reads it.
func (b *Builder) Forget(prefab string) {
	b.mu.Lock()
	delete(b.specs, cleanPrefabPath(prefab))
	b.mu.Unlock()
}

func (b *Builder) spec(prefab string) (EntityBuildSpec, error) {
	name := cleanPrefabPath(prefab)
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.specs[name]; ok {
		return s, nil
	}
	s, err := LoadEntityBuildSpec(name)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	b.specs[name] = s
	return s, nil
}

func (b *Builder) SpawnPlayer(w *ecs.World, x, y int) (ecs.Entity, error) {
	return b.Spawn(w, "player.yaml", x, y)
}

func (b *Builder) SpawnNPC(w *ecs.World, x, y int) (ecs.Entity, error) {
	return b.Spawn(w, "npc.yaml", x, y)
}

func (b *Builder) SpawnChest(w *ecs.World, x, y int) (ecs.Entity, error) {
	return b.Spawn(w, "chest.yaml", x, y)
}

func (b *Builder) SpawnCollectible(w *ecs.World, x, y int) (ecs.Entity, error) {
	return b.Spawn(w, "fruit.yaml", x, y)
}

// Spawn creates an entity at (x, y) with every component the prefab lists.
// Nothing is left behind in the world when the prefab is invalid.
func (b *Builder) Spawn(w *ecs.World, prefab string, x, y int) (ecs.Entity, error) {
	spec, err := b.spec(prefab)
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	if err := b.build(w, e, spec, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("prefabs: build %s: %w", prefab, err)
	}
	return e, nil
}

func (b *Builder) build(w *ecs.World, e ecs.Entity, spec EntityBuildSpec, x, y int) error {
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{X: x, Y: y}); err != nil {
		return err
	}

	keys := make([]string, 0, len(spec.Components))
	for k := range spec.Components {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var first *component.Sprite
	for _, key := range keys {
		raw := spec.Components[key]
		var err error
		switch key {
		case "playable":
			err = ecs.Add(w, e, component.PlayableComponent.Kind(), &component.Playable{})
		case "unplayable":
			err = ecs.Add(w, e, component.UnplayableComponent.Kind(), &component.Unplayable{})
		case "keyboard_controlled":
			err = ecs.Add(w, e, component.KeyboardControlledComponent.Kind(), &component.KeyboardControlled{})
		case "npc_walker":
			err = ecs.Add(w, e, component.NPCWalkerComponent.Kind(), &component.NPCWalker{})
		case "collectible":
			err = ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{})
		case "flag_for_movement":
			err = ecs.Add(w, e, component.FlagForMovementComponent.Kind(), &component.FlagForMovement{Target: component.Position{X: x, Y: y}})
		case "velocity":
			err = addDecoded(w, e, raw, component.VelocityComponent, func(s VelocityComponentSpec) (*component.Velocity, error) {
				return &component.Velocity{Speed: s.Speed}, nil
			})
		case "collision_box":
			err = addDecoded(w, e, raw, component.CollisionBoxComponent, func(s CollisionBoxComponentSpec) (*component.CollisionBox, error) {
				if s.Width == 0 || s.Height == 0 {
					return nil, fmt.Errorf("collision_box needs a width and height")
				}
				return &component.CollisionBox{Width: s.Width, Height: s.Height}, nil
			})
		case "facing":
			err = addDecoded(w, e, raw, component.FacingComponent, func(s FacingComponentSpec) (*component.Facing, error) {
				if s.Direction == "" {
					return &component.Facing{Direction: component.DirectionDown}, nil
				}
				d, err := component.ParseDirection(s.Direction)
				return &component.Facing{Direction: d}, err
			})
		case "interaction_zone":
			err = addDecoded(w, e, raw, component.InteractionZoneComponent, func(s InteractionZoneComponentSpec) (*component.InteractionZone, error) {
				return &component.InteractionZone{Rect: common.FromCenter(x, y, s.Width, s.Height)}, nil
			})
		case "interactable":
			err = addDecoded(w, e, raw, component.InteractableComponent, func(s InteractableComponentSpec) (*component.Interactable, error) {
				kind, err := component.ParseInteractableKind(s.Kind)
				if err != nil {
					return nil, err
				}
				if s.Max < 0 {
					return nil, fmt.Errorf("interactable max must not be negative")
				}
				return &component.Interactable{Kind: kind, Max: s.Max, Script: s.Script}, nil
			})
		case "dialogue":
			err = addDecoded(w, e, raw, component.DialogueComponent, func(s DialogueComponentSpec) (*component.Dialogue, error) {
				if s.Script == "" {
					return nil, fmt.Errorf("dialogue needs a script")
				}
				return &component.Dialogue{Script: s.Script}, nil
			})
		case "sprite":
			err = addDecoded(w, e, raw, component.SpriteComponent, func(s SpriteComponentSpec) (*component.Sprite, error) {
				return b.sprite(s), nil
			})
		case "movement_animation":
			err = addDecoded(w, e, raw, component.MovementAnimationComponent, func(s MovementAnimationComponentSpec) (*component.MovementAnimation, error) {
				anim, err := movementAnimation(s)
				if err == nil && first == nil && len(anim.Down) > 0 {
					first = &anim.Down[0]
				}
				return anim, err
			})
		case "entity_animation":
			err = addDecoded(w, e, raw, component.EntityAnimationComponent, func(s EntityAnimationComponentSpec) (*component.EntityAnimation, error) {
				frames := strip(s.Sheet, 0, s.Row*s.FrameH, s.FrameW, s.FrameH, s.Frames)
				if len(frames) == 0 {
					return nil, fmt.Errorf("entity_animation needs frames")
				}
				if first == nil {
					first = &frames[0]
				}
				return &component.EntityAnimation{Frames: frames}, nil
			})
		default:
			err = fmt.Errorf("unknown component %q", key)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if first != nil && !ecs.Has(w, e, component.SpriteComponent.Kind()) {
		sprite := *first
		return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
	}
	return nil
}

func addDecoded[S, T any](w *ecs.World, e ecs.Entity, raw any, h component.ComponentHandle[T], build func(S) (*T, error)) error {
	spec, err := DecodeComponentSpec[S](raw)
	if err != nil {
		return err
	}
	value, err := build(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, h.Kind(), value)
}

func (b *Builder) sprite(s SpriteComponentSpec) *component.Sprite {
	x, y := s.X, s.Y
	if s.Cols > 1 || s.Rows > 1 {
		b.mu.Lock()
		col := b.rng.IntN(max(s.Cols, 1))
		row := b.rng.IntN(max(s.Rows, 1))
		b.mu.Unlock()
		x += col * s.W
		y += row * s.H
	}
	return &component.Sprite{Sheet: s.Sheet, Source: image.Rect(x, y, x+s.W, y+s.H)}
}

func movementAnimation(s MovementAnimationComponentSpec) (*component.MovementAnimation, error) {
	anim := &component.MovementAnimation{}
	for name, row := range s.Rows {
		d, err := component.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		frames := strip(s.Sheet, 0, row*s.FrameH, s.FrameW, s.FrameH, s.Frames)
		switch d {
		case component.DirectionUp:
			anim.Up = frames
		case component.DirectionDown:
			anim.Down = frames
		case component.DirectionLeft:
			anim.Left = frames
		case component.DirectionRight:
			anim.Right = frames
		}
	}
	return anim, nil
}

// strip cuts n frames of w x h laid out left to right from (x, y).
func strip(sheet, x, y, w, h, n int) []component.Sprite {
	if n <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	frames := make([]component.Sprite, n)
	for i := range frames {
		left := x + i*w
		frames[i] = component.Sprite{Sheet: sheet, Source: image.Rect(left, y, left+w, y+h)}
	}
	return frames
}
