package system

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/overworld/ecs/component"
)

// ScriptSource returns the source of a named effect script.
type ScriptSource interface {
	LoadScript(name string) ([]byte, error)
}

// ScriptSourceFunc adapts a plain loader function to ScriptSource.
type ScriptSourceFunc func(name string) ([]byte, error)

func (f ScriptSourceFunc) LoadScript(name string) ([]byte, error) {
	return f(name)
}

// EffectOutput is what an effect script reports back.
type EffectOutput struct {
	Item    string
	Message string
}

// EffectRunner compiles effect scripts once and runs them on interaction.
// Scripts see `kind`, `count` and `max` and may assign `item` and `message`.
type EffectRunner struct {
	src ScriptSource

	mu       sync.Mutex
	compiled map[string]*tengo.Compiled
}

func NewEffectRunner(src ScriptSource) *EffectRunner {
	return &EffectRunner{src: src, compiled: make(map[string]*tengo.Compiled)}
}

// Forget drops a compiled script so the next run reloads it.
func (r *EffectRunner) Forget(name string) {
	r.mu.Lock()
	delete(r.compiled, name)
	r.mu.Unlock()
}

// Run executes the named script for it.
func (r *EffectRunner) Run(name string, it *component.Interactable) (EffectOutput, error) {
	if r == nil || r.src == nil {
		return EffectOutput{}, fmt.Errorf("effect: no script source")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	compiled, err := r.load(name)
	if err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Set("kind", it.Kind.String()); err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Set("count", it.Count); err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Set("max", it.Max); err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Set("item", ""); err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Set("message", ""); err != nil {
		return EffectOutput{}, err
	}
	if err := compiled.Run(); err != nil {
		return EffectOutput{}, fmt.Errorf("effect: run %s: %w", name, err)
	}
	return EffectOutput{
		Item:    compiled.Get("item").String(),
		Message: compiled.Get("message").String(),
	}, nil
}

func (r *EffectRunner) load(name string) (*tengo.Compiled, error) {
	if c, ok := r.compiled[name]; ok {
		return c, nil
	}
	src, err := r.src.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("effect: load %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("kind", "")
	_ = script.Add("count", 0)
	_ = script.Add("max", 0)
	_ = script.Add("item", "")
	_ = script.Add("message", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("effect: compile %s: %w", name, err)
	}
	r.compiled[name] = compiled
	return compiled, nil
}
