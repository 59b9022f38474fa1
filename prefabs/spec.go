package prefabs

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/milk9111/overworld/ecs/system"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Config is the runtime configuration read from config.yaml.
type Config struct {
	TickRate       int         `yaml:"tick_rate"`
	PlayerSpeed    int         `yaml:"player_speed"`
	Seed           uint64      `yaml:"seed"`
	Parallel       bool        `yaml:"parallel"`
	CollisionGuard bool        `yaml:"collision_guard"`
	LogLevel       string      `yaml:"log_level"`
	DialogueDir    string      `yaml:"dialogue_dir"`
	Walker         WalkerSpec  `yaml:"walker"`
	Window         WindowSpec  `yaml:"window"`
	Debug          DebugSpec   `yaml:"debug"`
	Spawns         []SpawnSpec `yaml:"spawns"`
}

type WalkerSpec struct {
	CadenceMS int     `yaml:"cadence_ms"`
	Chance    float64 `yaml:"chance"`
	Speed     int     `yaml:"speed"`
	MaxQueue  int     `yaml:"max_queue"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type DebugSpec struct {
	Boxes bool `yaml:"boxes"`
	Zones bool `yaml:"zones"`
}

// SpawnSpec places one prefab in the starting world.
type SpawnSpec struct {
	Prefab string `yaml:"prefab"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// DefaultConfig is used for any field config.yaml leaves out.
func DefaultConfig() Config {
	return Config{
		TickRate:       20,
		PlayerSpeed:    system.DefaultPlayerSpeed,
		Seed:           1,
		Parallel:       true,
		CollisionGuard: true,
		LogLevel:       "info",
		Walker: WalkerSpec{
			CadenceMS: 50,
			Chance:    0.9,
			Speed:     2,
			MaxQueue:  1,
		},
		Window: WindowSpec{Width: 800, Height: 600, Title: "overworld"},
	}
}

// LoadConfig reads the config at path, or the shipped config.yaml when path
// is empty, on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		path = "config.yaml"
		data, err = Load(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("prefabs: load %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.PlayerSpeed <= 0 {
		errs = append(errs, fmt.Errorf("player_speed must be positive, got %d", c.PlayerSpeed))
	}
	if c.Walker.CadenceMS <= 0 {
		errs = append(errs, fmt.Errorf("walker.cadence_ms must be positive, got %d", c.Walker.CadenceMS))
	}
	if c.Walker.Chance < 0 || c.Walker.Chance > 1 {
		errs = append(errs, fmt.Errorf("walker.chance must be within [0, 1], got %g", c.Walker.Chance))
	}
	if c.Walker.MaxQueue < 0 {
		errs = append(errs, fmt.Errorf("walker.max_queue must not be negative, got %d", c.Walker.MaxQueue))
	}
	for i, s := range c.Spawns {
		if s.Prefab == "" {
			errs = append(errs, fmt.Errorf("spawns[%d]: prefab is required", i))
		}
	}
	return errors.Join(errs...)
}

// TickInterval is the wall-clock length of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// WalkerConfig converts the walker section for the walker system.
func (c Config) WalkerConfig() system.WalkerConfig {
	return system.WalkerConfig{
		Cadence:  time.Duration(c.Walker.CadenceMS) * time.Millisecond,
		Chance:   c.Walker.Chance,
		Speed:    c.Walker.Speed,
		MaxQueue: c.Walker.MaxQueue,
	}
}
