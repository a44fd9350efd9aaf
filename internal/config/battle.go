package config

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultWidth           = 20
	DefaultHeight          = 20
	DefaultSteps           = 10
	DefaultRespawnAttempts = 100
	DefaultMaxUpgrades     = 2
)

type Battle struct {
	Source      string     `yaml:"-"`
	Battlefield Dimensions `yaml:"battlefield"`
	Steps       int        `yaml:"steps"`
	Seed        int64      `yaml:"seed"`
	Rules       Rules      `yaml:"rules"`
	Robots      []RobotDef `yaml:"robots"`
}

type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Rules struct {
	MaxUpgrades           *int               `yaml:"max_upgrades"`
	RespawnAttempts       int                `yaml:"respawn_attempts"`
	SelfDestructWhenEmpty *bool              `yaml:"self_destruct_when_empty"`
	StopWhenOneLeft       bool               `yaml:"stop_when_one_left"`
	HitChance             map[string]float64 `yaml:"hit_chance"`
}

type RobotDef struct {
	Name    string `yaml:"name"`
	X       Coord  `yaml:"x"`
	Y       Coord  `yaml:"y"`
	Variant string `yaml:"variant"`
}

// Coord is either a fixed cell index or "random", resolved once per run.
type Coord struct {
	Value  int
	Random bool
}

func Fixed(v int) Coord { return Coord{Value: v} }

func (c *Coord) UnmarshalYAML(n *yaml.Node) error {
	return c.parse(n.Value)
}

func (c *Coord) parse(s string) error {
	if s == "random" {
		*c = Coord{Random: true}
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: coordinate %q is neither an integer nor \"random\"", ErrInvalidConfig, s)
	}
	*c = Coord{Value: v}
	return nil
}

func (c Coord) String() string {
	if c.Random {
		return "random"
	}
	return strconv.Itoa(c.Value)
}

// Placement is a robot definition with its coordinates resolved.
type Placement struct {
	Name    string
	X, Y    int
	Variant string
}

func (b *Battle) applyDefaults() {
	if b.Battlefield.Width == 0 {
		b.Battlefield.Width = DefaultWidth
	}
	if b.Battlefield.Height == 0 {
		b.Battlefield.Height = DefaultHeight
	}
	if b.Steps == 0 {
		b.Steps = DefaultSteps
	}
	if b.Rules.RespawnAttempts == 0 {
		b.Rules.RespawnAttempts = DefaultRespawnAttempts
	}
	if b.Rules.MaxUpgrades == nil {
		n := DefaultMaxUpgrades
		b.Rules.MaxUpgrades = &n
	}
	if b.Rules.SelfDestructWhenEmpty == nil {
		on := true
		b.Rules.SelfDestructWhenEmpty = &on
	}
}

func (b *Battle) Validate() error {
	if b.Battlefield.Width <= 0 || b.Battlefield.Height <= 0 {
		return fmt.Errorf("%w: battlefield %dx%d must be positive", ErrInvalidConfig, b.Battlefield.Width, b.Battlefield.Height)
	}
	if b.Steps < 0 {
		return fmt.Errorf("%w: steps %d is negative", ErrInvalidConfig, b.Steps)
	}
	if b.Rules.RespawnAttempts < 0 {
		return fmt.Errorf("%w: respawn_attempts %d is negative", ErrInvalidConfig, b.Rules.RespawnAttempts)
	}
	if m := b.Rules.MaxUpgrades; m != nil && (*m < 0 || *m > DefaultMaxUpgrades) {
		return fmt.Errorf("%w: max_upgrades %d outside 0..%d", ErrInvalidConfig, *m, DefaultMaxUpgrades)
	}
	for k, p := range b.Rules.HitChance {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: hit_chance[%s]=%v outside [0,1]", ErrInvalidConfig, k, p)
		}
	}
	for i, r := range b.Robots {
		if r.Name == "" {
			return fmt.Errorf("%w: robot #%d has no name", ErrInvalidConfig, i+1)
		}
	}
	return nil
}

// Resolve turns "random" coordinates into cells with the run's RNG.
// Fixed coordinates pass through untouched, even when out of bounds; the
// engine rejects those at placement.
func (b *Battle) Resolve(rng *rand.Rand) []Placement {
	out := make([]Placement, 0, len(b.Robots))
	for _, r := range b.Robots {
		x, y := r.X.Value, r.Y.Value
		if r.X.Random {
			x = rng.Intn(b.Battlefield.Width)
		}
		if r.Y.Random {
			y = rng.Intn(b.Battlefield.Height)
		}
		out = append(out, Placement{Name: r.Name, X: x, Y: y, Variant: r.Variant})
	}
	return out
}
