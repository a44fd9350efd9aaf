package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"robotwar/internal/util"
)

const sampleYAML = `
battlefield: {width: 8, height: 6}
steps: 25
seed: 42
rules:
  max_upgrades: 1
  respawn_attempts: 50
  self_destruct_when_empty: false
  hit_chance: {sniper: 0.95}
robots:
  - {name: Alpha, x: 2, y: 3}
  - {name: Beta, x: random, y: 1, variant: sniper}
`

const sampleText = `# robot war
M by N : 40 50
steps: 300
robots: 2
GenericRobot Kidd 3 6
SniperBot Jet random random
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "battle.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Battlefield.Width != 8 || cfg.Battlefield.Height != 6 || cfg.Steps != 25 || cfg.Seed != 42 {
		t.Fatalf("unexpected header: %+v", cfg)
	}
	if *cfg.Rules.MaxUpgrades != 1 || cfg.Rules.RespawnAttempts != 50 || *cfg.Rules.SelfDestructWhenEmpty {
		t.Fatalf("unexpected rules: %+v", cfg.Rules)
	}
	if cfg.Rules.HitChance["sniper"] != 0.95 {
		t.Fatalf("expected sniper hit chance 0.95, got %v", cfg.Rules.HitChance["sniper"])
	}
	if len(cfg.Robots) != 2 {
		t.Fatalf("expected 2 robots, got %d", len(cfg.Robots))
	}
	beta := cfg.Robots[1]
	if !beta.X.Random || beta.Y.Random || beta.Y.Value != 1 || beta.Variant != "sniper" {
		t.Fatalf("unexpected beta: %+v", beta)
	}
}

func TestLoadTextFormat(t *testing.T) {
	cfg, err := Load(writeFile(t, "battle.txt", sampleText))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Battlefield.Width != 40 || cfg.Battlefield.Height != 50 || cfg.Steps != 300 {
		t.Fatalf("unexpected header: %+v", cfg)
	}
	if len(cfg.Robots) != 2 {
		t.Fatalf("expected 2 robots, got %d", len(cfg.Robots))
	}
	if r := cfg.Robots[0]; r.Name != "Kidd" || r.X != Fixed(3) || r.Y != Fixed(6) || r.Variant != "" {
		t.Fatalf("unexpected first robot: %+v", r)
	}
	if r := cfg.Robots[1]; !r.X.Random || !r.Y.Random || r.Variant != "sniper" {
		t.Fatalf("unexpected second robot: %+v", r)
	}
	if *cfg.Rules.MaxUpgrades != DefaultMaxUpgrades || cfg.Rules.RespawnAttempts != DefaultRespawnAttempts {
		t.Fatalf("defaults not applied: %+v", cfg.Rules)
	}
}

func TestTextDefaults(t *testing.T) {
	cfg, err := ParseText([]byte("GenericRobot Solo 1 1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Battlefield.Width != DefaultWidth || cfg.Battlefield.Height != DefaultHeight || cfg.Steps != DefaultSteps {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestInvalidConfigs(t *testing.T) {
	cases := map[string]string{
		"bad coordinate":  "robots:\n  - {name: A, x: left, y: 1}\n",
		"negative steps":  "steps: -3\nrobots:\n  - {name: A, x: 1, y: 1}\n",
		"hit chance":      "rules: {hit_chance: {basic: 1.5}}\n",
		"unnamed robot":   "robots:\n  - {x: 1, y: 1}\n",
		"upgrades capped": "rules: {max_upgrades: 3}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(body)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
	if _, err := ParseText([]byte("GenericRobot Broken 1\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for short robot line, got %v", err)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := cfg.Resolve(util.New(7))
	b := cfg.Resolve(util.New(7))
	if len(a) != 2 || a[1] != b[1] {
		t.Fatalf("expected identical resolutions, got %+v and %+v", a, b)
	}
	if a[0].X != 2 || a[0].Y != 3 {
		t.Fatalf("fixed coordinates changed: %+v", a[0])
	}
	if a[1].X < 0 || a[1].X >= 8 || a[1].Y != 1 {
		t.Fatalf("random coordinate out of range: %+v", a[1])
	}
}

func TestDefaultBattleIsValid(t *testing.T) {
	b := Default()
	if err := b.Validate(); err != nil {
		t.Fatalf("validate default: %v", err)
	}
	if len(b.Robots) == 0 || b.Steps <= 0 || b.Rules.MaxUpgrades == nil {
		t.Fatalf("incomplete default battle: %+v", b)
	}
}

func TestShippedBattlesLoad(t *testing.T) {
	for _, path := range []string{"../../battles/arena.yaml", "../../battles/classic.txt"} {
		b, err := Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if b.Source != path || len(b.Robots) < 4 {
			t.Fatalf("%s: unexpected battle %+v", path, b)
		}
	}
}
