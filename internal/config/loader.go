package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a battle from path. .yaml/.yml files are YAML; anything else is
// the line-based format ("M by N: 10 10", "steps: 20",
// "GenericRobot Alpha 2 random").
func Load(path string) (*Battle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg *Battle
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(b)
	default:
		cfg, err = ParseText(b)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

func ParseYAML(b []byte) (*Battle, error) {
	var cfg Battle
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ParseText(b []byte) (*Battle, error) {
	var cfg Battle
	sc := bufio.NewScanner(bytes.NewReader(b))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.Contains(line, "M by N"):
			nums := strings.Fields(afterColon(line))
			if len(nums) < 2 {
				return nil, fmt.Errorf("%w: line %d: expected two dimensions", ErrInvalidConfig, lineNo)
			}
			w, errW := strconv.Atoi(nums[0])
			h, errH := strconv.Atoi(nums[1])
			if errW != nil || errH != nil {
				return nil, fmt.Errorf("%w: line %d: bad dimensions %q", ErrInvalidConfig, lineNo, line)
			}
			cfg.Battlefield = Dimensions{Width: w, Height: h}
		case strings.HasPrefix(strings.ToLower(line), "steps"):
			n, err := strconv.Atoi(strings.TrimSpace(afterColon(line)))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad steps %q", ErrInvalidConfig, lineNo, line)
			}
			cfg.Steps = n
		case strings.HasPrefix(strings.ToLower(line), "seed"):
			n, err := strconv.ParseInt(strings.TrimSpace(afterColon(line)), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad seed %q", ErrInvalidConfig, lineNo, line)
			}
			cfg.Seed = n
		default:
			def, ok, err := parseRobotLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if ok {
				cfg.Robots = append(cfg.Robots, def)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseRobotLine accepts "<Kind> <name> <x> <y>" where Kind is GenericRobot
// or a variant bot name such as SniperBot. Other lines ("robots: 5") are
// informational and skipped.
func parseRobotLine(line string) (RobotDef, bool, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return RobotDef{}, false, nil
	}
	variant, ok := robotKinds[strings.ToLower(f[0])]
	if !ok {
		return RobotDef{}, false, nil
	}
	if len(f) < 4 {
		return RobotDef{}, false, fmt.Errorf("%w: %q needs a name and two coordinates", ErrInvalidConfig, line)
	}
	def := RobotDef{Name: f[1], Variant: variant}
	if err := def.X.parse(f[2]); err != nil {
		return RobotDef{}, false, err
	}
	if err := def.Y.parse(f[3]); err != nil {
		return RobotDef{}, false, err
	}
	return def, true, nil
}

var robotKinds = map[string]string{
	"genericrobot": "",
	"jumpbot":      "jump",
	"semiautobot":  "semiauto",
	"trackbot":     "track",
	"kamikazebot":  "kamikaze",
	"sniperbot":    "sniper",
	"medicbot":     "medic",
}

func afterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return line[i+1:]
	}
	return ""
}
