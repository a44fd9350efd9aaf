package combat

import (
	"errors"
	"fmt"
	"strings"

	"robotwar/internal/grid"
)

type Variant int

const (
	Basic Variant = iota
	Jump
	SemiAuto
	Track
	Kamikaze
	Sniper
	Medic
)

var variantNames = [...]string{
	Basic:    "basic",
	Jump:     "jump",
	SemiAuto: "semiauto",
	Track:    "track",
	Kamikaze: "kamikaze",
	Sniper:   "sniper",
	Medic:    "medic",
}

// Upgrades is the pool an upgrade draws from, in draw order.
var Upgrades = []Variant{Jump, SemiAuto, Track, Kamikaze, Sniper, Medic}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == "generic" {
		return Basic, nil
	}
	for v, name := range variantNames {
		if name == key || name+"bot" == key {
			return Variant(v), nil
		}
	}
	return Basic, fmt.Errorf("unknown variant %q", s)
}

const (
	StartLives   = 3
	BurstSize    = 3
	SniperRange  = 5
	TrackerLimit = 3
	JumpBudget   = 3
	HealCharges  = 3
)

// Stats are the defaults a robot gets when it is created or re-created by an upgrade.
type Stats struct {
	Ammo      int
	HitChance float64
	Jumps     int
	Trackers  int
	Charges   int
}

func DefaultStats(v Variant) Stats {
	s := Stats{Ammo: 10, HitChance: 0.70}
	switch v {
	case Jump:
		s.Jumps = JumpBudget
	case SemiAuto:
		s.Ammo = 15
	case Track:
		s.Trackers = TrackerLimit
	case Sniper:
		s.Ammo = 5
		s.HitChance = 0.90
	case Medic:
		s.Charges = HealCharges
	}
	return s
}

type State int

const (
	Active State = iota
	PendingRespawn
	Gone
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case PendingRespawn:
		return "pending_respawn"
	default:
		return "gone"
	}
}

type TurnOutcome int

const (
	Continue TurnOutcome = iota
	Destroyed
	Upgraded
)

func (o TurnOutcome) String() string {
	switch o {
	case Destroyed:
		return "destroyed"
	case Upgraded:
		return "upgraded"
	default:
		return "continue"
	}
}

type FireOutcome int

const (
	Whiff FireOutcome = iota
	Miss
	Kill
)

func (o FireOutcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case Kill:
		return "kill"
	default:
		return "whiff"
	}
}

type FireReport struct {
	Outcome  FireOutcome
	Target   grid.Pos
	VictimID int
	Draw     float64
}

var (
	ErrPlacementRejected = errors.New("placement rejected")
	ErrMoveRejected      = errors.New("move rejected")
	ErrFireRejected      = errors.New("fire rejected")
	ErrZeroOffset        = fmt.Errorf("%w: zero offset", ErrFireRejected)
	ErrOutOfAmmo         = fmt.Errorf("%w: out of ammo", ErrFireRejected)
	ErrRespawnExhausted  = errors.New("respawn exhausted")
	ErrUnknownRobot      = errors.New("unknown robot")
	ErrInactive          = errors.New("robot not on the battlefield")
)

type EventKind string

const (
	EvPlaced            EventKind = "placed"
	EvPlacementRejected EventKind = "placement_rejected"
	EvThink             EventKind = "think"
	EvLook              EventKind = "look"
	EvMove              EventKind = "move"
	EvMoveFailed        EventKind = "move_failed"
	EvJump              EventKind = "jump"
	EvJumpFailed        EventKind = "jump_failed"
	EvFire              EventKind = "fire"
	EvFireRejected      EventKind = "fire_rejected"
	EvKill              EventKind = "kill"
	EvSelfDestruct      EventKind = "self_destruct"
	EvDetonate          EventKind = "detonate"
	EvDestroyed         EventKind = "destroyed"
	EvUpgrade           EventKind = "upgrade"
	EvTrack             EventKind = "track"
	EvHeal              EventKind = "heal"
	EvRespawn           EventKind = "respawn"
	EvRespawnFailed     EventKind = "respawn_failed"
	EvTurnEnd           EventKind = "turn_end"
)

type Event struct {
	Turn     int       `json:"turn" msgpack:"turn"`
	Kind     EventKind `json:"kind" msgpack:"kind"`
	ActorID  int       `json:"actorId,omitempty" msgpack:"actor_id,omitempty"`
	Actor    string    `json:"actor,omitempty" msgpack:"actor,omitempty"`
	TargetID int       `json:"targetId,omitempty" msgpack:"target_id,omitempty"`
	Target   string    `json:"target,omitempty" msgpack:"target,omitempty"`
	At       *grid.Pos `json:"at,omitempty" msgpack:"at,omitempty"`
	Outcome  string    `json:"outcome,omitempty" msgpack:"outcome,omitempty"`
	Variant  string    `json:"variant,omitempty" msgpack:"variant,omitempty"`
	Ammo     int       `json:"ammo,omitempty" msgpack:"ammo,omitempty"`
	Lives    int       `json:"lives,omitempty" msgpack:"lives,omitempty"`
	Note     string    `json:"note,omitempty" msgpack:"note,omitempty"`
}

type RobotView struct {
	ID           int      `json:"id" msgpack:"id"`
	Name         string   `json:"name" msgpack:"name"`
	Variant      string   `json:"variant" msgpack:"variant"`
	Pos          grid.Pos `json:"pos" msgpack:"pos"`
	Ammo         int      `json:"ammo" msgpack:"ammo"`
	Lives        int      `json:"lives" msgpack:"lives"`
	UpgradeCount int      `json:"upgrades" msgpack:"upgrades"`
	State        string   `json:"state" msgpack:"state"`
}
