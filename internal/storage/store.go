package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"robotwar/internal/combat"
)

// RunRecord is one archived battle: its inputs, the full event log and the
// final roster.
type RunRecord struct {
	SchemaVersion int `msgpack:"schema_version"`
	CodecVersion  int `msgpack:"codec_version"`

	ID          uuid.UUID          `msgpack:"id"`
	Seed        int64              `msgpack:"seed"`
	Source      string             `msgpack:"source"`
	Width       int                `msgpack:"width"`
	Height      int                `msgpack:"height"`
	Steps       int                `msgpack:"steps"`
	TurnsPlayed int                `msgpack:"turns_played"`
	CreatedAt   time.Time          `msgpack:"created_at"`
	Events      []combat.Event     `msgpack:"events"`
	Final       []combat.RobotView `msgpack:"final"`
}

// RunSummary is the listing view of a RunRecord.
type RunSummary struct {
	ID          uuid.UUID
	Seed        int64
	Source      string
	TurnsPlayed int
	CreatedAt   time.Time
}

// Store persists archived runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id uuid.UUID) (RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// NewRun stamps a fresh record for a finished simulation.
func NewRun(seed int64, source string, steps int, init combat.InitState, res combat.SimResult, events []combat.Event) RunRecord {
	return RunRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
		ID:            uuid.New(),
		Seed:          seed,
		Source:        source,
		Width:         init.Width,
		Height:        init.Height,
		Steps:         steps,
		TurnsPlayed:   res.TurnsPlayed,
		CreatedAt:     time.Now().UTC(),
		Events:        events,
		Final:         res.Final,
	}
}

func (r RunRecord) Summary() RunSummary {
	return RunSummary{ID: r.ID, Seed: r.Seed, Source: r.Source, TurnsPlayed: r.TurnsPlayed, CreatedAt: r.CreatedAt}
}
