package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var errNotInitialized = errors.New("store not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[uuid.UUID][]byte
	order       []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[uuid.UUID][]byte)
	s.order = nil
	return nil
}

// SaveRun keeps the encoded payload so callers cannot alias stored records.
func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	payload, err := EncodeRun(run)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if _, ok := s.runs[run.ID]; !ok {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = payload
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (RunRecord, bool, error) {
	s.mu.RLock()
	payload, ok := s.runs[id]
	s.mu.RUnlock()

	if !ok {
		return RunRecord{}, false, nil
	}
	run, err := DecodeRun(payload)
	if err != nil {
		return RunRecord{}, false, err
	}
	return run, true, nil
}

// ListRuns returns up to limit summaries, newest first. limit <= 0 lists all.
func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunSummary, 0, len(s.order))
	for _, id := range s.order {
		run, err := DecodeRun(s.runs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, run.Summary())
	}
	sortSummaries(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortSummaries(runs []RunSummary) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID.String() < runs[j].ID.String()
	})
}
