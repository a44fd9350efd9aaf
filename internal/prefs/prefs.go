package prefs

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	runObject   = "runs"
	lastRunProp = "last"
)

// LastRun is what -again needs to replay the previous battle.
type LastRun struct {
	Seed   int64  `yaml:"seed"`
	Config string `yaml:"config"`
	Steps  int    `yaml:"steps,omitempty"`
	RunID  string `yaml:"runId,omitempty"`
}

// Backend is the slice of *gdata.Manager the prefs need.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Manager keeps the last-run record. A Manager without a backend runs in
// degraded mode: nothing is persisted and Load reports no previous run.
type Manager struct {
	backend Backend
}

func New(b Backend) *Manager {
	return &Manager{backend: b}
}

// Open binds the prefs to the per-user gdata store for appName. When the
// store cannot be opened the returned Manager is degraded and err says why.
func Open(appName string) (*Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return New(nil), fmt.Errorf("open prefs store: %w", err)
	}
	return New(m), nil
}

func (m *Manager) Degraded() bool { return m == nil || m.backend == nil }

// Load returns the last recorded run. ok is false when there is none.
func (m *Manager) Load() (LastRun, bool, error) {
	if m.Degraded() {
		return LastRun{}, false, nil
	}
	if !m.backend.ObjectPropExists(runObject, lastRunProp) {
		return LastRun{}, false, nil
	}
	data, err := m.backend.LoadObjectProp(runObject, lastRunProp)
	if err != nil {
		return LastRun{}, false, fmt.Errorf("failed to load last run: %w", err)
	}
	var last LastRun
	if err := yaml.Unmarshal(data, &last); err != nil {
		return LastRun{}, false, fmt.Errorf("failed to unmarshal last run: %w", err)
	}
	return last, true, nil
}

func (m *Manager) Save(last LastRun) error {
	if m.Degraded() {
		return nil
	}
	data, err := yaml.Marshal(last)
	if err != nil {
		return fmt.Errorf("failed to marshal last run: %w", err)
	}
	if err := m.backend.SaveObjectProp(runObject, lastRunProp, data); err != nil {
		return fmt.Errorf("failed to save last run: %w", err)
	}
	slog.Debug("prefs saved", "seed", last.Seed, "config", last.Config)
	return nil
}
