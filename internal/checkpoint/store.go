// Package checkpoint implements the dual-tier progress store: every
// snapshot lives in an in-process cache for fast polling and is mirrored
// to a JSON file per tracking id so progress survives a restart.
package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/pipeline"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/metrics"
)

var ErrCheckpointNotFound = errors.New("checkpoint not found")

// Checkpoint is a timestamped snapshot of a pipeline run's state.
type Checkpoint struct {
	TrackingID string          `json:"tracking_id"`
	State      *pipeline.State `json:"state"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Store keeps the latest checkpoint per tracking id. The memory tier is
// authoritative while the process lives; the disk tier is written best
// effort and consulted only on a cache miss.
type Store struct {
	mu    sync.RWMutex
	cache map[string]*Checkpoint
	dir   string
	log   *zap.SugaredLogger
}

// NewStore creates a store persisting under dir, creating it if needed.
// An empty dir falls back to a per-process directory under the system
// temp root.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "resume-analyzer-checkpoints")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}
	return &Store{
		cache: make(map[string]*Checkpoint),
		dir:   dir,
		log:   zap.S().Named("checkpoint"),
	}, nil
}

// GenerateID returns a fresh tracking id for a new pipeline run.
func GenerateID() string {
	return "ckpt-" + uuid.NewString()
}

// Put records a snapshot for the tracking id, replacing any previous
// one. The state is copied so later stage mutations cannot leak into an
// already-published checkpoint. A disk write failure is logged and
// counted but never surfaced: observation degrades to memory-only.
func (s *Store) Put(_ context.Context, id string, state *pipeline.State) error {
	cp := &Checkpoint{
		TrackingID: id,
		State:      state.Clone(),
		Timestamp:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.cache[id] = cp
	s.mu.Unlock()

	if err := s.writeFile(cp); err != nil {
		metrics.IncreaseCheckpointWrites("error")
		s.log.Warnw("failed to persist checkpoint", "tracking_id", id, "error", err)
		return nil
	}
	metrics.IncreaseCheckpointWrites("ok")
	return nil
}

// Get returns the latest checkpoint for the tracking id, falling back to
// the disk tier on a cache miss and repopulating the cache from it.
// Returns ErrCheckpointNotFound when neither tier has it.
func (s *Store) Get(_ context.Context, id string) (*Checkpoint, error) {
	s.mu.RLock()
	cp, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return cp, nil
	}

	cp, err := s.readFile(id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("reading checkpoint %q: %w", id, err)
	}

	s.mu.Lock()
	s.cache[id] = cp
	s.mu.Unlock()
	return cp, nil
}

// Clear removes the checkpoint from both tiers. Clearing an unknown id
// is a no-op.
func (s *Store) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing checkpoint %q: %w", id, err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// writeFile persists via a temp file and rename so a reader never sees a
// half-written checkpoint.
func (s *Store) writeFile(cp *Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, cp.TrackingID+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(cp.TrackingID))
}

func (s *Store) readFile(id string) (*Checkpoint, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, err
	}
	cp := &Checkpoint{}
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, fmt.Errorf("decoding checkpoint: %w", err)
	}
	return cp, nil
}
