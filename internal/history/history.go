package history

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/flightreduce/pkg/flightreduce"
	"pkg.jsn.cam/flightreduce/pkg/storage"
)

var runsBucket = []byte("runs")

var ErrRunNotFound = errors.New("run not found")

// Run is the persisted manifest of one completed job.
type Run struct {
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt time.Time               `json:"completed_at"`
	ID          string                  `json:"id"`
	Version     string                  `json:"version"`
	InputPath   string                  `json:"input_path"`
	Results     []flightreduce.KeyValue `json:"results"`
	Top         []flightreduce.KeyValue `json:"top"`
	NumMappers  int                     `json:"num_mappers"`
	NumReducers int                     `json:"num_reducers"`
	Records     int                     `json:"records"`
	Chunks      int                     `json:"chunks"`
}

// NewRun builds a manifest from a finished framework run.
func NewRun(inputPath string, cfg flightreduce.Config, stats flightreduce.RunStats, results []flightreduce.KeyValue) *Run {
	return &Run{
		ID:          uuid.New().String(),
		Version:     flightreduce.Version,
		InputPath:   inputPath,
		NumMappers:  cfg.NumMappers,
		NumReducers: cfg.NumReducers,
		Records:     stats.Records,
		Chunks:      stats.Chunks,
		StartedAt:   stats.StartedAt,
		CompletedAt: stats.CompletedAt,
		Results:     results,
		Top:         flightreduce.MaxEntries(results),
	}
}

// Duration is the wall time of the run.
func (r *Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Store persists run manifests in a storage backend.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
}

// NewStore wraps backend, creating the runs bucket if needed.
// A nil logger logs to log.Default().
func NewStore(backend storage.Backend, logger *log.Logger) (*Store, error) {
	if err := backend.CreateBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Store{backend: backend, logger: logger}, nil
}

// Open opens a bbolt-backed store at dbPath.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	backend, err := storage.NewBboltBackend(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	store, err := NewStore(backend, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	store.logger.Printf("[HISTORY] Run history opened at %s", dbPath)

	return store, nil
}

// Save stores run under its ID.
func (s *Store) Save(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Version == "" {
		run.Version = flightreduce.Version
	}

	if err := storage.PutJSON(s.backend, runsBucket, run.ID, run); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	return nil
}

// Get loads a run, refusing runs written by an incompatible version.
func (s *Store) Get(id string) (*Run, error) {
	var run Run
	found, err := storage.GetJSON(s.backend, runsBucket, id, &run)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	if err := flightreduce.CheckVersion(run.Version); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}

	return &run, nil
}

// List returns every readable run, newest first. Undecodable or
// incompatible entries are skipped with a warning.
func (s *Store) List() ([]*Run, error) {
	var runs []*Run

	err := s.backend.ForEach(runsBucket, func(k, v []byte) error {
		var run Run
		if err := storage.DecodeJSON(v, &run); err != nil {
			s.logger.Printf("[HISTORY] Warning: Failed to decode run %s: %v", k, err)
			return nil
		}
		if err := flightreduce.CheckVersion(run.Version); err != nil {
			s.logger.Printf("[HISTORY] Warning: Skipping run %s: %v", k, err)
			return nil
		}
		runs = append(runs, &run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b *Run) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})

	return runs, nil
}

// Delete removes a run. Deleting a missing run is not an error.
func (s *Store) Delete(id string) error {
	return s.backend.Delete(runsBucket, []byte(id))
}

// Close closes the underlying backend
func (s *Store) Close() error {
	return s.backend.Close()
}
