package flightreduce

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"pkg.jsn.cam/flightreduce/pkg/records"
)

// Phase is a step of a single Execute call.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoaded
	PhasePartitioned
	PhaseMapped
	PhaseReduced
	PhaseAggregated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoaded:
		return "loaded"
	case PhasePartitioned:
		return "partitioned"
	case PhaseMapped:
		return "mapped"
	case PhaseReduced:
		return "reduced"
	case PhaseAggregated:
		return "aggregated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config holds framework configuration
type Config struct {
	Worker   Worker      // defaults to FlightCountWorker
	Observer Observer    // defaults to NopObserver
	Logger   *log.Logger // defaults to log.Default()

	Input records.Options

	NumMappers  int
	NumReducers int
}

// DefaultConfig returns 4 mappers and 2 reducers.
func DefaultConfig() Config {
	return Config{
		NumMappers:  4,
		NumReducers: 2,
	}
}

// RunStats describes the last successful Execute call.
type RunStats struct {
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Records     int           `json:"records"`
	Chunks      int           `json:"chunks"`
	Passengers  int           `json:"passengers"`
	LoadTime    time.Duration `json:"load_time"`
	MapTime     time.Duration `json:"map_time"`
	ReduceTime  time.Duration `json:"reduce_time"`
}

// Framework runs the passenger flight count job.
//
// Each Execute call starts from an empty intermediate store and result set,
// so an instance can be reused. Execute calls must not overlap.
type Framework struct {
	worker   Worker
	observer Observer
	logger   *log.Logger
	input    records.Options

	numMappers  int
	numReducers int

	// running is held for the duration of Execute
	running sync.Mutex

	// mu guards everything below
	mu      sync.RWMutex
	phase   Phase
	store   *IntermediateStore
	results *ResultSet
	stats   RunStats
}

// New validates cfg and creates an idle framework.
func New(cfg Config) (*Framework, error) {
	if cfg.NumMappers < 1 {
		return nil, fmt.Errorf("%w: num mappers must be positive, got %d", ErrInvalidConfig, cfg.NumMappers)
	}
	if cfg.NumReducers < 1 {
		return nil, fmt.Errorf("%w: num reducers must be positive, got %d", ErrInvalidConfig, cfg.NumReducers)
	}

	f := &Framework{
		worker:      cfg.Worker,
		observer:    cfg.Observer,
		logger:      cfg.Logger,
		input:       cfg.Input,
		numMappers:  cfg.NumMappers,
		numReducers: cfg.NumReducers,
		store:       NewIntermediateStore(),
		results:     NewResultSet(),
	}

	if f.worker == nil {
		f.worker = FlightCountWorker{}
	}
	if f.observer == nil {
		f.observer = NopObserver{}
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	if f.input.Logger == nil {
		f.input.Logger = f.logger
	}

	return f, nil
}

// Execute reads the CSV file at inputPath and runs every phase to completion.
// Input errors are returned before any phase starts.
func (f *Framework) Execute(ctx context.Context, inputPath string) error {
	return f.execute(ctx, func() ([]records.Record, error) {
		return records.ReadFile(inputPath, f.input)
	})
}

// ExecuteRecords runs every phase over recs.
func (f *Framework) ExecuteRecords(ctx context.Context, recs []records.Record) error {
	return f.execute(ctx, func() ([]records.Record, error) {
		return recs, nil
	})
}

func (f *Framework) execute(ctx context.Context, load func() ([]records.Record, error)) (err error) {
	if !f.running.TryLock() {
		return ErrBusy
	}
	defer f.running.Unlock()

	store, results := NewIntermediateStore(), NewResultSet()
	stats := RunStats{StartedAt: time.Now()}

	f.mu.Lock()
	f.store, f.results, f.stats = store, results, RunStats{}
	f.mu.Unlock()

	defer func() {
		if err != nil {
			f.logger.Printf("[ENGINE] Job failed: %v", err)
			f.mu.Lock()
			f.store, f.results = NewIntermediateStore(), NewResultSet()
			f.mu.Unlock()
		}
		f.setPhase(PhaseIdle)
	}()

	recs, err := load()
	if err != nil {
		return err
	}
	stats.Records = len(recs)
	stats.LoadTime = time.Since(stats.StartedAt)
	f.setPhase(PhaseLoaded)
	f.logger.Printf("[ENGINE] Loaded %d records", len(recs))

	chunks, err := Partition(recs, f.numMappers)
	if err != nil {
		return err
	}
	stats.Chunks = len(chunks)
	f.setPhase(PhasePartitioned)
	f.logger.Printf("[ENGINE] Partitioned into %d chunks for %d mappers", len(chunks), f.numMappers)

	mapStart := time.Now()
	if err := MapPhase(ctx, chunks, f.worker, f.numMappers, store, f.observer); err != nil {
		return err
	}
	stats.MapTime = time.Since(mapStart)
	f.setPhase(PhaseMapped)
	f.logger.Printf("[ENGINE] Map phase complete: %d emissions for %d passengers", store.TotalValues(), store.Len())

	reduceStart := time.Now()
	if err := ReducePhase(ctx, store, f.worker, f.numReducers, results, f.observer); err != nil {
		return err
	}
	stats.ReduceTime = time.Since(reduceStart)
	f.setPhase(PhaseReduced)
	f.logger.Printf("[ENGINE] Reduce phase complete: %d results", results.Len())

	stats.Passengers = results.Len()
	stats.CompletedAt = time.Now()

	f.mu.Lock()
	f.stats = stats
	f.mu.Unlock()
	f.setPhase(PhaseAggregated)

	return nil
}

func (f *Framework) setPhase(p Phase) {
	f.mu.Lock()
	f.phase = p
	f.mu.Unlock()
}

// Phase returns the current phase. It is PhaseIdle outside Execute.
func (f *Framework) Phase() Phase {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.phase
}

// Results returns the (passenger_id, count) pairs of the last successful run,
// ordered by passenger id.
func (f *Framework) Results() []KeyValue {
	f.mu.RLock()
	results := f.results
	f.mu.RUnlock()

	return results.Entries()
}

// FindPassengersWithMaxFlights returns every passenger tied for the highest
// flight count in the last run.
func (f *Framework) FindPassengersWithMaxFlights() []KeyValue {
	return MaxEntries(f.Results())
}

// Stats returns statistics for the last successful run.
func (f *Framework) Stats() RunStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.stats
}

// Description describes the map/reduce pair in use.
func (f *Framework) Description() string {
	return f.worker.Description()
}
