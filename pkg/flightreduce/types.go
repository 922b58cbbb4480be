package flightreduce

import (
	"context"

	"pkg.jsn.cam/flightreduce/pkg/records"
)

// KeyValue is a single emission from Map or a reduced output from Reduce.
type KeyValue struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Worker is the map/reduce function pair driven by the engine.
//
// Map is called exactly once per record and Reduce exactly once per distinct
// key. Both are called concurrently from several goroutines and must not
// share mutable state.
type Worker interface {
	Map(ctx context.Context, record records.Record) (KeyValue, error)
	Reduce(ctx context.Context, key string, values []int) (KeyValue, error)
	Description() string
}

// Observer receives progress notifications from a running job.
// TaskDone is called from task goroutines, implementations must be safe for
// concurrent use.
type Observer interface {
	PhaseStarted(phase Phase, tasks int)
	TaskDone(phase Phase)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) PhaseStarted(Phase, int) {}
func (NopObserver) TaskDone(Phase)          {}
