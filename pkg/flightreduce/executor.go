package flightreduce

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pkg.jsn.cam/flightreduce/pkg/records"
)

/*
1. Partition records into chunks.
2. Map: each chunk → one task → one (passenger, 1) emission per record.
3. Shuffle: task-local groups are merged into the store at the barrier.
4. Reduce: sorted keys are split across reducer tasks → one output per key.
5. Collect: reducer outputs land in the result set at the barrier.
*/

// MapPhase runs worker.Map over every chunk with at most numMappers chunks in
// flight. Each task groups its emissions locally; the groups are merged into
// store only after every task has finished, and only if none failed. On
// success the store is frozen.
func MapPhase(ctx context.Context, chunks [][]records.Record, worker Worker, numMappers int, store *IntermediateStore, obs Observer) error {
	if numMappers < 1 {
		return fmt.Errorf("%w: num mappers %d", ErrInvalidConfig, numMappers)
	}
	if obs == nil {
		obs = NopObserver{}
	}

	obs.PhaseStarted(PhaseMapped, len(chunks))

	partials := make([]map[string][]int, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numMappers)

	for i, chunk := range chunks {
		g.Go(func() error {
			local := make(map[string][]int)
			for _, rec := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}

				kv, err := worker.Map(gctx, rec)
				if err != nil {
					return fmt.Errorf("%w: chunk %d: %w", ErrMapPhase, i, err)
				}
				local[kv.Key] = append(local[kv.Key], kv.Value)
			}

			partials[i] = local
			obs.TaskDone(PhaseMapped)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, partial := range partials {
		if err := store.Merge(partial); err != nil {
			return err
		}
	}
	store.Freeze()

	return nil
}

// ReducePhase splits the keys of a frozen store across at most numReducers
// concurrent tasks and runs worker.Reduce once per key. Outputs are added to
// results only after every task has finished, and only if none failed.
func ReducePhase(ctx context.Context, store *IntermediateStore, worker Worker, numReducers int, results *ResultSet, obs Observer) error {
	if numReducers < 1 {
		return fmt.Errorf("%w: num reducers %d", ErrInvalidConfig, numReducers)
	}
	if !store.Frozen() {
		return fmt.Errorf("%w: %w", ErrReducePhase, ErrStoreNotFrozen)
	}
	if obs == nil {
		obs = NopObserver{}
	}

	groups, err := Partition(store.Keys(), numReducers)
	if err != nil {
		return err
	}

	obs.PhaseStarted(PhaseReduced, len(groups))

	outputs := make([][]KeyValue, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numReducers)

	for i, keys := range groups {
		g.Go(func() error {
			out := make([]KeyValue, 0, len(keys))
			for _, key := range keys {
				if err := gctx.Err(); err != nil {
					return err
				}

				kv, err := worker.Reduce(gctx, key, store.Values(key))
				if err != nil {
					return fmt.Errorf("%w: key %s: %w", ErrReducePhase, key, err)
				}
				out = append(out, kv)
			}

			outputs[i] = out
			obs.TaskDone(PhaseReduced)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// A worker that rewrites keys could collide; check before committing anything.
	seen := make(map[string]struct{}, store.Len())
	for _, out := range outputs {
		for _, kv := range out {
			if _, dup := seen[kv.Key]; dup {
				return fmt.Errorf("%w: %w: %s", ErrReducePhase, ErrDuplicateKey, kv.Key)
			}
			seen[kv.Key] = struct{}{}
		}
	}

	for _, out := range outputs {
		for _, kv := range out {
			if err := results.Add(kv); err != nil {
				return fmt.Errorf("%w: %w", ErrReducePhase, err)
			}
		}
	}

	return nil
}
