package flightreduce

import (
	"context"

	"pkg.jsn.cam/flightreduce/pkg/records"
)

// FlightCountWorker implements Worker
type FlightCountWorker struct{}

// Map emits (passenger_id, 1) for every flight leg.
func (w FlightCountWorker) Map(ctx context.Context, record records.Record) (KeyValue, error) {
	return KeyValue{Key: record.PassengerID, Value: 1}, nil
}

// Reduce sums the counts emitted for a passenger
func (w FlightCountWorker) Reduce(ctx context.Context, key string, values []int) (KeyValue, error) {
	select {
	case <-ctx.Done():
		return KeyValue{}, ctx.Err()
	default:
	}

	total := 0
	for _, v := range values {
		total += v
	}

	return KeyValue{Key: key, Value: total}, nil
}

func (w FlightCountWorker) Description() string {
	return "Counts the flights taken by each passenger"
}
