package generator

import (
	"math/rand/v2"
)

// Generator produces passenger flight rows
type Generator interface {
	// Init initializes the generator with a per-instance random source
	Init(r *rand.Rand)

	// Row returns row i of total, in records.Header field order
	Row(i, total int64) []string

	// Description returns a human-readable description of the data
	Description() string

	// DefaultCount returns the suggested default number of rows to generate
	DefaultCount() int64
}
