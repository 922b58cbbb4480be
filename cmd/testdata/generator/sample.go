package generator

import (
	"math/rand/v2"
	"strconv"
)

// SampleGenerator reproduces the reference sample file. It ignores the
// random source, so its output depends only on the row count.
type SampleGenerator struct{}

var (
	samplePassengers = []string{"ABC1234DE5", "FGH5678IJ9", "KLM9012NO3", "PQR3456ST7", "UVW7890XY1"}
	sampleFlights    = []string{"ABC1234X", "DEF5678Y", "GHI9012Z", "JKL3456A", "MNO7890B"}
	sampleAirports   = []string{"DEN", "FRA", "LHR", "JFK", "LAX", "SFO", "ORD"}
)

const sampleEpoch = 1420564460

func (g *SampleGenerator) Init(*rand.Rand) {}

// Row rotates through the passengers, except that every row past the
// midpoint belongs to the first passenger.
func (g *SampleGenerator) Row(i, total int64) []string {
	passenger := i % int64(len(samplePassengers))
	if i > total/2 {
		passenger = 0
	}

	return []string{
		samplePassengers[passenger],
		sampleFlights[i%int64(len(sampleFlights))],
		sampleAirports[i%int64(len(sampleAirports))],
		sampleAirports[(i+1)%int64(len(sampleAirports))],
		strconv.FormatInt(sampleEpoch+i*3600, 10),
		strconv.FormatInt(60+i%120, 10),
	}
}

func (g *SampleGenerator) Description() string {
	return "Deterministic sample: 5 passengers, the first one flying most"
}

func (g *SampleGenerator) DefaultCount() int64 {
	return 30
}
