package generator

import (
	"math/rand/v2"
	"strconv"
)

// RandomGenerator spreads flights over PassengerCount random passengers
type RandomGenerator struct {
	PassengerCount int
	rand           *rand.Rand
	passengers     []string
	flights        []string
}

const (
	letters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits     = "0123456789"
	flightPool = 100
	yearSecs   = 365 * 24 * 3600
)

var airports = []string{
	"ATL", "AMS", "CDG", "DEN", "DXB", "FRA", "HND", "IST",
	"JFK", "LAX", "LHR", "MAD", "ORD", "PEK", "SFO", "SIN",
}

func (g *RandomGenerator) Init(r *rand.Rand) {
	g.rand = r
	if g.PassengerCount < 1 {
		g.PassengerCount = 1
	}

	// Pre-generate passenger and flight IDs
	g.passengers = make([]string, g.PassengerCount)
	for i := range g.passengers {
		g.passengers[i] = g.id("AAA9999AA9")
	}

	g.flights = make([]string, flightPool)
	for i := range g.flights {
		g.flights[i] = g.id("AAA9999A")
	}
}

// id fills pattern with random characters: A becomes a letter, 9 a digit.
func (g *RandomGenerator) id(pattern string) string {
	b := make([]byte, len(pattern))
	for i := range len(pattern) {
		switch pattern[i] {
		case 'A':
			b[i] = letters[g.rand.IntN(len(letters))]
		case '9':
			b[i] = digits[g.rand.IntN(len(digits))]
		default:
			b[i] = pattern[i]
		}
	}
	return string(b)
}

func (g *RandomGenerator) Row(i, total int64) []string {
	src := g.rand.IntN(len(airports))
	dst := (src + 1 + g.rand.IntN(len(airports)-1)) % len(airports)

	return []string{
		g.passengers[g.rand.IntN(len(g.passengers))],
		g.flights[g.rand.IntN(len(g.flights))],
		airports[src],
		airports[dst],
		strconv.FormatInt(sampleEpoch+g.rand.Int64N(yearSecs), 10),
		strconv.Itoa(30 + g.rand.IntN(900)),
	}
}

func (g *RandomGenerator) Description() string {
	return "Random passengers (AAA9999AA9) on random routes"
}

func (g *RandomGenerator) DefaultCount() int64 {
	return 1e4 // 10,000 rows
}
