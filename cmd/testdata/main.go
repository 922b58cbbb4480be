package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/flightreduce/cmd/testdata/generator"
	"pkg.jsn.cam/flightreduce/pkg/records"
)

/*generates passenger flight CSV files for flightreduce*/

var (
	Kind           = flag.String("kind", "sample", "Generator to use ("+strings.Join(generator.List(), ", ")+")")
	Count          = flag.Int64("count", 0, "Number of rows to generate (0 uses the generator default)")
	PassengerCount = flag.Int("passengers", 100, "Number of unique passengers for the random generator")
	Seed           = flag.Uint64("seed", 1, "Random seed")
	Header         = flag.Bool("header", false, "Write a header row")
	OutputPath     = flag.String("output", "var/flights.csv", "Output CSV file path")
)

func generate(w io.Writer, gen generator.Generator, count int64, header bool) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	if header {
		if err := cw.Write(records.Header); err != nil {
			return err
		}
	}

	for i := int64(0); i < count; i++ {
		if err := cw.Write(gen.Row(i, count)); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

func main() {
	flag.Parse()

	generator.SetPassengerCount(*Kind, *PassengerCount)
	gen, err := generator.Get(*Kind)
	if err != nil {
		log.Fatalf("%v (available: %s)", err, strings.Join(generator.List(), ", "))
	}
	gen.Init(rand.New(rand.NewPCG(*Seed, *Seed)))

	count := *Count
	if count <= 0 {
		count = gen.DefaultCount()
	}

	// open file for writing
	if err := os.MkdirAll(filepath.Dir(*OutputPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	file, err := os.Create(*OutputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	if err := generate(file, gen, count, *Header); err != nil {
		log.Fatalf("Failed to write rows: %v", err)
	}

	fmt.Printf("Wrote %s rows to %s\n", humanize.Comma(count), *OutputPath)
	fmt.Printf("  %s\n", gen.Description())
}
