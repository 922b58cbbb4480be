package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/flightreduce/internal/history"
	"pkg.jsn.cam/flightreduce/internal/results"
	"pkg.jsn.cam/flightreduce/pkg/flightreduce"
)

// runOptions mirrors the run subcommand flags.
type runOptions struct {
	Input         string
	Output        string
	DBPath        string
	Mappers       int
	Reducers      int
	Header        bool
	SkipMalformed bool

	Logger   *log.Logger
	Progress io.Writer // nil disables progress bars
}

func runCommand(args []string) {
	defaults := flightreduce.DefaultConfig()

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	input := fs.String("input", "", "Path to the passenger flight CSV file")
	output := fs.String("output", "", "Write per-passenger counts to this CSV file")
	mappers := fs.Int("mappers", defaults.NumMappers, "Number of concurrent map tasks")
	reducers := fs.Int("reducers", defaults.NumReducers, "Number of concurrent reduce tasks")
	dbPath := fs.String("db", "", "Save the run to this history database")
	header := fs.Bool("header", false, "Input starts with a header row")
	skipMalformed := fs.Bool("skip-malformed", false, "Skip malformed rows instead of failing")
	progress := fs.Bool("progress", false, "Show progress bars for the map and reduce phases")
	quiet := fs.Bool("quiet", false, "Suppress engine logs")
	fs.Parse(args)

	if *input == "" {
		log.Fatal("-input is required")
	}

	opts := runOptions{
		Input:         *input,
		Output:        *output,
		DBPath:        *dbPath,
		Mappers:       *mappers,
		Reducers:      *reducers,
		Header:        *header,
		SkipMalformed: *skipMalformed,
		Logger:        log.Default(),
	}
	if *quiet {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if *progress {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runJob(ctx, os.Stdout, opts); err != nil {
		stop()
		log.Fatalf("Job failed: %v", err)
	}
}

// runJob executes one job, prints the report to w, and writes the optional
// results file and history entry. Counts are reported highest first.
func runJob(ctx context.Context, w io.Writer, opts runOptions) error {
	absPath, err := filepath.Abs(opts.Input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg := flightreduce.Config{
		NumMappers:  opts.Mappers,
		NumReducers: opts.Reducers,
		Logger:      logger,
	}
	cfg.Input.HasHeader = opts.Header
	cfg.Input.SkipMalformed = opts.SkipMalformed

	var bars *progressObserver
	if opts.Progress != nil {
		bars = newProgressObserver(opts.Progress)
		cfg.Observer = bars
	}

	fw, err := flightreduce.New(cfg)
	if err != nil {
		return err
	}

	if info, err := os.Stat(absPath); err == nil {
		logger.Printf("[CLI] Input %s (%s)", absPath, humanize.Bytes(uint64(info.Size())))
	}

	err = fw.Execute(ctx, absPath)
	if bars != nil {
		bars.Finish()
	}
	if err != nil {
		return err
	}

	counts := fw.Results()
	flightreduce.SortByCount(counts)
	stats := fw.Stats()

	fmt.Fprintf(w, "Processed %s records from %d chunks in %v\n",
		humanize.Comma(int64(stats.Records)), stats.Chunks, stats.CompletedAt.Sub(stats.StartedAt))
	fmt.Fprintln(w)
	printTop(w, fw.FindPassengersWithMaxFlights())
	fmt.Fprintln(w)
	results.Print(w, "Passenger flight counts", counts)

	if opts.Output != "" {
		if err := results.WriteCSV(opts.Output, counts); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(w, "\nResults written to %s\n", opts.Output)
	}

	if opts.DBPath != "" {
		store, err := history.Open(opts.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()

		run := history.NewRun(absPath, cfg, stats, counts)
		if err := store.Save(run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(w, "Run saved: %s\n", run.ID)
	}

	return nil
}

func printTop(w io.Writer, top []flightreduce.KeyValue) {
	if len(top) == 0 {
		fmt.Fprintln(w, "No passengers found")
		return
	}

	if len(top) == 1 {
		fmt.Fprintf(w, "Passenger with the most flights: %s (%s flights)\n",
			top[0].Key, humanize.Comma(int64(top[0].Value)))
		return
	}

	fmt.Fprintf(w, "%d passengers tied with %s flights:\n", len(top), humanize.Comma(int64(top[0].Value)))
	for _, kv := range top {
		fmt.Fprintf(w, "  %s\n", kv.Key)
	}
}
