package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/flightreduce/internal/history"
	"pkg.jsn.cam/flightreduce/internal/results"
	"pkg.jsn.cam/flightreduce/pkg/flightreduce"
)

const defaultDB = "var/flightreduce.db"

var errNoDatabase = errors.New("no history database")

func openHistory(dbPath string, logger *log.Logger) (*history.Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w at %s", errNoDatabase, dbPath)
	}

	return history.Open(dbPath, logger)
}

func historyCommand(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", defaultDB, "History database path")
	fs.Parse(args)

	store, err := openHistory(*dbPath, log.Default())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer store.Close()

	if err := listRuns(os.Stdout, store); err != nil {
		store.Close()
		log.Fatalf("Failed to list runs: %v", err)
	}
}

func showCommand(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dbPath := fs.String("db", defaultDB, "History database path")
	id := fs.String("id", "", "Run ID")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("-id is required")
	}

	store, err := openHistory(*dbPath, log.Default())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer store.Close()

	if err := showRun(os.Stdout, store, *id); err != nil {
		store.Close()
		log.Fatalf("Failed to show run: %v", err)
	}
}

func topCommand(args []string) {
	fs := flag.NewFlagSet("top", flag.ExitOnError)
	dbPath := fs.String("db", defaultDB, "History database path")
	id := fs.String("id", "", "Run ID")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("-id is required")
	}

	store, err := openHistory(*dbPath, log.Default())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer store.Close()

	run, err := store.Get(*id)
	if err != nil {
		store.Close()
		log.Fatalf("Failed to load run: %v", err)
	}
	printTop(os.Stdout, run.Top)
}

func listRuns(w io.Writer, store *history.Store) error {
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-36s %-14s %-10s %-12s %s\n", "RUN ID", "STARTED", "RECORDS", "PASSENGERS", "INPUT")
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Fprintf(w, "%-36s %-14s %-10s %-12s %s\n",
			run.ID,
			humanize.Time(run.StartedAt),
			humanize.Comma(int64(run.Records)),
			humanize.Comma(int64(len(run.Results))),
			run.InputPath)
	}

	return nil
}

func showRun(w io.Writer, store *history.Store, id string) error {
	run, err := store.Get(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run Details:\n")
	fmt.Fprintf(w, "  ID:          %s\n", run.ID)
	fmt.Fprintf(w, "  Version:     %s\n", run.Version)
	fmt.Fprintf(w, "  Input Path:  %s\n", run.InputPath)
	fmt.Fprintf(w, "  Mappers:     %d\n", run.NumMappers)
	fmt.Fprintf(w, "  Reducers:    %d\n", run.NumReducers)
	fmt.Fprintf(w, "  Records:     %s\n", humanize.Comma(int64(run.Records)))
	fmt.Fprintf(w, "  Chunks:      %d\n", run.Chunks)
	fmt.Fprintf(w, "  Started:     %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Completed:   %s\n", run.CompletedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Duration:    %v\n", run.Duration())
	fmt.Fprintln(w)

	counts := run.Results
	flightreduce.SortByCount(counts)
	results.Print(w, "Passenger flight counts", counts)

	return nil
}
