package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/flightreduce/pkg/flightreduce"
)

// Header is the first row of every results file.
var Header = []string{"passenger_id", "flight_count"}

// Write writes entries as CSV rows, in the given order, after Header.
func Write(w io.Writer, entries []flightreduce.KeyValue) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, kv := range entries {
		if err := cw.Write([]string{kv.Key, strconv.Itoa(kv.Value)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes entries to path, creating parent directories.
func WriteCSV(path string, entries []flightreduce.KeyValue) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}

	if err := Write(file, entries); err != nil {
		file.Close()
		return fmt.Errorf("write results: %w", err)
	}

	return file.Close()
}

// Print writes a human-readable table of entries.
func Print(w io.Writer, title string, entries []flightreduce.KeyValue) {
	fmt.Fprintf(w, "%s (%d entries):\n", title, len(entries))
	fmt.Fprintln(w, "─────────────────────────────────────────────")

	if len(entries) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}

	fmt.Fprintf(w, "%-30s %s\n", "PASSENGER ID", "FLIGHTS")
	for _, kv := range entries {
		fmt.Fprintf(w, "%-30s %s\n", kv.Key, humanize.Comma(int64(kv.Value)))
	}
}
