package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Options controls how an input file is parsed.
type Options struct {
	Logger *log.Logger

	// HasHeader skips the first row of the input.
	HasHeader bool

	// SkipMalformed logs and drops rows that fail validation instead of
	// failing the whole batch.
	SkipMalformed bool
}

// ReadFile parses every row of the CSV file at path.
func ReadFile(path string, opts Options) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer file.Close()

	recs, err := Read(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return recs, nil
}

// Read parses CSV rows from r until EOF. Rows are returned in input order.
func Read(r io.Reader, opts Options) ([]Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // field count is validated per row
	reader.TrimLeadingSpace = true

	var (
		recs    []Record
		skipped int
		first   = true
	)

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			if !opts.SkipMalformed {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, parseErr.Line, parseErr.Err)
			}

			logger.Printf("[RECORDS] Warning: skipping line %d: %v", parseErr.Line, parseErr.Err)
			skipped++
			first = false
			continue
		}

		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if opts.HasHeader {
				continue
			}
		}

		rec, err := ParseRow(fields)
		if err != nil {
			if !opts.SkipMalformed {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
			}

			logger.Printf("[RECORDS] Warning: skipping line %d: %v", line, err)
			skipped++
			continue
		}

		recs = append(recs, rec)
	}

	if skipped > 0 {
		logger.Printf("[RECORDS] Parsed %d records, skipped %d malformed rows", len(recs), skipped)
	}

	return recs, nil
}
