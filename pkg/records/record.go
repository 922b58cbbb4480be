package records

import (
	"strconv"
	"strings"
)

// NumFields is the number of positional columns in a flight-leg row.
const NumFields = 6

// Header names the columns in the order they appear in an input row.
var Header = []string{
	"passenger_id",
	"flight_id",
	"source",
	"destination",
	"departure_time_unix",
	"flight_time",
}

// Record is a single flight leg taken by a passenger.
type Record struct {
	PassengerID       string `json:"passenger_id"`
	FlightID          string `json:"flight_id"`
	Source            string `json:"source"`
	Destination       string `json:"destination"`
	DepartureTimeUnix int64  `json:"departure_time_unix"`
	FlightTime        int64  `json:"flight_time"`
}

// ParseRow converts one positional row into a Record.
// Surrounding whitespace is trimmed from every field.
func ParseRow(fields []string) (Record, error) {
	if len(fields) != NumFields {
		return Record{}, &rowError{reason: "expected " + strconv.Itoa(NumFields) + " fields, got " + strconv.Itoa(len(fields))}
	}

	trimmed := make([]string, NumFields)
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	fields = trimmed

	if fields[0] == "" {
		return Record{}, &rowError{reason: "empty passenger_id"}
	}

	departure, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Record{}, &rowError{reason: "invalid departure_time_unix " + strconv.Quote(fields[4])}
	}

	flightTime, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Record{}, &rowError{reason: "invalid flight_time " + strconv.Quote(fields[5])}
	}

	return Record{
		PassengerID:       fields[0],
		FlightID:          fields[1],
		Source:            fields[2],
		Destination:       fields[3],
		DepartureTimeUnix: departure,
		FlightTime:        flightTime,
	}, nil
}

// Row renders the record back into its positional form.
func (r Record) Row() []string {
	return []string{
		r.PassengerID,
		r.FlightID,
		r.Source,
		r.Destination,
		strconv.FormatInt(r.DepartureTimeUnix, 10),
		strconv.FormatInt(r.FlightTime, 10),
	}
}

type rowError struct {
	reason string
}

func (e *rowError) Error() string { return e.reason }
