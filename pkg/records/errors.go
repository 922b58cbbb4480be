package records

import "errors"

var (
	ErrReadInput       = errors.New("read input")
	ErrMalformedRecord = errors.New("malformed record")
)
