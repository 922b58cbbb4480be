package flightreduce

import "fmt"

// Partition splits items into k contiguous chunks of len(items)/k elements.
// When len(items) is not a multiple of k the leftover elements form one extra
// trailing chunk, so up to k+1 chunks are returned. When k >= len(items) every
// chunk holds a single element. Empty input yields no chunks.
//
// Chunks share the backing array of items and must be treated as read-only.
func Partition[T any](items []T, k int) ([][]T, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkCount, k)
	}

	n := len(items)
	if n == 0 {
		return nil, nil
	}

	size := n / k
	if size == 0 {
		size, k = 1, n
	}

	chunks := make([][]T, 0, k+1)
	for i := range k {
		start, end := i*size, (i+1)*size
		chunks = append(chunks, items[start:end:end])
	}

	if rest := items[k*size:]; len(rest) > 0 {
		chunks = append(chunks, rest)
	}

	return chunks, nil
}
