package flightreduce

import (
	"cmp"
	"slices"
	"strings"
)

// MaxEntries returns every entry whose value equals the largest value in
// entries, ordered by key. Empty input yields an empty result.
func MaxEntries(entries []KeyValue) []KeyValue {
	if len(entries) == 0 {
		return []KeyValue{}
	}

	maxValue := entries[0].Value
	for _, kv := range entries[1:] {
		maxValue = max(maxValue, kv.Value)
	}

	var top []KeyValue
	for _, kv := range entries {
		if kv.Value == maxValue {
			top = append(top, kv)
		}
	}

	slices.SortFunc(top, func(a, b KeyValue) int {
		return strings.Compare(a.Key, b.Key)
	})

	return top
}

// SortByCount orders entries by value descending, breaking ties by key.
func SortByCount(entries []KeyValue) {
	slices.SortFunc(entries, func(a, b KeyValue) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
}
