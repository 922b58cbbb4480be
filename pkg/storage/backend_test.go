package storage

import (
	"bytes"
	"errors"
	"testing"
)

// backendTestSuite runs the shared conformance checks against a Backend implementation
func backendTestSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Run("CreateBucketIdempotent", func(t *testing.T) {
		backend := newBackend(t)

		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Fatalf("CreateBucket failed: %v", err)
		}
		backend.Put([]byte("runs"), []byte("k"), []byte("v"))

		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Errorf("CreateBucket should be idempotent: %v", err)
		}

		got, _ := backend.Get([]byte("runs"), []byte("k"))
		if !bytes.Equal(got, []byte("v")) {
			t.Errorf("Recreating a bucket dropped its contents, got %q", got)
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		backend := newBackend(t)
		backend.CreateBucket([]byte("runs"))

		value := []byte("value1")
		if err := backend.Put([]byte("runs"), []byte("key1"), value); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		value[0] = 'X'

		got, err := backend.Get([]byte("runs"), []byte("key1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("value1")) {
			t.Errorf("Get returned %s, want value1", got)
		}

		got, err = backend.Get([]byte("runs"), []byte("nonexistent"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("Get should return nil for non-existent key, got %s", got)
		}
	})

	t.Run("MissingBucket", func(t *testing.T) {
		backend := newBackend(t)

		if err := backend.Put([]byte("nope"), []byte("k"), []byte("v")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Put error = %v, want ErrBucketNotFound", err)
		}
		if _, err := backend.Get([]byte("nope"), []byte("k")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Get error = %v, want ErrBucketNotFound", err)
		}
		err := backend.ForEach([]byte("nope"), func(k, v []byte) error { return nil })
		if !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("ForEach error = %v, want ErrBucketNotFound", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		backend := newBackend(t)
		backend.CreateBucket([]byte("runs"))
		backend.Put([]byte("runs"), []byte("key1"), []byte("value1"))

		if err := backend.Delete([]byte("runs"), []byte("key1")); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		got, _ := backend.Get([]byte("runs"), []byte("key1"))
		if got != nil {
			t.Error("Key should not exist after deletion")
		}
	})

	t.Run("ForEachSorted", func(t *testing.T) {
		backend := newBackend(t)
		backend.CreateBucket([]byte("runs"))

		for _, k := range []string{"key3", "key1", "key2"} {
			backend.Put([]byte("runs"), []byte(k), []byte("v-"+k))
		}

		var keys []string
		err := backend.ForEach([]byte("runs"), func(k, v []byte) error {
			if string(v) != "v-"+string(k) {
				t.Errorf("ForEach: key %s = %s", k, v)
			}
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}

		want := []string{"key1", "key2", "key3"}
		if len(keys) != len(want) {
			t.Fatalf("ForEach visited %d keys, want %d", len(keys), len(want))
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("ForEach order = %v, want %v", keys, want)
				break
			}
		}
	})

	t.Run("ForEachStopsOnError", func(t *testing.T) {
		backend := newBackend(t)
		backend.CreateBucket([]byte("runs"))
		backend.Put([]byte("runs"), []byte("a"), []byte("1"))
		backend.Put([]byte("runs"), []byte("b"), []byte("2"))

		stop := errors.New("stop")
		visited := 0
		err := backend.ForEach([]byte("runs"), func(k, v []byte) error {
			visited++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("ForEach error = %v, want stop", err)
		}
		if visited != 1 {
			t.Errorf("ForEach visited %d keys after error, want 1", visited)
		}
	})

	t.Run("JSONHelpers", func(t *testing.T) {
		type entry struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		backend := newBackend(t)
		backend.CreateBucket([]byte("runs"))

		if err := PutJSON(backend, []byte("runs"), "e1", entry{Name: "ABC1234DE5", Count: 3}); err != nil {
			t.Fatalf("PutJSON failed: %v", err)
		}

		var got entry
		found, err := GetJSON(backend, []byte("runs"), "e1", &got)
		if err != nil || !found {
			t.Fatalf("GetJSON = %v, %v; want found", found, err)
		}
		if got.Name != "ABC1234DE5" || got.Count != 3 {
			t.Errorf("GetJSON decoded %+v", got)
		}

		found, err = GetJSON(backend, []byte("runs"), "missing", &got)
		if err != nil || found {
			t.Errorf("GetJSON(missing) = %v, %v; want not found", found, err)
		}

		backend.Put([]byte("runs"), []byte("bad"), []byte("{not json"))
		if _, err := GetJSON(backend, []byte("runs"), "bad", &got); err == nil {
			t.Error("GetJSON should fail on invalid JSON")
		}
	})
}
