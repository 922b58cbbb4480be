package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// openTimeout bounds how long Open waits for another process to release the
// database file lock.
const openTimeout = 2 * time.Second

// BboltBackend implements Backend on a single bbolt file
type BboltBackend struct {
	db *bolt.DB
}

// NewBboltBackend opens (creating if needed) the database at dbPath
func NewBboltBackend(dbPath string) (*BboltBackend, error) {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	return &BboltBackend{db: db}, nil
}

func (b *BboltBackend) CreateBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

func (b *BboltBackend) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := lookup(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put(key, value)
	})
}

func (b *BboltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := lookup(tx, bucket)
		if err != nil {
			return err
		}
		if v := bkt.Get(key); v != nil {
			// bbolt memory is only valid inside the transaction
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (b *BboltBackend) Delete(bucket, key []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := lookup(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

func (b *BboltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt, err := lookup(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.ForEach(fn)
	})
}

// Path returns the database file path.
func (b *BboltBackend) Path() string {
	return b.db.Path()
}

func (b *BboltBackend) Close() error {
	return b.db.Close()
}

func lookup(tx *bolt.Tx, name []byte) (*bolt.Bucket, error) {
	bkt := tx.Bucket(name)
	if bkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}
