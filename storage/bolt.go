package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var kvBucket = []byte("kv")

// BoltBackend stores keys in a single BoltDB bucket
type BoltBackend struct {
	db *bbolt.DB
}

// NewBoltBackend opens (or creates) dataDir/campaignmanager.db
func NewBoltBackend(dataDir string) (*BoltBackend, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(filepath.Clean(dataDir), "campaignmanager.db")
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(kvBucket); err != nil {
			return fmt.Errorf("create bucket %s: %w", kvBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db}, nil
}

// Get retrieves the value for key
func (b *BoltBackend) Get(key string) ([]byte, bool, error) {
	if b == nil || b.db == nil {
		return nil, false, ErrUnavailable
	}

	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		if data := bucket.Get([]byte(key)); data != nil {
			// data is only valid inside the transaction
			value = append([]byte{}, data...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

// Set stores value under key
func (b *BoltBackend) Set(key string, value []byte) error {
	if b == nil || b.db == nil {
		return ErrUnavailable
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		return bucket.Put([]byte(key), value)
	})
}

// Delete removes key
func (b *BoltBackend) Delete(key string) error {
	if b == nil || b.db == nil {
		return ErrUnavailable
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
}

// Keys lists all keys in the bucket
func (b *BoltBackend) Keys() ([]string, error) {
	if b == nil || b.db == nil {
		return nil, ErrUnavailable
	}

	var keys []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(kvBucket)
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the database
func (b *BoltBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
