package storage

import "errors"

var (
	// ErrQuotaExceeded is returned when a write would grow the medium past its quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrUnavailable is returned by a backend that is closed or not configured
	ErrUnavailable = errors.New("storage unavailable")
)

// Backend is a durable byte-oriented key/value medium.
//
// Get reports found=false with a nil error when the key is absent. Keys
// lists every key the backend holds, in no particular order.
type Backend interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

var (
	_ Backend = (*MemoryBackend)(nil)
	_ Backend = (*FileBackend)(nil)
	_ Backend = (*BoltBackend)(nil)
	_ Backend = (*SQLiteBackend)(nil)
	_ Backend = (*RedisBackend)(nil)
)
