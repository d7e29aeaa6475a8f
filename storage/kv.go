package storage

import (
	"encoding/json"
	"fmt"
	"reflect"

	"campaignmanager/utils"
)

// DefaultQuota matches the usual 5 MiB browser storage limit
const DefaultQuota int64 = 5 * 1024 * 1024

// KV serializes values to JSON on top of a Backend.
//
// Every call is one best-effort attempt. Failures (quota, encoding, medium
// errors) are logged and reported only through the boolean result or the
// fallback value; nothing is returned as an error.
type KV struct {
	backend Backend
	quota   int64
	name    string
	log     *utils.Logger
}

// NewKV wraps backend. A quota <= 0 disables the quota check.
func NewKV(name string, backend Backend, quota int64) *KV {
	return &KV{
		backend: backend,
		quota:   quota,
		name:    name,
		log:     utils.Log.WithField("store", name),
	}
}

// Put serializes value under key and reports whether the write happened
func (kv *KV) Put(key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		kv.log.Error("Failed to serialize %s: %v", key, err)
		return false
	}

	if kv.quota > 0 {
		used, err := kv.usageExcept(key)
		if err != nil {
			kv.log.Error("Failed to measure usage before writing %s: %v", key, err)
			return false
		}
		if used+int64(len(key)+len(data)) > kv.quota {
			kv.log.Error("Failed to save %s: %v", key, ErrQuotaExceeded)
			return false
		}
	}

	if err := kv.backend.Set(key, data); err != nil {
		kv.log.Error("Failed to save %s: %v", key, err)
		return false
	}
	return true
}

// Get decodes the value under key into dst. When the key is absent or the
// stored bytes cannot be decoded, dst is left untouched and Get returns
// false, so whatever dst held beforehand acts as the default.
func (kv *KV) Get(key string, dst interface{}) bool {
	data, found, err := kv.backend.Get(key)
	if err != nil {
		kv.log.Error("Failed to read %s: %v", key, err)
		return false
	}
	if !found || len(data) == 0 || string(data) == "null" {
		return false
	}

	// Decode into a fresh value so a partial decode never leaks into dst.
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		kv.log.Error("Failed to parse %s: destination must be a non-nil pointer", key)
		return false
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		kv.log.Error("Failed to parse %s: %v", key, err)
		return false
	}
	target.Elem().Set(fresh.Elem())
	return true
}

// Remove deletes key and reports whether the medium accepted the delete
func (kv *KV) Remove(key string) bool {
	if err := kv.backend.Delete(key); err != nil {
		kv.log.Error("Failed to remove %s: %v", key, err)
		return false
	}
	return true
}

// Raw returns the stored bytes for key without decoding
func (kv *KV) Raw(key string) ([]byte, bool) {
	data, found, err := kv.backend.Get(key)
	if err != nil {
		kv.log.Error("Failed to read %s: %v", key, err)
		return nil, false
	}
	return data, found
}

// Usage sums key and value sizes across the whole medium
func (kv *KV) Usage() (int64, error) {
	return kv.usageExcept("")
}

// Quota returns the configured quota in bytes
func (kv *KV) Quota() int64 {
	return kv.quota
}

func (kv *KV) usageExcept(skip string) (int64, error) {
	keys, err := kv.backend.Keys()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, key := range keys {
		if key == skip {
			continue
		}
		data, found, err := kv.backend.Get(key)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", key, err)
		}
		if found {
			total += int64(len(key) + len(data))
		}
	}
	return total, nil
}
