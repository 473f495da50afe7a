package cache

import "time"

// BytesCache stores serialized payloads (forecast responses, report
// snapshots) under string keys with a TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
