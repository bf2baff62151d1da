// Package kv is the durable key-value slot the store mirrors its dataset into.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrMiss means the key has never been written or was deleted.
	ErrMiss = errors.New("kv: key not found")
	// ErrQuotaExceeded means the backend refused a write for lack of space.
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is implemented by every backend. Values never expire.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// DefaultQuota mirrors the 5 MiB a browser grants local storage.
const DefaultQuota = 5 * 1024 * 1024

// Usage describes how much of a quota a single key occupies.
type Usage struct {
	Used       int `json:"used"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	Available  int `json:"available"`
}

// UsageOf reports the size of key against total. A missing key counts as zero.
func UsageOf(ctx context.Context, s Store, key string, total int) (Usage, error) {
	val, err := s.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrMiss) {
		return Usage{}, err
	}
	u := Usage{Used: len(val), Total: total}
	if total > 0 {
		u.Percentage = (u.Used*100 + total/2) / total
		u.Available = total - u.Used
	}
	return u, nil
}
