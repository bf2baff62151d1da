package store_test

import (
	"context"
	"sync"
	"time"

	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
)

// fakeKVStore is an in-memory kv.Store whose writes can be made to fail.
type fakeKVStore struct {
	mu      sync.Mutex
	data    map[string]string
	setErrs []error
	sets    int
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{data: make(map[string]string)}
}

// failNext queues errors returned by the following Set calls, in order.
func (f *fakeKVStore) failNext(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErrs = append(f.setErrs, errs...)
}

func (f *fakeKVStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	val, ok := f.data[key]
	if !ok {
		return "", kv.ErrMiss
	}
	return val, nil
}

func (f *fakeKVStore) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sets++
	if len(f.setErrs) > 0 {
		err := f.setErrs[0]
		f.setErrs = f.setErrs[1:]
		if err != nil {
			return err
		}
	}
	f.data[key] = value
	return nil
}

func (f *fakeKVStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKVStore) raw(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
