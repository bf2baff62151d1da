// Package store owns the condominium dataset. Every mutation builds a
// candidate copy, writes it to the kv slot and only then replaces the
// in-memory copy, so a failed write leaves the previous state intact.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
)

const (
	DefaultKey       = "conadmin_chile_data"
	SchemaVersion    = "1.0.0"
	DefaultRetention = 365 * 24 * time.Hour
)

// Top-level dataset keys.
const (
	KeyResidents     = "residents"
	KeyPayments      = "payments"
	KeyMaintenance   = "maintenance"
	KeyAnnouncements = "announcements"
	KeyReservations  = "reservations"
	KeyConfig        = "config"
)

// Envelope wraps every top-level value in the persisted dataset.
type Envelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
}

// Dataset maps top-level keys to their raw envelopes. Keys this package
// does not know about are carried through untouched.
type Dataset map[string]json.RawMessage

func (d Dataset) clone() Dataset {
	out := make(Dataset, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	key       string
	logger    *zap.Logger
	now       func() time.Time
	retention time.Duration
	quota     int
	seed      bool
	data      Dataset
}

type Option func(*Store)

// WithKey overrides the kv key the dataset lives under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock injects the time source used for stamps, debt and cleanup.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRetention sets how long completed maintenance survives a quota cleanup.
func WithRetention(d time.Duration) Option {
	return func(s *Store) { s.retention = d }
}

// WithQuota sets the total reported by StorageInfo.
func WithQuota(total int) Option {
	return func(s *Store) { s.quota = total }
}

// WithSampleData seeds demonstration records when no residents exist.
func WithSampleData(enabled bool) Option {
	return func(s *Store) { s.seed = enabled }
}

// Open loads the dataset from kvStore. A missing key yields an empty dataset.
func Open(ctx context.Context, kvStore kv.Store, logger *zap.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kvStore,
		key:       DefaultKey,
		logger:    logger,
		now:       time.Now,
		retention: DefaultRetention,
		quota:     kv.DefaultQuota,
		data:      Dataset{},
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := kvStore.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrMiss):
	case err != nil:
		return nil, fmt.Errorf("%w: load %s: %w", ErrStorage, s.key, err)
	default:
		if err := json.Unmarshal([]byte(raw), &s.data); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrStorage, s.key, err)
		}
		if s.data == nil {
			s.data = Dataset{}
		}
	}

	if s.seed && len(s.residents(s.data)) == 0 {
		if err := s.seedSampleData(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Dataset loaded",
		zap.String("key", s.key),
		zap.Int("top_level_keys", len(s.data)),
	)
	return s, nil
}

// Close writes the dataset a final time.
func (s *Store) Close(ctx context.Context) error {
	return s.Flush(ctx)
}

// Flush re-persists the current dataset.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, s.data.clone())
}

// RunAutosave flushes every interval until ctx is done.
func (s *Store) RunAutosave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Starting autosave", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("Autosave failed", zap.Error(err))
			}
		}
	}
}

// Snapshot returns a copy of the raw dataset.
func (s *Store) Snapshot() Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

// Replace swaps the whole dataset for d.
func (s *Store) Replace(ctx context.Context, d Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, d.clone())
}

// Merge overlays the top-level keys of d onto the dataset.
func (s *Store) Merge(ctx context.Context, d Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	for k, v := range d {
		next[k] = v
	}
	return s.commit(ctx, next)
}

// RemoveKey drops one top-level key. Absent keys are a no-op.
func (s *Store) RemoveKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	next := s.data.clone()
	delete(next, key)
	return s.commit(ctx, next)
}

// Clear empties the dataset and deletes the kv key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.data = Dataset{}
	s.logger.Info("Storage cleared", zap.String("key", s.key))
	return nil
}

// StorageInfo reports how much of the quota the dataset occupies.
func (s *Store) StorageInfo(ctx context.Context) (kv.Usage, error) {
	return kv.UsageOf(ctx, s.kv, s.key, s.quota)
}

// commit persists next and adopts it on success. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, next Dataset) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// persist writes d, running one cleanup pass and one retry on quota errors.
func (s *Store) persist(ctx context.Context, d Dataset) error {
	err := s.write(ctx, d)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrQuotaExceeded) {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.logger.Warn("Storage quota exceeded, removing old data", zap.String("key", s.key))
	if _, cerr := s.cleanup(d); cerr != nil {
		return fmt.Errorf("%w: %w", ErrStorage, cerr)
	}
	if err := s.write(ctx, d); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, d Dataset) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return s.kv.Set(ctx, s.key, string(b))
}

// read decodes the envelope value under key into v. Missing keys leave v untouched.
func (s *Store) read(d Dataset, key string, v any) {
	raw, ok := d[key]
	if !ok {
		return
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Value) == 0 {
		s.logger.Warn("Skipping unreadable dataset key", zap.String("key", key), zap.Error(err))
		return
	}
	if err := json.Unmarshal(env.Value, v); err != nil {
		s.logger.Warn("Skipping unreadable dataset value", zap.String("key", key), zap.Error(err))
	}
}

// put wraps v in a fresh envelope under key.
func (s *Store) put(d Dataset, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	env, err := json.Marshal(Envelope{
		Value:     value,
		Timestamp: s.stamp(),
		Version:   SchemaVersion,
	})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}
	d[key] = env
	return nil
}

// stamp is the UTC creation/update time for records.
func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// newID is time-ordered with a random suffix (UUIDv7).
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// merge shallow-merges updates over rec by JSON field name, skipping protected keys.
func merge[T any](rec T, updates map[string]any, protected ...string) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	skip := make(map[string]bool, len(protected))
	for _, p := range protected {
		skip[p] = true
	}
	for k, v := range updates {
		if !skip[k] {
			fields[k] = v
		}
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return out, invalid("updates", err.Error())
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, invalid("updates", err.Error())
	}
	return out, nil
}
