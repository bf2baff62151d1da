// Package backup snapshots the store into a secondary kv slot and moves the
// dataset in and out as JSON documents.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

const DefaultKey = "conadmin_backup"

// ErrNoSnapshot is returned by LatestSnapshot and Restore before the first snapshot.
var ErrNoSnapshot = errors.New("no backup available")

// Snapshot is the document kept under the backup key.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Data      store.Dataset `json:"data"`
}

// Export is the document produced for manual backups.
type Export struct {
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
	Data       store.Dataset `json:"data"`
}

type Service struct {
	store  *store.Store
	kv     kv.Store
	key    string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(st *store.Store, kvStore kv.Store, key string, logger *zap.Logger) *Service {
	if key == "" {
		key = DefaultKey
	}
	return &Service{
		store:  st,
		kv:     kvStore,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// CreateSnapshot overwrites the backup slot with the current dataset.
func (s *Service) CreateSnapshot(ctx context.Context) error {
	snap := Snapshot{
		Timestamp: s.now().UTC(),
		Version:   store.SchemaVersion,
		Data:      s.store.Snapshot(),
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("Backup created",
		zap.String("key", s.key),
		zap.Int("bytes", len(b)),
	)
	return nil
}

// LatestSnapshot reads the backup slot.
func (s *Service) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Data == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// Restore replaces the live dataset with the latest snapshot.
func (s *Service) Restore(ctx context.Context) error {
	snap, err := s.LatestSnapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Replace(ctx, snap.Data); err != nil {
		return err
	}
	s.logger.Info("Backup restored", zap.Time("snapshot_time", snap.Timestamp))
	return nil
}

// ExportAll renders the dataset as an indented export document.
func (s *Service) ExportAll() (string, error) {
	b, err := json.MarshalIndent(Export{
		ExportDate: s.now().UTC(),
		Version:    store.SchemaVersion,
		Data:       s.store.Snapshot(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(b), nil
}

// ImportAll shallow-merges the top-level keys of an export document into the
// live dataset. Malformed JSON, a missing data field or a known key that does
// not decode into its records changes nothing.
func (s *Service) ImportAll(ctx context.Context, payload string) error {
	var doc struct {
		Data store.Dataset `json:"data"`
	}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		s.logger.Warn("Import rejected", zap.Error(err))
		return fmt.Errorf("%w: %w", store.ErrImport, err)
	}
	if doc.Data == nil {
		s.logger.Warn("Import rejected: missing data field")
		return fmt.Errorf("%w: missing data field", store.ErrImport)
	}
	for k, v := range doc.Data {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return fmt.Errorf("%w: %s: %w", store.ErrImport, k, err)
		}
		doc.Data[k] = buf.Bytes()
	}
	if err := store.CheckDataset(doc.Data); err != nil {
		s.logger.Warn("Import rejected", zap.Error(err))
		return fmt.Errorf("%w: %w", store.ErrImport, err)
	}
	if err := s.store.Merge(ctx, doc.Data); err != nil {
		return err
	}

	s.logger.Info("Data imported", zap.Int("top_level_keys", len(doc.Data)))
	return nil
}
