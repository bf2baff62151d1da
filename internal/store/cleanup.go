package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// CleanupResult summarizes one purge of old maintenance records.
type CleanupResult struct {
	TargetCount  int       `json:"target_count"`
	DeletedCount int       `json:"deleted_count"`
	DeletedIDs   []string  `json:"deleted_ids"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// cleanup drops completed maintenance older than the retention period from d.
func (s *Store) cleanup(d Dataset) (CleanupResult, error) {
	now := s.now()
	result := CleanupResult{ExecutedAt: now.UTC(), DeletedIDs: []string{}}

	list := s.maintenance(d)
	kept := make([]domain.MaintenanceRequest, 0, len(list))
	for _, m := range list {
		if m.Status == domain.MaintenanceCompleted && now.Sub(m.CreatedAt) > s.retention {
			result.DeletedIDs = append(result.DeletedIDs, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	result.TargetCount = len(result.DeletedIDs)
	if result.TargetCount == 0 {
		return result, nil
	}
	if err := s.put(d, KeyMaintenance, kept); err != nil {
		return result, err
	}
	result.DeletedCount = result.TargetCount

	s.logger.Info("Cleaned up old maintenance records",
		zap.Int("deleted_count", result.DeletedCount),
		zap.Duration("retention", s.retention),
	)
	return result, nil
}

// CleanupOldData runs the quota cleanup on demand.
func (s *Store) CleanupOldData(ctx context.Context) (CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	result, err := s.cleanup(next)
	if err != nil || result.DeletedCount == 0 {
		return result, err
	}
	if err := s.commit(ctx, next); err != nil {
		return CleanupResult{}, err
	}
	return result, nil
}
