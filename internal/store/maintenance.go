package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

func validateMaintenance(m domain.MaintenanceRequest) error {
	if !validate.NotEmpty(m.Title) {
		return invalid("title", "is required")
	}
	if !m.Priority.Valid() {
		return invalid("priority", "must be low, medium, high or urgent")
	}
	if !m.Status.Valid() {
		return invalid("status", "must be pending, in_progress or completed")
	}
	return nil
}

// AddMaintenance files a request. Priority defaults to medium, status to pending.
func (s *Store) AddMaintenance(ctx context.Context, m domain.MaintenanceRequest) (domain.MaintenanceRequest, error) {
	if m.Priority == "" {
		m.Priority = domain.PriorityMedium
	}
	if m.Status == "" {
		m.Status = domain.MaintenancePending
	}
	if err := validateMaintenance(m); err != nil {
		return domain.MaintenanceRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.ResolvedAt = nil
	if m.Status == domain.MaintenanceCompleted {
		m.ResolvedAt = &now
	}

	next := s.data.clone()
	if err := s.put(next, KeyMaintenance, append(s.maintenance(next), m)); err != nil {
		return domain.MaintenanceRequest{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.MaintenanceRequest{}, err
	}

	s.logger.Debug("Maintenance request added", zap.String("id", m.ID), zap.String("priority", string(m.Priority)))
	return m, nil
}

// UpdateMaintenance merges updates. Status may only move forward along
// pending, in_progress, completed; reaching completed stamps resolvedAt.
func (s *Store) UpdateMaintenance(ctx context.Context, id string, updates map[string]any) (domain.MaintenanceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	list := s.maintenance(next)
	idx := indexOf(list, func(m domain.MaintenanceRequest) bool { return m.ID == id })
	if idx < 0 {
		return domain.MaintenanceRequest{}, ErrNotFound
	}

	prev := list[idx]
	updated, err := merge(prev, updates, "id", "createdAt", "updatedAt", "resolvedAt")
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	if err := validateMaintenance(updated); err != nil {
		return domain.MaintenanceRequest{}, err
	}
	if updated.Status.Rank() < prev.Status.Rank() {
		return domain.MaintenanceRequest{}, invalid("status",
			fmt.Sprintf("cannot move from %s back to %s", prev.Status, updated.Status))
	}

	now := s.stamp()
	updated.UpdatedAt = now
	if updated.Status == domain.MaintenanceCompleted && prev.Status != domain.MaintenanceCompleted {
		updated.ResolvedAt = &now
	}
	list[idx] = updated

	if err := s.put(next, KeyMaintenance, list); err != nil {
		return domain.MaintenanceRequest{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.MaintenanceRequest{}, err
	}

	s.logger.Debug("Maintenance request updated", zap.String("id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

// SetMaintenanceStatus is UpdateMaintenance restricted to the status field.
func (s *Store) SetMaintenanceStatus(ctx context.Context, id string, status domain.MaintenanceStatus) (domain.MaintenanceRequest, error) {
	return s.UpdateMaintenance(ctx, id, map[string]any{"status": string(status)})
}

// DeleteMaintenance removes the request if present.
func (s *Store) DeleteMaintenance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.maintenance(s.data)
	idx := indexOf(list, func(m domain.MaintenanceRequest) bool { return m.ID == id })
	if idx < 0 {
		return nil
	}

	next := s.data.clone()
	if err := s.put(next, KeyMaintenance, append(list[:idx], list[idx+1:]...)); err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Debug("Maintenance request deleted", zap.String("id", id))
	return nil
}
