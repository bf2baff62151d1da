package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

func validateAnnouncement(a domain.Announcement) error {
	if !validate.NotEmpty(a.Title) {
		return invalid("title", "is required")
	}
	if !validate.NotEmpty(a.Content) {
		return invalid("content", "is required")
	}
	return nil
}

// AddAnnouncement publishes a at the head of the list.
func (s *Store) AddAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	if a.Target == "" {
		a.Target = domain.AudienceAll
	}
	if err := validateAnnouncement(a); err != nil {
		return domain.Announcement{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now

	next := s.data.clone()
	list := append([]domain.Announcement{a}, s.announcements(next)...)
	if err := s.put(next, KeyAnnouncements, list); err != nil {
		return domain.Announcement{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Announcement{}, err
	}

	s.logger.Debug("Announcement added", zap.String("id", a.ID), zap.String("target", a.Target))
	return a, nil
}

func (s *Store) UpdateAnnouncement(ctx context.Context, id string, updates map[string]any) (domain.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	list := s.announcements(next)
	idx := indexOf(list, func(a domain.Announcement) bool { return a.ID == id })
	if idx < 0 {
		return domain.Announcement{}, ErrNotFound
	}

	updated, err := merge(list[idx], updates, "id", "createdAt", "updatedAt")
	if err != nil {
		return domain.Announcement{}, err
	}
	if updated.Target == "" {
		updated.Target = domain.AudienceAll
	}
	if err := validateAnnouncement(updated); err != nil {
		return domain.Announcement{}, err
	}
	updated.UpdatedAt = s.stamp()
	list[idx] = updated

	if err := s.put(next, KeyAnnouncements, list); err != nil {
		return domain.Announcement{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Announcement{}, err
	}
	return updated, nil
}
