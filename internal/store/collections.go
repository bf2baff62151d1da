package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

func list[T any](s *Store, d Dataset, key string) []T {
	out := []T{}
	s.read(d, key, &out)
	if out == nil {
		out = []T{}
	}
	return out
}

func (s *Store) residents(d Dataset) []domain.Resident {
	return list[domain.Resident](s, d, KeyResidents)
}

func (s *Store) payments(d Dataset) []domain.Payment {
	return list[domain.Payment](s, d, KeyPayments)
}

func (s *Store) maintenance(d Dataset) []domain.MaintenanceRequest {
	return list[domain.MaintenanceRequest](s, d, KeyMaintenance)
}

func (s *Store) announcements(d Dataset) []domain.Announcement {
	return list[domain.Announcement](s, d, KeyAnnouncements)
}

func (s *Store) reservations(d Dataset) []domain.Reservation {
	return list[domain.Reservation](s, d, KeyReservations)
}

// Residents returns every resident in insertion order.
func (s *Store) Residents() []domain.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.residents(s.data)
}

func (s *Store) Payments() []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments(s.data)
}

func (s *Store) Maintenance() []domain.MaintenanceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maintenance(s.data)
}

// Announcements returns newest first.
func (s *Store) Announcements() []domain.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcements(s.data)
}

func (s *Store) Reservations() []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations(s.data)
}

// saveList replaces a whole collection as given.
func saveList[T any](ctx context.Context, s *Store, key string, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	next := s.data.clone()
	if err := s.put(next, key, items); err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Debug("Collection saved", zap.String("collection", key), zap.Int("count", len(items)))
	return nil
}

// SaveResidents replaces the resident collection verbatim; debts are not recomputed.
func (s *Store) SaveResidents(ctx context.Context, residents []domain.Resident) error {
	return saveList(ctx, s, KeyResidents, residents)
}

func (s *Store) SavePayments(ctx context.Context, payments []domain.Payment) error {
	return saveList(ctx, s, KeyPayments, payments)
}

func (s *Store) SaveMaintenance(ctx context.Context, requests []domain.MaintenanceRequest) error {
	return saveList(ctx, s, KeyMaintenance, requests)
}

func (s *Store) SaveAnnouncements(ctx context.Context, announcements []domain.Announcement) error {
	return saveList(ctx, s, KeyAnnouncements, announcements)
}

func (s *Store) SaveReservations(ctx context.Context, reservations []domain.Reservation) error {
	return saveList(ctx, s, KeyReservations, reservations)
}
