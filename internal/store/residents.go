package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

func validateResident(r domain.Resident) error {
	if !validate.NotEmpty(r.Name) {
		return invalid("name", "is required")
	}
	if !validate.NotEmpty(r.Apartment) {
		return invalid("apartment", "is required")
	}
	if !validate.RUT(r.RUT) {
		return invalid("rut", "invalid RUT")
	}
	if r.Phone != "" && !validate.Phone(r.Phone) {
		return invalid("phone", "invalid Chilean mobile number")
	}
	if r.Email != "" && !validate.Email(r.Email) {
		return invalid("email", "invalid e-mail address")
	}
	if !r.OccupancyStatus.Valid() {
		return invalid("occupancyStatus", "must be owner, tenant or vacant")
	}
	return nil
}

func normalizeResident(r *domain.Resident) {
	r.Name = strings.TrimSpace(r.Name)
	r.Apartment = strings.TrimSpace(r.Apartment)
	r.RUT = validate.FormatRUT(r.RUT)
	if r.OccupancyStatus == "" {
		r.OccupancyStatus = domain.OccupancyOwner
	}
}

// AddResident registers r with a new id and its computed debt.
func (s *Store) AddResident(ctx context.Context, r domain.Resident) (domain.Resident, error) {
	normalizeResident(&r)
	if err := validateResident(r); err != nil {
		return domain.Resident{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	r.ID = newID()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Debt = 0

	next := s.data.clone()
	residents := append(s.residents(next), r)
	if err := s.put(next, KeyResidents, residents); err != nil {
		return domain.Resident{}, err
	}
	if err := s.recomputeDebts(next, r.ID); err != nil {
		return domain.Resident{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Resident{}, err
	}

	s.logger.Debug("Resident added", zap.String("id", r.ID), zap.String("apartment", r.Apartment))
	return s.findResident(r.ID), nil
}

// UpdateResident shallow-merges updates into the resident. id, createdAt and
// debt cannot be overwritten.
func (s *Store) UpdateResident(ctx context.Context, id string, updates map[string]any) (domain.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	residents := s.residents(next)
	idx := indexOf(residents, func(r domain.Resident) bool { return r.ID == id })
	if idx < 0 {
		return domain.Resident{}, ErrNotFound
	}

	updated, err := merge(residents[idx], updates, "id", "createdAt", "updatedAt", "debt")
	if err != nil {
		return domain.Resident{}, err
	}
	normalizeResident(&updated)
	if err := validateResident(updated); err != nil {
		return domain.Resident{}, err
	}
	updated.UpdatedAt = s.stamp()
	residents[idx] = updated

	if err := s.put(next, KeyResidents, residents); err != nil {
		return domain.Resident{}, err
	}
	if err := s.recomputeDebts(next, id); err != nil {
		return domain.Resident{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Resident{}, err
	}

	s.logger.Debug("Resident updated", zap.String("id", id))
	return s.findResident(id), nil
}

// DeleteResident removes the resident if present. Payments keep their
// residentId. Remaining debts are recomputed since the billing start may move.
func (s *Store) DeleteResident(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	residents := s.residents(s.data)
	idx := indexOf(residents, func(r domain.Resident) bool { return r.ID == id })
	if idx < 0 {
		return nil
	}

	next := s.data.clone()
	residents = append(residents[:idx], residents[idx+1:]...)
	if err := s.put(next, KeyResidents, residents); err != nil {
		return err
	}
	if err := s.recomputeDebts(next); err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Debug("Resident deleted", zap.String("id", id))
	return nil
}

// Resident looks up one resident by id.
func (s *Store) Resident(id string) (domain.Resident, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.findResident(id)
	return r, r.ID != ""
}

// findResident reads from s.data. Caller holds s.mu.
func (s *Store) findResident(id string) domain.Resident {
	for _, r := range s.residents(s.data) {
		if r.ID == id {
			return r
		}
	}
	return domain.Resident{}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}
