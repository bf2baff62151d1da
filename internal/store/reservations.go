package store

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

// prepareReservation validates r and normalizes its date.
func prepareReservation(r *domain.Reservation) error {
	if !r.Area.Valid() {
		return invalid("area", "must be multipurpose_room, bbq_area or pool")
	}
	if !validate.NotEmpty(r.Apartment) {
		return invalid("apartment", "is required")
	}
	date, ok := normalizeDate(r.Date)
	if !ok {
		return invalid("date", "must be a YYYY-MM-DD date")
	}
	r.Date = date

	start, end := validate.MinuteOfDay(r.Start), validate.MinuteOfDay(r.End)
	if start < 0 {
		return invalid("start", "must be HH:MM")
	}
	if end < 0 {
		return invalid("end", "must be HH:MM")
	}
	if start >= end {
		return invalid("end", "must be after start")
	}
	r.Status = domain.ReservationConfirmed
	return nil
}

func conflictError(r domain.Reservation) error {
	return fmt.Errorf("%w: %s %s-%s", ErrConflict, r.Date, r.Start, r.End)
}

// AddReservation books r. It fails with ErrConflict, leaving the dataset
// unchanged, when another booking of the same area and date overlaps.
func (s *Store) AddReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	if err := prepareReservation(&r); err != nil {
		return domain.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = ""
	existing := s.reservations(s.data)
	if other, found := findConflict(existing, r); found {
		s.logger.Debug("Reservation rejected",
			zap.String("area", string(r.Area)),
			zap.String("date", r.Date),
			zap.String("conflicts_with", other.ID),
		)
		return domain.Reservation{}, conflictError(other)
	}

	now := s.stamp()
	r.ID = newID()
	r.CreatedAt = now
	r.UpdatedAt = now

	next := s.data.clone()
	if err := s.put(next, KeyReservations, append(existing, r)); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Reservation{}, err
	}

	s.logger.Debug("Reservation added",
		zap.String("id", r.ID),
		zap.String("area", string(r.Area)),
		zap.String("date", r.Date),
	)
	return r, nil
}

// UpdateReservation merges updates and re-checks conflicts, ignoring the
// reservation being updated.
func (s *Store) UpdateReservation(ctx context.Context, id string, updates map[string]any) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	list := s.reservations(next)
	idx := indexOf(list, func(r domain.Reservation) bool { return r.ID == id })
	if idx < 0 {
		return domain.Reservation{}, ErrNotFound
	}

	updated, err := merge(list[idx], updates, "id", "createdAt", "updatedAt")
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := prepareReservation(&updated); err != nil {
		return domain.Reservation{}, err
	}
	if other, found := findConflict(list, updated); found {
		return domain.Reservation{}, conflictError(other)
	}
	updated.UpdatedAt = s.stamp()
	list[idx] = updated

	if err := s.put(next, KeyReservations, list); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Reservation{}, err
	}
	return updated, nil
}

// ReservationsByDate returns bookings in chronological order, optionally
// restricted to one area.
func (s *Store) ReservationsByDate(area domain.Area) []domain.Reservation {
	all := s.Reservations()
	out := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if area == "" || r.Area == area {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := normalizeDate(out[i].Date)
		dj, _ := normalizeDate(out[j].Date)
		if di != dj {
			return di < dj
		}
		return validate.MinuteOfDay(out[i].Start) < validate.MinuteOfDay(out[j].Start)
	})
	return out
}
