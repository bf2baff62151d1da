package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

func booking(area domain.Area, date, start, end string) domain.Reservation {
	return domain.Reservation{Area: area, Apartment: "101", Date: date, Start: start, End: end, Purpose: "Cumpleaños"}
}

func TestAddReservation_Conflicts(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	first, err := s.AddReservation(ctx, booking(domain.AreaMultipurposeRoom, "2024-03-01", "18:00", "20:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, first.Status)

	tests := []struct {
		name     string
		r        domain.Reservation
		conflict bool
	}{
		{"overlapping tail", booking(domain.AreaMultipurposeRoom, "2024-03-01", "19:00", "21:00"), true},
		{"overlapping head", booking(domain.AreaMultipurposeRoom, "2024-03-01", "17:00", "18:30"), true},
		{"contained", booking(domain.AreaMultipurposeRoom, "2024-03-01", "18:30", "19:30"), true},
		{"same date as timestamp", booking(domain.AreaMultipurposeRoom, "2024-03-01T12:00:00Z", "19:00", "19:30"), true},
		{"adjacent before", booking(domain.AreaMultipurposeRoom, "2024-03-01", "16:00", "18:00"), false},
		{"other area", booking(domain.AreaPool, "2024-03-01", "18:00", "20:00"), false},
		{"other date", booking(domain.AreaMultipurposeRoom, "2024-03-02", "18:00", "20:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(s.Reservations())
			_, err := s.AddReservation(ctx, tt.r)
			if tt.conflict {
				assert.ErrorIs(t, err, store.ErrConflict)
				assert.Len(t, s.Reservations(), before)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, s.Reservations(), before+1)
		})
	}
}

func TestAddReservation_AdjacentEvening(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.AddReservation(ctx, booking(domain.AreaBBQ, "2024-03-01", "18:00", "20:00"))
	require.NoError(t, err)
	_, err = s.AddReservation(ctx, booking(domain.AreaBBQ, "2024-03-01", "20:00", "22:00"))
	require.NoError(t, err)

	assert.True(t, s.HasScheduleConflict(booking(domain.AreaBBQ, "2024-03-01", "19:59", "20:01")))
	assert.False(t, s.HasScheduleConflict(booking(domain.AreaBBQ, "2024-03-01", "22:00", "23:00")))
}

func TestAddReservation_Validation(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	bad := []domain.Reservation{
		booking("rooftop", "2024-03-01", "18:00", "20:00"),
		booking(domain.AreaPool, "01/03/2024", "18:00", "20:00"),
		booking(domain.AreaPool, "2024-03-01", "8:00", "20:00"),
		booking(domain.AreaPool, "2024-03-01", "20:00", "18:00"),
		booking(domain.AreaPool, "2024-03-01", "18:00", "18:00"),
	}
	for _, r := range bad {
		_, err := s.AddReservation(ctx, r)
		assert.ErrorIs(t, err, store.ErrValidation, "%+v", r)
	}
	assert.Empty(t, s.Reservations())
}

func TestAddReservation_ConflictsWithStoredRecordWithoutID(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	legacy := booking(domain.AreaPool, "2024-05-01", "18:00", "20:00")
	legacy.Status = domain.ReservationConfirmed
	require.NoError(t, s.SaveReservations(ctx, []domain.Reservation{legacy}))

	_, err := s.AddReservation(ctx, booking(domain.AreaPool, "2024-05-01", "19:00", "21:00"))
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Len(t, s.Reservations(), 1)
	assert.True(t, s.HasScheduleConflict(booking(domain.AreaPool, "2024-05-01", "19:30", "20:30")))
}

func TestUpdateReservation(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	a, err := s.AddReservation(ctx, booking(domain.AreaPool, "2024-03-01", "10:00", "12:00"))
	require.NoError(t, err)
	_, err = s.AddReservation(ctx, booking(domain.AreaPool, "2024-03-01", "14:00", "16:00"))
	require.NoError(t, err)

	// moving within its own slot is not a conflict with itself
	moved, err := s.UpdateReservation(ctx, a.ID, map[string]any{"end": "13:00"})
	require.NoError(t, err)
	assert.Equal(t, "13:00", moved.End)

	_, err = s.UpdateReservation(ctx, a.ID, map[string]any{"end": "15:00"})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.UpdateReservation(ctx, "missing", map[string]any{"end": "15:00"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReservationsByDate(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	for _, r := range []domain.Reservation{
		booking(domain.AreaPool, "2024-03-02", "10:00", "11:00"),
		booking(domain.AreaBBQ, "2024-03-01", "20:00", "22:00"),
		booking(domain.AreaPool, "2024-03-01", "09:00", "10:00"),
	} {
		_, err := s.AddReservation(ctx, r)
		require.NoError(t, err)
	}

	all := s.ReservationsByDate("")
	require.Len(t, all, 3)
	assert.Equal(t, "09:00", all[0].Start)
	assert.Equal(t, "20:00", all[1].Start)
	assert.Equal(t, "2024-03-02", all[2].Date)

	pool := s.ReservationsByDate(domain.AreaPool)
	assert.Len(t, pool, 2)
}
