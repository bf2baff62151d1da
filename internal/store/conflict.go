package store

import (
	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

const dateLayout = "2006-01-02"

// normalizeDate reduces a date or timestamp to YYYY-MM-DD.
func normalizeDate(s string) (string, bool) {
	t, ok := validate.ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(dateLayout), true
}

// overlaps is the half-open interval test; touching endpoints do not overlap.
func overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && end1 > start2
}

// findConflict returns the first reservation in existing that shares area
// and date with candidate and overlaps it in time. A stored record with the
// candidate's own id is skipped.
func findConflict(existing []domain.Reservation, candidate domain.Reservation) (domain.Reservation, bool) {
	date, ok := normalizeDate(candidate.Date)
	if !ok {
		return domain.Reservation{}, false
	}
	start, end := validate.MinuteOfDay(candidate.Start), validate.MinuteOfDay(candidate.End)
	if start < 0 || end < 0 {
		return domain.Reservation{}, false
	}

	for _, r := range existing {
		if r.Area != candidate.Area {
			continue
		}
		// an unsaved candidate has no id and excludes nothing
		if candidate.ID != "" && r.ID == candidate.ID {
			continue
		}
		if d, ok := normalizeDate(r.Date); !ok || d != date {
			continue
		}
		s2, e2 := validate.MinuteOfDay(r.Start), validate.MinuteOfDay(r.End)
		if s2 < 0 || e2 < 0 {
			continue
		}
		if overlaps(start, end, s2, e2) {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// HasScheduleConflict reports whether r would overlap an existing booking.
func (s *Store) HasScheduleConflict(r domain.Reservation) bool {
	_, found := findConflict(s.Reservations(), r)
	return found
}
