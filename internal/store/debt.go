package store

import (
	"time"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// monthCount is the inclusive number of calendar months between the oldest
// resident's creation and now, never less than one. Every resident is billed
// from that same month.
func monthCount(residents []domain.Resident, now time.Time) int {
	var oldest time.Time
	for _, r := range residents {
		if r.CreatedAt.IsZero() {
			continue
		}
		if oldest.IsZero() || r.CreatedAt.Before(oldest) {
			oldest = r.CreatedAt
		}
	}
	if oldest.IsZero() {
		return 1
	}

	oldest = oldest.In(now.Location())
	months := (now.Year()-oldest.Year())*12 + int(now.Month()-oldest.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

func totalPaid(residentID string, payments []domain.Payment) int64 {
	var sum int64
	for _, p := range payments {
		if p.ResidentID == residentID && p.Status == domain.PaymentPaid {
			sum += p.Amount
		}
	}
	return sum
}

// expectedDebt is max(0, fee*months - paid).
func expectedDebt(residentID string, payments []domain.Payment, fee int64, months int) int64 {
	debt := fee*int64(months) - totalPaid(residentID, payments)
	if debt < 0 {
		return 0
	}
	return debt
}

// recomputeDebts refreshes debt on the given residents, or on all of them
// when ids is empty, and writes the collection back into d.
func (s *Store) recomputeDebts(d Dataset, ids ...string) error {
	residents := s.residents(d)
	if len(residents) == 0 {
		return nil
	}
	payments := s.payments(d)
	fee := s.settings(d).MonthlyFee
	months := monthCount(residents, s.now())

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	changed := false
	for i := range residents {
		if len(ids) > 0 && !want[residents[i].ID] {
			continue
		}
		debt := expectedDebt(residents[i].ID, payments, fee, months)
		if residents[i].Debt != debt {
			residents[i].Debt = debt
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.put(d, KeyResidents, residents)
}
