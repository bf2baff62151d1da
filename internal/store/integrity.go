package store

import (
	"fmt"
)

// debtTolerance absorbs rounding in imported data.
const debtTolerance = 1

// IntegrityReport lists soundness problems found by VerifyIntegrity.
type IntegrityReport struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

// VerifyIntegrity flags payments pointing at unknown residents and residents
// whose stored debt differs from the recomputed figure. It repairs nothing.
func (s *Store) VerifyIntegrity() IntegrityReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	residents := s.residents(s.data)
	payments := s.payments(s.data)
	fee := s.settings(s.data).MonthlyFee
	months := monthCount(residents, s.now())

	known := make(map[string]bool, len(residents))
	for _, r := range residents {
		known[r.ID] = true
	}

	issues := []string{}
	for _, p := range payments {
		if !known[p.ResidentID] {
			issues = append(issues, fmt.Sprintf("payment %s references missing resident %s", p.ID, p.ResidentID))
		}
	}
	for _, r := range residents {
		want := expectedDebt(r.ID, payments, fee, months)
		diff := r.Debt - want
		if diff > debtTolerance || diff < -debtTolerance {
			issues = append(issues, fmt.Sprintf("resident %s has inconsistent debt: %d vs %d", r.ID, r.Debt, want))
		}
	}

	return IntegrityReport{IsValid: len(issues) == 0, Issues: issues}
}
