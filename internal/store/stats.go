package store

import (
	"math"
	"sort"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// Statistics is the dashboard summary, recomputed on every call.
type Statistics struct {
	TotalResidents     int   `json:"totalResidents"`
	OccupancyRate      int   `json:"occupancyRate"`
	TotalDebt          int64 `json:"totalDebt"`
	MonthlyIncome      int64 `json:"monthlyIncome"`
	PendingMaintenance int   `json:"pendingMaintenance"`
	PendingPayments    int   `json:"pendingPayments"`
}

func occupancyRate(residents []domain.Resident) int {
	if len(residents) == 0 {
		return 0
	}
	return int(math.Round(float64(occupied(residents)) / float64(len(residents)) * 100))
}

func occupied(residents []domain.Resident) int {
	n := 0
	for _, r := range residents {
		if r.OccupancyStatus != domain.OccupancyVacant {
			n++
		}
	}
	return n
}

func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	residents := s.residents(s.data)
	st := Statistics{
		TotalResidents: len(residents),
		OccupancyRate:  occupancyRate(residents),
		MonthlyIncome:  s.settings(s.data).MonthlyFee * int64(occupied(residents)),
	}
	for _, r := range residents {
		st.TotalDebt += r.Debt
		if r.Debt > 0 {
			st.PendingPayments++
		}
	}
	for _, m := range s.maintenance(s.data) {
		if m.Status == domain.MaintenancePending {
			st.PendingMaintenance++
		}
	}
	return st
}

// MonthlyIncome is one point of the income series.
type MonthlyIncome struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

// FinancialSeries sums paid amounts per YYYY-MM, oldest month first.
// Paid payments without a date are left out.
func (s *Store) FinancialSeries() []MonthlyIncome {
	totals := map[string]int64{}
	for _, p := range s.Payments() {
		if p.Status != domain.PaymentPaid || p.Date == nil {
			continue
		}
		totals[p.Date.UTC().Format("2006-01")] += p.Amount
	}

	out := make([]MonthlyIncome, 0, len(totals))
	for month, amount := range totals {
		out = append(out, MonthlyIncome{Month: month, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// MaintenanceBreakdown counts requests per status.
type MaintenanceBreakdown struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func (s *Store) MaintenanceBreakdown() MaintenanceBreakdown {
	var b MaintenanceBreakdown
	for _, m := range s.Maintenance() {
		switch m.Status {
		case domain.MaintenancePending:
			b.Pending++
		case domain.MaintenanceInProgress:
			b.InProgress++
		case domain.MaintenanceCompleted:
			b.Completed++
		}
	}
	return b
}
