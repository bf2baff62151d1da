package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

func validatePayment(p domain.Payment) error {
	if !validate.NotEmpty(p.ResidentID) {
		return invalid("residentId", "is required")
	}
	if p.Amount <= 0 {
		return invalid("amount", "must be a positive amount")
	}
	if !p.Status.Valid() {
		return invalid("status", "must be paid or pending")
	}
	return nil
}

// fillPayment applies the status default, stamps the paid date and copies
// the resident snapshot fields when they are blank.
func (s *Store) fillPayment(d Dataset, p *domain.Payment) {
	if p.Status == "" {
		p.Status = domain.PaymentPending
	}
	if p.Status == domain.PaymentPaid && p.Date == nil {
		now := s.stamp()
		p.Date = &now
	}
	if p.Apartment != "" && p.ResidentName != "" {
		return
	}
	for _, r := range s.residents(d) {
		if r.ID != p.ResidentID {
			continue
		}
		if p.Apartment == "" {
			p.Apartment = r.Apartment
		}
		if p.ResidentName == "" {
			p.ResidentName = r.Name
		}
		return
	}
}

// AddPayment records p and refreshes the referenced resident's debt in the
// same write.
func (s *Store) AddPayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	s.fillPayment(next, &p)
	if err := validatePayment(p); err != nil {
		return domain.Payment{}, err
	}

	now := s.stamp()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	payments := append(s.payments(next), p)
	if err := s.put(next, KeyPayments, payments); err != nil {
		return domain.Payment{}, err
	}
	if err := s.recomputeDebts(next, p.ResidentID); err != nil {
		return domain.Payment{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Payment{}, err
	}

	s.logger.Debug("Payment added",
		zap.String("id", p.ID),
		zap.String("resident_id", p.ResidentID),
		zap.Int64("amount", p.Amount),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

// UpdatePayment merges updates and refreshes debt for the old and new
// resident when the reference changes.
func (s *Store) UpdatePayment(ctx context.Context, id string, updates map[string]any) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	payments := s.payments(next)
	idx := indexOf(payments, func(p domain.Payment) bool { return p.ID == id })
	if idx < 0 {
		return domain.Payment{}, ErrNotFound
	}

	prev := payments[idx]
	updated, err := merge(prev, updates, "id", "createdAt", "updatedAt")
	if err != nil {
		return domain.Payment{}, err
	}
	s.fillPayment(next, &updated)
	if err := validatePayment(updated); err != nil {
		return domain.Payment{}, err
	}
	updated.UpdatedAt = s.stamp()
	payments[idx] = updated

	if err := s.put(next, KeyPayments, payments); err != nil {
		return domain.Payment{}, err
	}
	if err := s.recomputeDebts(next, prev.ResidentID, updated.ResidentID); err != nil {
		return domain.Payment{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Payment{}, err
	}

	s.logger.Debug("Payment updated", zap.String("id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

// MarkPaid sets a payment's status to paid dated now.
func (s *Store) MarkPaid(ctx context.Context, id string) (domain.Payment, error) {
	return s.UpdatePayment(ctx, id, map[string]any{
		"status": string(domain.PaymentPaid),
		"date":   s.stamp(),
	})
}

// PaymentsFor returns the payments referencing residentID.
func (s *Store) PaymentsFor(residentID string) []domain.Payment {
	out := []domain.Payment{}
	for _, p := range s.Payments() {
		if p.ResidentID == residentID {
			out = append(out, p)
		}
	}
	return out
}
