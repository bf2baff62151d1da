package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

func (s *Store) settings(d Dataset) domain.Settings {
	cfg := domain.DefaultSettings()
	s.read(d, KeyConfig, &cfg)
	if cfg.MonthlyFee <= 0 {
		cfg.MonthlyFee = domain.DefaultMonthlyFee
	}
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}
	return cfg
}

// Config returns the building settings, defaults filled in.
func (s *Store) Config() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings(s.data)
}

// MonthlyFee is the common-expense amount charged per unit and month.
func (s *Store) MonthlyFee() int64 {
	return s.Config().MonthlyFee
}

func validateSettings(cfg domain.Settings) error {
	if cfg.MonthlyFee <= 0 {
		return invalid("monthlyFee", "must be a positive amount")
	}
	if cfg.Currency != "" {
		if _, err := currency.ParseISO(cfg.Currency); err != nil {
			return invalid("currency", "unknown ISO 4217 code")
		}
	}
	if cfg.Email != "" && !validate.Email(cfg.Email) {
		return invalid("email", "invalid e-mail address")
	}
	if cfg.Phone != "" && !validate.Phone(cfg.Phone) {
		return invalid("phone", "invalid Chilean mobile number")
	}
	return nil
}

// SaveConfig stores cfg and recomputes every resident's debt against the new fee.
func (s *Store) SaveConfig(ctx context.Context, cfg domain.Settings) error {
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}
	if err := validateSettings(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	if err := s.put(next, KeyConfig, cfg); err != nil {
		return err
	}
	if err := s.recomputeDebts(next); err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info("Settings saved", zap.Int64("monthly_fee", cfg.MonthlyFee))
	return nil
}

// SetMonthlyFee changes only the fee.
func (s *Store) SetMonthlyFee(ctx context.Context, amount int64) error {
	cfg := s.Config()
	cfg.MonthlyFee = amount
	return s.SaveConfig(ctx, cfg)
}
