package store

import (
	"encoding/json"
	"fmt"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// knownValues returns a decode target for each top-level key this package reads.
var knownValues = map[string]func() any{
	KeyResidents:     func() any { return &[]domain.Resident{} },
	KeyPayments:      func() any { return &[]domain.Payment{} },
	KeyMaintenance:   func() any { return &[]domain.MaintenanceRequest{} },
	KeyAnnouncements: func() any { return &[]domain.Announcement{} },
	KeyReservations:  func() any { return &[]domain.Reservation{} },
	KeyConfig:        func() any { return &domain.Settings{} },
}

// CheckDataset reports the first known key in d whose envelope or value does
// not decode into its record type. Unknown keys are not inspected.
func CheckDataset(d Dataset) error {
	for key, raw := range d {
		target, ok := knownValues[key]
		if !ok {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("%s: not an envelope: %w", key, err)
		}
		if len(env.Value) == 0 {
			return fmt.Errorf("%s: envelope has no value", key)
		}
		if err := json.Unmarshal(env.Value, target()); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
