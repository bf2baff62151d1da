package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

// KeyNotifications holds UI notifications. The store only carries it.
const KeyNotifications = "notifications"

type notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
}

// seedSampleData fills an empty dataset with a small demonstration building.
func (s *Store) seedSampleData(ctx context.Context) error {
	now := s.stamp()
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)

	residents := []domain.Resident{
		{Name: "Juan Pérez González", RUT: "12.345.678-5", Phone: "+56 9 1234 5678", Email: "juan.perez@email.com", Apartment: "101", OccupancyStatus: domain.OccupancyOwner},
		{Name: "María Rodríguez Silva", RUT: "98.765.432-5", Phone: "+56 9 8765 4321", Email: "maria.rodriguez@email.com", Apartment: "102", OccupancyStatus: domain.OccupancyTenant, Notes: "Dueño: Carlos Silva M."},
		{Name: "Carlos López Martínez", RUT: "15.678.901-1", Phone: "+56 9 2345 6789", Email: "carlos.lopez@email.com", Apartment: "201", OccupancyStatus: domain.OccupancyOwner},
	}
	for i := range residents {
		residents[i].ID = newID()
		residents[i].CreatedAt = now
		residents[i].UpdatedAt = now
	}

	payments := []domain.Payment{
		{ResidentID: residents[0].ID, Apartment: "101", ResidentName: residents[0].Name, Amount: 85000, Date: &now, Status: domain.PaymentPaid},
		{ResidentID: residents[1].ID, Apartment: "102", ResidentName: residents[1].Name, Amount: 85000, Status: domain.PaymentPending},
	}
	for i := range payments {
		payments[i].ID = newID()
		payments[i].CreatedAt = now
		payments[i].UpdatedAt = now
	}

	maintenance := []domain.MaintenanceRequest{{
		ID:          newID(),
		Title:       "Fuga de agua en baño",
		Description: "Hay una fuga en el grifo del baño del área común del segundo piso",
		Priority:    domain.PriorityHigh,
		Status:      domain.MaintenancePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}

	announcements := []domain.Announcement{{
		ID:        newID(),
		Title:     "Mantenimiento de ascensores",
		Content:   "El día viernes se realizará mantenimiento preventivo de los ascensores de 9:00 a 12:00 hrs.",
		Target:    domain.AudienceAll,
		CreatedAt: now,
		UpdatedAt: now,
	}}

	reservations := []domain.Reservation{{
		ID:        newID(),
		Area:      domain.AreaMultipurposeRoom,
		Apartment: "101",
		Date:      tomorrow,
		Start:     "18:00",
		End:       "22:00",
		Purpose:   "Cumpleaños familiar",
		Status:    domain.ReservationConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}}

	notifications := []notification{
		{ID: newID(), Title: "Pago pendiente", Message: "María Rodríguez tiene un pago pendiente", Type: "payment"},
		{ID: newID(), Title: "Nueva reserva", Message: "Juan Pérez ha reservado el salón multiuso para mañana", Type: "reservation"},
	}

	next := s.data.clone()
	for key, v := range map[string]any{
		KeyResidents:     residents,
		KeyPayments:      payments,
		KeyMaintenance:   maintenance,
		KeyAnnouncements: announcements,
		KeyReservations:  reservations,
		KeyNotifications: notifications,
	} {
		if err := s.put(next, key, v); err != nil {
			return err
		}
	}
	if err := s.recomputeDebts(next); err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info("Sample data loaded", zap.Int("residents", len(residents)))
	return nil
}
