package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

func TestMaintenanceLifecycle(t *testing.T) {
	s, _, clock := setupStore(t)
	ctx := context.Background()

	m, err := s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Fuga de agua", Description: "Baño segundo piso"})
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenancePending, m.Status)
	assert.Equal(t, domain.PriorityMedium, m.Priority)
	assert.Nil(t, m.ResolvedAt)
	assert.Empty(t, m.Apartment)

	m, err = s.SetMaintenanceStatus(ctx, m.ID, domain.MaintenanceInProgress)
	require.NoError(t, err)
	assert.Nil(t, m.ResolvedAt)

	done := baseTime.Add(48 * time.Hour)
	clock.Set(done)
	m, err = s.SetMaintenanceStatus(ctx, m.ID, domain.MaintenanceCompleted)
	require.NoError(t, err)
	require.NotNil(t, m.ResolvedAt)
	assert.Equal(t, done, *m.ResolvedAt)

	_, err = s.SetMaintenanceStatus(ctx, m.ID, domain.MaintenancePending)
	assert.ErrorIs(t, err, store.ErrValidation)
	assert.Equal(t, domain.MaintenanceCompleted, s.Maintenance()[0].Status)
}

func TestMaintenance_SkipToCompleted(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	m, err := s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Ampolleta", Priority: domain.PriorityLow, Apartment: "301"})
	require.NoError(t, err)

	m, err = s.UpdateMaintenance(ctx, m.ID, map[string]any{"status": "completed", "description": "cambiada"})
	require.NoError(t, err)
	assert.NotNil(t, m.ResolvedAt)
	assert.Equal(t, "cambiada", m.Description)
	assert.Equal(t, "301", m.Apartment)
}

func TestMaintenance_ValidationAndDelete(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.AddMaintenance(ctx, domain.MaintenanceRequest{})
	assert.ErrorIs(t, err, store.ErrValidation)
	_, err = s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "x", Priority: "whenever"})
	assert.ErrorIs(t, err, store.ErrValidation)

	m, err := s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Portón", Priority: domain.PriorityUrgent})
	require.NoError(t, err)

	_, err = s.UpdateMaintenance(ctx, "missing", map[string]any{"status": "completed"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteMaintenance(ctx, m.ID))
	require.NoError(t, s.DeleteMaintenance(ctx, m.ID))
	assert.Empty(t, s.Maintenance())
}

func TestCleanupOldData(t *testing.T) {
	s, _, clock := setupStore(t)
	ctx := context.Background()

	clock.Set(baseTime.AddDate(-1, 0, -1))
	old, err := s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Pintura", Status: domain.MaintenanceCompleted})
	require.NoError(t, err)
	_, err = s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Ascensor"})
	require.NoError(t, err)

	clock.Set(baseTime)
	_, err = s.AddMaintenance(ctx, domain.MaintenanceRequest{Title: "Citófono", Status: domain.MaintenanceCompleted})
	require.NoError(t, err)

	result, err := s.CleanupOldData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, []string{old.ID}, result.DeletedIDs)
	assert.Len(t, s.Maintenance(), 2)

	result, err = s.CleanupOldData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.DeletedCount)
}

func TestAnnouncements_NewestFirst(t *testing.T) {
	s, _, clock := setupStore(t)
	ctx := context.Background()

	first, err := s.AddAnnouncement(ctx, domain.Announcement{Title: "Asamblea", Content: "Jueves 19:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.AudienceAll, first.Target)

	clock.Set(baseTime.Add(time.Minute))
	second, err := s.AddAnnouncement(ctx, domain.Announcement{Title: "Corte de luz", Content: "Viernes", Target: "torre-b"})
	require.NoError(t, err)

	list := s.Announcements()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	_, err = s.AddAnnouncement(ctx, domain.Announcement{Title: "Sin contenido"})
	assert.ErrorIs(t, err, store.ErrValidation)

	updated, err := s.UpdateAnnouncement(ctx, first.ID, map[string]any{"content": "Jueves 20:00"})
	require.NoError(t, err)
	assert.Equal(t, "Jueves 20:00", updated.Content)
	assert.Equal(t, "Asamblea", updated.Title)
}
