package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
)

func TestMonthCount(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, monthCount(nil, now))
	assert.Equal(t, 1, monthCount([]domain.Resident{{}}, now))

	residents := []domain.Resident{
		{CreatedAt: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 4, monthCount(residents, now))

	future := []domain.Resident{{CreatedAt: now.AddDate(0, 2, 0)}}
	assert.Equal(t, 1, monthCount(future, now))
}

func TestExpectedDebt(t *testing.T) {
	payments := []domain.Payment{
		{ResidentID: "a", Amount: 85000, Status: domain.PaymentPaid},
		{ResidentID: "a", Amount: 85000, Status: domain.PaymentPending},
		{ResidentID: "b", Amount: 85000, Status: domain.PaymentPaid},
	}
	assert.Equal(t, int64(170000), expectedDebt("a", payments, 85000, 3))
	assert.Equal(t, int64(0), expectedDebt("b", payments, 85000, 1))
	assert.Equal(t, int64(85000), expectedDebt("c", payments, 85000, 1))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps(18*60, 20*60, 19*60, 21*60))
	assert.True(t, overlaps(19*60, 21*60, 18*60, 20*60))
	assert.True(t, overlaps(18*60, 22*60, 19*60, 20*60))
	assert.False(t, overlaps(18*60, 20*60, 20*60, 22*60))
	assert.False(t, overlaps(20*60, 22*60, 18*60, 20*60))
}

func TestFieldsOf(t *testing.T) {
	fields, err := fieldsOf(domain.Resident{ID: "r1", Name: "Ana", Apartment: "301", Debt: 1000})
	require.NoError(t, err)
	assert.Equal(t, "Ana", fields["name"])
	assert.Equal(t, "301", fields["apartment"])
	assert.Equal(t, float64(1000), fields["debt"])
	_, hasPhone := fields["phone"]
	assert.False(t, hasPhone)
}
