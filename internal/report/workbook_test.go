package report

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

func TestWorkbook(t *testing.T) {
	paid := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	in := Input{
		Settings: domain.Settings{MonthlyFee: 85000, BuildingName: "Edificio Los Aromos", Currency: "CLP"},
		Stats:    store.Statistics{TotalResidents: 1, OccupancyRate: 100, TotalDebt: 85000},
		Residents: []domain.Resident{{
			Name: "Juan Pérez", RUT: "123456785", Apartment: "101",
			OccupancyStatus: domain.OccupancyOwner, Debt: 85000,
		}},
		Payments: []domain.Payment{
			{Apartment: "101", ResidentName: "Juan Pérez", Amount: 85000, Date: &paid, Status: domain.PaymentPaid},
			{Apartment: "101", ResidentName: "Juan Pérez", Amount: 85000, Status: domain.PaymentPending},
		},
	}

	b, err := Workbook(in)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetResidents, SheetPayments}, f.GetSheetList())

	rows, err := f.GetRows(SheetResidents)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ResidentHeader, rows[0])
	assert.Equal(t, "101", rows[1][0])
	assert.Equal(t, "12.345.678-5", rows[1][2])
	assert.Equal(t, "Propietario", rows[1][5])
	assert.Equal(t, "$85.000", rows[1][6])

	rows, err = f.GetRows(SheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "05-03-2024", rows[1][3])
	assert.Equal(t, "Pagado", rows[1][4])
	assert.Equal(t, "Pendiente", rows[2][4])

	summary, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Edificio Los Aromos", summary)
}

func TestWorkbook_Empty(t *testing.T) {
	b, err := Workbook(Input{Settings: domain.DefaultSettings()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, PaymentHeader, rows[0])
}

func TestWorkbook_Location(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	midnight := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	b, err := Workbook(Input{
		Settings: domain.DefaultSettings(),
		Payments: []domain.Payment{{Apartment: "101", Amount: 1000, Date: &midnight, Status: domain.PaymentPaid}},
		Location: loc,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue(SheetPayments, "D2")
	require.NoError(t, err)
	assert.Equal(t, "04-03-2024", date)
}
