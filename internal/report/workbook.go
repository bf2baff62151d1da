// Package report renders the dataset as an .xlsx workbook for the
// administrator's monthly report.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Supervision-Inbound/prueba.condo/internal/domain"
	"github.com/Supervision-Inbound/prueba.condo/internal/format"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
	"github.com/Supervision-Inbound/prueba.condo/internal/validate"
)

const (
	SheetSummary   = "Resumen"
	SheetResidents = "Residentes"
	SheetPayments  = "Pagos"
)

var ResidentHeader = []string{"Departamento", "Nombre", "RUT", "Teléfono", "Email", "Estado", "Deuda"}

var PaymentHeader = []string{"Departamento", "Residente", "Monto", "Fecha", "Estado"}

// Input is everything a workbook shows. Dates render in Location, UTC if nil.
type Input struct {
	Settings  domain.Settings
	Stats     store.Statistics
	Residents []domain.Resident
	Payments  []domain.Payment
	Location  *time.Location
}

// FromStore gathers an Input from the live store.
func FromStore(s *store.Store, loc *time.Location) Input {
	return Input{
		Settings:  s.Config(),
		Stats:     s.Statistics(),
		Residents: s.Residents(),
		Payments:  s.Payments(),
		Location:  loc,
	}
}

// Workbook builds the xlsx file and returns its bytes.
func Workbook(in Input) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]any{
		{"Edificio", in.Settings.BuildingName},
		{"Dirección", in.Settings.Address},
		{"Administrador", in.Settings.AdministratorName},
		{"Gasto común mensual", format.Currency(in.Settings.MonthlyFee)},
		{"Residentes", in.Stats.TotalResidents},
		{"Ocupación", fmt.Sprintf("%d%%", in.Stats.OccupancyRate)},
		{"Deuda total", format.Currency(in.Stats.TotalDebt)},
		{"Ingreso mensual esperado", format.Currency(in.Stats.MonthlyIncome)},
		{"Mantenciones pendientes", in.Stats.PendingMaintenance},
		{"Residentes con deuda", in.Stats.PendingPayments},
	}
	if err := writeSheet(f, SheetSummary, nil, summary, headerStyle, []float64{28, 32}); err != nil {
		return nil, err
	}

	residents := make([][]any, 0, len(in.Residents))
	for _, r := range in.Residents {
		residents = append(residents, []any{
			r.Apartment,
			r.Name,
			validate.FormatRUT(r.RUT),
			r.Phone,
			r.Email,
			format.Label(string(r.OccupancyStatus)),
			format.Currency(r.Debt),
		})
	}
	if err := writeSheet(f, SheetResidents, ResidentHeader, residents, headerStyle, []float64{14, 30, 15, 18, 30, 14, 14}); err != nil {
		return nil, err
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	payments := make([][]any, 0, len(in.Payments))
	for _, p := range in.Payments {
		date := ""
		if p.Date != nil {
			date = format.Date(p.Date.In(loc), false)
		}
		payments = append(payments, []any{
			p.Apartment,
			p.ResidentName,
			format.Currency(p.Amount),
			date,
			format.Label(string(p.Status)),
		})
	}
	if err := writeSheet(f, SheetPayments, PaymentHeader, payments, headerStyle, []float64{14, 30, 14, 14, 12}); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet creates name with an optional styled header row followed by rows.
func writeSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int, widths []float64) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	row := 1
	if len(header) > 0 {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &cells); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", name, err)
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze panes: %w", err)
		}
		row = 2
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, row+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", row+i, name, err)
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}
