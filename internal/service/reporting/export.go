package reporting

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

const (
	financialSheet  = "Financial"
	productionSheet = "Production"
)

// ExportWorkbook renders both summaries into a two-sheet workbook and
// returns the binary buffer plus a date-stamped filename.
func (s *Service) ExportWorkbook(ctx context.Context, actor models.Actor, filter models.ReportFilter) ([]byte, string, error) {
	financial, err := s.FinancialReport(ctx, actor, filter)
	if err != nil {
		return nil, "", err
	}
	production, err := s.ProductionReport(ctx, actor, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", financialSheet); err != nil {
		return nil, "", fmt.Errorf("rename financial sheet: %w", err)
	}
	if _, err := f.NewSheet(productionSheet); err != nil {
		return nil, "", fmt.Errorf("create production sheet: %w", err)
	}

	if err := writeFinancialSheet(f, financial); err != nil {
		return nil, "", err
	}
	if err := writeProductionSheet(f, production); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("farm-report-%s.xlsx", financial.EndDate)
	return buf.Bytes(), filename, nil
}

func writeFinancialSheet(f *excelize.File, summary models.FinancialSummary) error {
	rows := [][]interface{}{
		{"Financial Report"},
		{"Period", fmt.Sprintf("%s to %s", summary.StartDate, summary.EndDate)},
		{},
		{"Feed expense", summary.FeedExpense},
		{"Medicine expense", summary.MedicineExpense},
		{"Total expense", summary.TotalExpense},
		{"Feed records", summary.FeedRecords},
		{"Medicine records", summary.MedicineRecords},
		{"Estimated income (projection)", summary.EstimatedIncome},
		{"Estimated profit (projection)", summary.EstimatedProfit},
		{},
		{"Date", "Expense"},
	}
	for _, daily := range summary.DailyExpenses {
		rows = append(rows, []interface{}{daily.Date, daily.Amount})
	}
	return writeRows(f, financialSheet, rows)
}

func writeProductionSheet(f *excelize.File, summary models.ProductionSummary) error {
	rows := [][]interface{}{
		{"Production Report"},
		{"Period", fmt.Sprintf("%s to %s", summary.StartDate, summary.EndDate)},
		{},
		{"Total birds", summary.TotalBirds},
		{"Active pens", summary.ActivePens},
		{"Eggs logged", summary.EggsLogged},
		{"Deaths logged", summary.DeathsLogged},
		{"Birds sold", summary.BirdsSold},
		{"Sales amount", summary.SalesAmount},
		{"Mortality rate (%)", summary.MortalityRate},
		{"Egg production rate", summary.EggProductionRate},
		{"Feed conversion ratio", summary.FeedConversion},
		{"Estimated eggs (projection)", summary.EstimatedEggs},
		{"Estimated sold (projection)", summary.EstimatedSold},
	}
	return writeRows(f, productionSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("compute cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
