// Package sheets mirrors the daily farm roll-ups into a Google Sheets
// spreadsheet for owners who track their books there.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/farmtrack/internal/config"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

const reportsRange = "DailyReports!A:H"

// Repository defines the report-sync operations supported by the Google
// Sheets adapter.
type Repository interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyReport appends one roll-up as a row to the reports range.
func (r *GoogleSheetRepository) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	values := []interface{}{
		report.Date.Format("2006-01-02"),
		report.FarmerID,
		report.EggsCollected,
		report.Mortality,
		report.BirdsSold,
		report.SalesAmount,
		report.Expenses,
		report.Profit,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, reportsRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", reportsRange, err)
	}

	r.logger.Debug("daily report appended to sheet", zap.String("farmer_id", report.FarmerID))
	return nil
}
