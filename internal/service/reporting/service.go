// Package reporting composes the access scope with the aggregation engine
// to produce financial and production summaries over a date window.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/scope"
)

// Mock business constants carried over until real ledgers exist. Income is
// projected from expenses and egg output from flock size; both are labeled
// estimates in the summaries, never ledger figures.
const (
	estimatedIncomeFactor = 1.5
	estimatedEggsPerBird  = 0.8
	estimatedSoldFraction = 0.95
)

// RecordStore reads purchase records in scope.
type RecordStore interface {
	ListRecordsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.Record, error)
}

// DailyLogStore reads field entries in scope.
type DailyLogStore interface {
	ListDailyLogsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.DailyLog, error)
}

// PenStore reads a farmer's pens.
type PenStore interface {
	ListPensByOwner(ctx context.Context, ownerID string) ([]models.Pen, error)
}

// Service exposes the report computations.
type Service struct {
	records RecordStore
	logs    DailyLogStore
	pens    PenStore
	team    scope.TeamDirectory
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(records RecordStore, logs DailyLogStore, pens PenStore, team scope.TeamDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, logs: logs, pens: pens, team: team, logger: logger, now: time.Now}
}

// ResolveWindow turns the loose filter into a concrete [start, end] range.
// Explicit dates win; otherwise the named period is subtracted from the end
// (default now, default period monthly).
func ResolveWindow(filter models.ReportFilter, now time.Time) (time.Time, time.Time) {
	end := now
	if filter.EndDate != nil {
		end = *filter.EndDate
	}

	if filter.StartDate != nil {
		return *filter.StartDate, end
	}

	switch filter.Period {
	case "daily":
		return end.AddDate(0, 0, -1), end
	case "weekly":
		return end.AddDate(0, 0, -7), end
	default: // monthly
		return end.AddDate(0, -1, 0), end
	}
}

// FinancialReport splits in-window purchase records by discriminator and
// sums expenses. Daily rows come back date-ascending.
func (s *Service) FinancialReport(ctx context.Context, actor models.Actor, filter models.ReportFilter) (models.FinancialSummary, error) {
	start, end := ResolveWindow(filter, s.now().UTC())

	owners, err := s.visibleOwners(ctx, actor)
	if err != nil {
		return models.FinancialSummary{}, err
	}

	records, err := s.records.ListRecordsByOwners(ctx, owners, start, end)
	if err != nil {
		return models.FinancialSummary{}, fmt.Errorf("load records for report: %w", err)
	}

	summary := models.FinancialSummary{
		StartDate:        start.Format(dateLayout),
		EndDate:          end.Format(dateLayout),
		IncomeIsEstimate: true,
	}

	daily := make([]DatedValue, 0, len(records))
	for _, record := range records {
		switch record.RecordType {
		case models.RecordFeed:
			summary.FeedExpense += record.Price
			summary.FeedRecords++
		case models.RecordMedicine:
			summary.MedicineExpense += record.Price
			summary.MedicineRecords++
		default:
			// Unknown discriminators are a programming error upstream;
			// creation validates exhaustively.
			s.logger.Warn("skipping record with unknown type",
				zap.String("record_id", record.ID.Hex()),
				zap.String("type", string(record.RecordType)))
			continue
		}
		daily = append(daily, DatedValue{Date: record.Date, Value: record.Price})
	}

	summary.TotalExpense = summary.FeedExpense + summary.MedicineExpense
	summary.EstimatedIncome = summary.TotalExpense * estimatedIncomeFactor
	summary.EstimatedProfit = Profit(summary.EstimatedIncome, summary.TotalExpense)

	totals := SumByDate(daily)
	for _, date := range SortedDates(totals) {
		summary.DailyExpenses = append(summary.DailyExpenses, models.DailyExpense{Date: date, Amount: totals[date]})
	}

	return summary, nil
}

// ProductionReport combines pen statistics with in-window field entries and
// feed purchases.
func (s *Service) ProductionReport(ctx context.Context, actor models.Actor, filter models.ReportFilter) (models.ProductionSummary, error) {
	start, end := ResolveWindow(filter, s.now().UTC())

	penOwner, err := scope.PenOwner(actor)
	if err != nil {
		return models.ProductionSummary{}, err
	}
	pens, err := s.pens.ListPensByOwner(ctx, penOwner)
	if err != nil {
		return models.ProductionSummary{}, fmt.Errorf("load pens for report: %w", err)
	}

	owners, err := s.visibleOwners(ctx, actor)
	if err != nil {
		return models.ProductionSummary{}, err
	}
	logs, err := s.logs.ListDailyLogsByOwners(ctx, owners, start, end)
	if err != nil {
		return models.ProductionSummary{}, fmt.Errorf("load daily logs for report: %w", err)
	}
	records, err := s.records.ListRecordsByOwners(ctx, owners, start, end)
	if err != nil {
		return models.ProductionSummary{}, fmt.Errorf("load records for report: %w", err)
	}

	summary := models.ProductionSummary{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		EstimateOnly: true,
	}

	for _, pen := range pens {
		if pen.Status != models.PenActive {
			continue
		}
		summary.TotalBirds += pen.BirdCount
		summary.ActivePens++
	}

	for _, log := range logs {
		summary.EggsLogged += log.EggsCollected
		summary.DeathsLogged += log.PoultryDeaths
		summary.BirdsSold += log.PoultrySold
		summary.SalesAmount += log.SalesAmount
	}

	var feedKg float64
	for _, record := range records {
		if record.RecordType == models.RecordFeed {
			feedKg += record.QuantityKg
		}
	}

	birds := float64(summary.TotalBirds)
	summary.MortalityRate = MortalityRate(float64(summary.DeathsLogged), birds)
	summary.EggProductionRate = EggProductionRate(float64(summary.EggsLogged), birds)
	summary.FeedConversion = FeedConversionRatio(feedKg, float64(summary.EggsLogged))

	days := daysInWindow(start, end)
	summary.EstimatedEggs = birds * estimatedEggsPerBird * float64(days)
	summary.EstimatedSold = summary.EstimatedEggs * estimatedSoldFraction

	return summary, nil
}

// DailyRollup computes one farm's roll-up for the given calendar day. Used
// by the scheduler across all farmers.
func (s *Service) DailyRollup(ctx context.Context, farmerID string, day time.Time) (models.DailyReport, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	teamIDs, err := s.team.TeamMemberIDs(ctx, farmerID)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("resolve team for rollup: %w", err)
	}
	owners := append([]string{farmerID}, teamIDs...)

	logs, err := s.logs.ListDailyLogsByOwners(ctx, owners, dayStart, dayEnd)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load daily logs for rollup: %w", err)
	}
	records, err := s.records.ListRecordsByOwners(ctx, owners, dayStart, dayEnd)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load records for rollup: %w", err)
	}

	report := models.DailyReport{
		FarmerID:  farmerID,
		Date:      dayStart,
		CreatedAt: s.now().UTC(),
	}
	for _, log := range logs {
		report.EggsCollected += log.EggsCollected
		report.Mortality += log.PoultryDeaths
		report.BirdsSold += log.PoultrySold
		report.SalesAmount += log.SalesAmount
	}
	for _, record := range records {
		report.Expenses += record.Price
	}
	report.Profit = Profit(report.SalesAmount, report.Expenses)

	return report, nil
}

func (s *Service) visibleOwners(ctx context.Context, actor models.Actor) ([]string, error) {
	teamIDs, err := scope.TeamFor(ctx, s.team, actor)
	if err != nil {
		return nil, err
	}
	return scope.RecordOwners(actor, teamIDs)
}

func daysInWindow(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
