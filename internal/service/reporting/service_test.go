package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// fakeStores serves canned documents, applying the same owner and window
// filtering the Mongo queries do.
type fakeStores struct {
	records []models.Record
	logs    []models.DailyLog
	pens    []models.Pen
	team    map[string][]string
}

func (f *fakeStores) ListRecordsByOwners(_ context.Context, ownerIDs []string, start, end time.Time) ([]models.Record, error) {
	var out []models.Record
	for _, r := range f.records {
		if ownedBy(ownerIDs, r.Owner) && inWindow(r.Date, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStores) ListDailyLogsByOwners(_ context.Context, ownerIDs []string, start, end time.Time) ([]models.DailyLog, error) {
	var out []models.DailyLog
	for _, l := range f.logs {
		if ownedBy(ownerIDs, l.Owner) && inWindow(l.Date, start, end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStores) ListPensByOwner(_ context.Context, ownerID string) ([]models.Pen, error) {
	var out []models.Pen
	for _, p := range f.pens {
		if p.Owner == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStores) TeamMemberIDs(_ context.Context, farmerID string) ([]string, error) {
	return f.team[farmerID], nil
}

func ownedBy(ownerIDs []string, owner string) bool {
	for _, id := range ownerIDs {
		if id == owner {
			return true
		}
	}
	return false
}

func inWindow(date, start, end time.Time) bool {
	if !start.IsZero() && date.Before(start) {
		return false
	}
	if !end.IsZero() && date.After(end) {
		return false
	}
	return true
}

func newTestService(stores *fakeStores, now time.Time) *Service {
	svc := NewService(stores, stores, stores, stores, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestResolveWindow(t *testing.T) {
	now := day("2024-02-15")

	start, end := ResolveWindow(models.ReportFilter{}, now)
	assert.Equal(t, day("2024-01-15"), start, "default period is monthly")
	assert.Equal(t, now, end)

	start, end = ResolveWindow(models.ReportFilter{Period: "daily"}, now)
	assert.Equal(t, day("2024-02-14"), start)
	assert.Equal(t, now, end)

	start, end = ResolveWindow(models.ReportFilter{Period: "weekly"}, now)
	assert.Equal(t, day("2024-02-08"), start)
	assert.Equal(t, now, end)

	explicitStart, explicitEnd := day("2024-01-01"), day("2024-01-10")
	start, end = ResolveWindow(models.ReportFilter{Period: "weekly", StartDate: &explicitStart, EndDate: &explicitEnd}, now)
	assert.Equal(t, explicitStart, start, "explicit dates win over the named period")
	assert.Equal(t, explicitEnd, end)
}

func TestFinancialReportRoundTrip(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		records: []models.Record{
			{
				ID:         primitive.NewObjectID(),
				RecordType: models.RecordFeed,
				Date:       day("2024-01-05"),
				FeedType:   "Layer Feed",
				QuantityKg: 500,
				Price:      450000,
				Supplier:   "X",
				Owner:      "farmer-1",
			},
		},
		team: map[string][]string{},
	}
	svc := newTestService(stores, day("2024-01-20"))

	summary, err := svc.FinancialReport(context.Background(), farmer, models.ReportFilter{Period: "monthly"})
	require.NoError(t, err)

	assert.Equal(t, 450000.0, summary.FeedExpense)
	assert.Equal(t, 1, summary.FeedRecords)
	assert.Equal(t, 0.0, summary.MedicineExpense)
	assert.Equal(t, 0, summary.MedicineRecords)
	assert.Equal(t, 450000.0, summary.TotalExpense)
	assert.True(t, summary.IncomeIsEstimate)
	assert.Equal(t, 675000.0, summary.EstimatedIncome)
	assert.Equal(t, 225000.0, summary.EstimatedProfit)
	require.Len(t, summary.DailyExpenses, 1)
	assert.Equal(t, models.DailyExpense{Date: "2024-01-05", Amount: 450000}, summary.DailyExpenses[0])
}

func TestFinancialReportIncludesTeamExcludesStrangers(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		records: []models.Record{
			{RecordType: models.RecordFeed, Date: day("2024-01-05"), Price: 100, Owner: "farmer-1"},
			{RecordType: models.RecordMedicine, Date: day("2024-01-06"), Price: 40, Owner: "worker-1"},
			{RecordType: models.RecordFeed, Date: day("2024-01-06"), Price: 999, Owner: "stranger"},
		},
		team: map[string][]string{"farmer-1": {"worker-1"}},
	}
	svc := newTestService(stores, day("2024-01-20"))

	summary, err := svc.FinancialReport(context.Background(), farmer, models.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.FeedExpense)
	assert.Equal(t, 40.0, summary.MedicineExpense)
	assert.Equal(t, 140.0, summary.TotalExpense)
}

func TestFinancialReportDailyRowsAscending(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		records: []models.Record{
			{RecordType: models.RecordFeed, Date: day("2024-01-09"), Price: 3, Owner: "farmer-1"},
			{RecordType: models.RecordFeed, Date: day("2024-01-02"), Price: 1, Owner: "farmer-1"},
			{RecordType: models.RecordMedicine, Date: day("2024-01-05"), Price: 2, Owner: "farmer-1"},
		},
		team: map[string][]string{},
	}
	svc := newTestService(stores, day("2024-01-20"))

	summary, err := svc.FinancialReport(context.Background(), farmer, models.ReportFilter{})
	require.NoError(t, err)

	require.Len(t, summary.DailyExpenses, 3)
	assert.Equal(t, "2024-01-02", summary.DailyExpenses[0].Date)
	assert.Equal(t, "2024-01-05", summary.DailyExpenses[1].Date)
	assert.Equal(t, "2024-01-09", summary.DailyExpenses[2].Date)
}

func TestProductionReportMortalityScenario(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		pens: []models.Pen{
			{Name: "A", BirdCount: 100, Type: models.PenLayers, Status: models.PenActive, Owner: "farmer-1"},
			{Name: "B", BirdCount: 50, Type: models.PenBroilers, Status: models.PenInactive, Owner: "farmer-1"},
		},
		logs: []models.DailyLog{
			{Date: day("2024-01-05"), PenID: "pen-a", EggsCollected: 80, PoultryDeaths: 3, Owner: "farmer-1"},
			{Date: day("2024-01-06"), PenID: "pen-a", EggsCollected: 75, PoultryDeaths: 2, PoultrySold: 10, SalesAmount: 50000, Owner: "farmer-1"},
		},
		records: []models.Record{
			{RecordType: models.RecordFeed, Date: day("2024-01-05"), QuantityKg: 310, Price: 1000, Owner: "farmer-1"},
		},
		team: map[string][]string{},
	}
	svc := newTestService(stores, day("2024-01-20"))

	summary, err := svc.ProductionReport(context.Background(), farmer, models.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 100, summary.TotalBirds, "inactive pens excluded")
	assert.Equal(t, 1, summary.ActivePens)
	assert.Equal(t, 155, summary.EggsLogged)
	assert.Equal(t, 5, summary.DeathsLogged)
	assert.Equal(t, 10, summary.BirdsSold)
	assert.Equal(t, 50000.0, summary.SalesAmount)
	assert.InDelta(t, 5.0, summary.MortalityRate, 1e-9, "(5/100)*100")
	assert.InDelta(t, 1.55, summary.EggProductionRate, 1e-9)
	assert.InDelta(t, 2.0, summary.FeedConversion, 1e-9, "310kg/155 eggs")
	assert.True(t, summary.EstimateOnly)
}

func TestProductionReportZeroBirdsNoNaN(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		logs: []models.DailyLog{
			{Date: day("2024-01-05"), PenID: "p", PoultryDeaths: 5, Owner: "farmer-1"},
		},
		team: map[string][]string{},
	}
	svc := newTestService(stores, day("2024-01-20"))

	summary, err := svc.ProductionReport(context.Background(), farmer, models.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.MortalityRate)
	assert.Equal(t, 0.0, summary.EggProductionRate)
}

func TestDailyRollup(t *testing.T) {
	stores := &fakeStores{
		logs: []models.DailyLog{
			{Date: day("2024-01-05"), PenID: "p", EggsCollected: 40, PoultryDeaths: 1, PoultrySold: 5, SalesAmount: 20000, Owner: "worker-1"},
			{Date: day("2024-01-06"), PenID: "p", EggsCollected: 99, Owner: "worker-1"}, // outside the day
		},
		records: []models.Record{
			{RecordType: models.RecordFeed, Date: day("2024-01-05"), Price: 15000, Owner: "farmer-1"},
		},
		team: map[string][]string{"farmer-1": {"worker-1"}},
	}
	svc := newTestService(stores, day("2024-01-06"))

	report, err := svc.DailyRollup(context.Background(), "farmer-1", day("2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, "farmer-1", report.FarmerID)
	assert.Equal(t, 40, report.EggsCollected)
	assert.Equal(t, 1, report.Mortality)
	assert.Equal(t, 5, report.BirdsSold)
	assert.Equal(t, 20000.0, report.SalesAmount)
	assert.Equal(t, 15000.0, report.Expenses)
	assert.Equal(t, 5000.0, report.Profit)
}

func TestExportWorkbook(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	stores := &fakeStores{
		records: []models.Record{
			{RecordType: models.RecordFeed, Date: day("2024-01-05"), Price: 100, QuantityKg: 10, Owner: "farmer-1"},
		},
		pens: []models.Pen{
			{Name: "A", BirdCount: 10, Type: models.PenLayers, Status: models.PenActive, Owner: "farmer-1"},
		},
		team: map[string][]string{},
	}
	svc := newTestService(stores, day("2024-01-20"))

	workbook, filename, err := svc.ExportWorkbook(context.Background(), farmer, models.ReportFilter{})
	require.NoError(t, err)

	assert.NotEmpty(t, workbook)
	assert.Equal(t, "farm-report-2024-01-20.xlsx", filename)
}
