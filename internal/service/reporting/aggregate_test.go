package reporting

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSumByDateGroupsByCalendarDay(t *testing.T) {
	items := []DatedValue{
		{Date: day("2024-01-05"), Value: 100},
		{Date: day("2024-01-05").Add(6 * time.Hour), Value: 50},
		{Date: day("2024-01-07"), Value: 25},
	}

	totals := SumByDate(items)
	assert.Len(t, totals, 2)
	assert.Equal(t, 150.0, totals["2024-01-05"])
	assert.Equal(t, 25.0, totals["2024-01-07"])
}

func TestSortedDatesAscending(t *testing.T) {
	totals := map[string]float64{
		"2024-03-01": 1,
		"2024-01-15": 2,
		"2024-02-10": 3,
	}
	assert.Equal(t, []string{"2024-01-15", "2024-02-10", "2024-03-01"}, SortedDates(totals))
}

func TestDerivedMetricsGuardZeroDenominators(t *testing.T) {
	// Zero flock or zero eggs must yield 0, never NaN or Inf.
	for _, value := range []float64{
		FeedConversionRatio(120, 0),
		MortalityRate(5, 0),
		EggProductionRate(10, 0),
	} {
		assert.Equal(t, 0.0, value)
		assert.False(t, math.IsNaN(value))
		assert.False(t, math.IsInf(value, 0))
	}
}

func TestDerivedMetrics(t *testing.T) {
	assert.InDelta(t, 2.0, FeedConversionRatio(100, 50), 1e-9)
	assert.InDelta(t, 5.0, MortalityRate(5, 100), 1e-9)
	assert.InDelta(t, 0.8, EggProductionRate(80, 100), 1e-9)
}

func TestProfitExactOnIntegerAmounts(t *testing.T) {
	assert.Equal(t, 225000.0, Profit(675000, 450000))
	assert.Equal(t, -50000.0, Profit(400000, 450000))
}
