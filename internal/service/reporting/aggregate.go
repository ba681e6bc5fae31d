package reporting

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DatedValue is one numeric observation with its calendar date.
type DatedValue struct {
	Date  time.Time
	Value float64
}

// SumByDate groups observations by ISO date string and accumulates a running
// total per group. The result is an unordered map; use SortedDates for a
// stable sequence.
func SumByDate(items []DatedValue) map[string]float64 {
	totals := make(map[string]float64, len(items))
	for _, item := range items {
		totals[item.Date.Format(dateLayout)] += item.Value
	}
	return totals
}

// SortedDates returns the group keys in ascending calendar order. Report
// rows are always emitted date-ascending.
func SortedDates(totals map[string]float64) []string {
	dates := make([]string, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// FeedConversionRatio is feed quantity over egg quantity. Zero eggs yields
// 0, which signals "no data", not a true ratio.
func FeedConversionRatio(feedKg, eggs float64) float64 {
	if eggs == 0 {
		return 0
	}
	return feedKg / eggs
}

// MortalityRate is deaths over flock size as a percentage. Zero birds
// yields 0 rather than NaN or Inf.
func MortalityRate(deaths, birds float64) float64 {
	if birds == 0 {
		return 0
	}
	return (deaths / birds) * 100
}

// EggProductionRate is eggs per bird. Zero birds yields 0.
func EggProductionRate(eggs, birds float64) float64 {
	if birds == 0 {
		return 0
	}
	return eggs / birds
}

// Profit is income minus expense. Expense and income never go negative from
// valid input; profit may.
func Profit(income, expense float64) float64 {
	return income - expense
}
