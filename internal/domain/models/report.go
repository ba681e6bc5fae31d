package models

import "time"

// ReportFilter is the loose date selection accepted by the report endpoints.
// Explicit start/end win over the named period.
type ReportFilter struct {
	Period    string     `form:"period" json:"period"`
	StartDate *time.Time `form:"start_date" json:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" json:"end_date" time_format:"2006-01-02"`
}

// DailyExpense is one ascending-by-date row of the financial report series.
type DailyExpense struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// FinancialSummary aggregates purchase records over a window.
//
// EstimatedIncome is a projection (1.5x expenses), not a ledger figure; it
// stays clearly labeled until a real sales ledger exists.
type FinancialSummary struct {
	StartDate        string         `json:"start_date"`
	EndDate          string         `json:"end_date"`
	FeedExpense      float64        `json:"feed_expense"`
	MedicineExpense  float64        `json:"medicine_expense"`
	TotalExpense     float64        `json:"total_expense"`
	FeedRecords      int            `json:"feed_records"`
	MedicineRecords  int            `json:"medicine_records"`
	EstimatedIncome  float64        `json:"estimated_income"`
	IncomeIsEstimate bool           `json:"income_is_estimate"`
	EstimatedProfit  float64        `json:"estimated_profit"`
	DailyExpenses    []DailyExpense `json:"daily_expenses"`
}

// ProductionSummary aggregates pen statistics and daily logs over a window.
//
// EstimatedEggs and EstimatedSold are projections from bird counts, not
// measured values; the logged counts carry the measured data.
type ProductionSummary struct {
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalBirds        int     `json:"total_birds"`
	ActivePens        int     `json:"active_pens"`
	EggsLogged        int     `json:"eggs_logged"`
	DeathsLogged      int     `json:"deaths_logged"`
	BirdsSold         int     `json:"birds_sold"`
	SalesAmount       float64 `json:"sales_amount"`
	MortalityRate     float64 `json:"mortality_rate"`
	EggProductionRate float64 `json:"egg_production_rate"`
	FeedConversion    float64 `json:"feed_conversion_ratio"`
	EstimatedEggs     float64 `json:"estimated_eggs"`
	EstimatedSold     float64 `json:"estimated_sold"`
	EstimateOnly      bool    `json:"estimates_are_projections"`
}

// DailyReport is the per-farmer roll-up the scheduler persists once a day.
type DailyReport struct {
	FarmerID      string    `bson:"farmer_id" json:"farmer_id"`
	Date          time.Time `bson:"date" json:"date"`
	EggsCollected int       `bson:"eggs_collected" json:"eggs_collected"`
	Mortality     int       `bson:"mortality" json:"mortality"`
	BirdsSold     int       `bson:"birds_sold" json:"birds_sold"`
	SalesAmount   float64   `bson:"sales_amount" json:"sales_amount"`
	Expenses      float64   `bson:"expenses" json:"expenses"`
	Profit        float64   `bson:"profit" json:"profit"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
