package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyLog is a staff member's per-day field entry for one pen.
type DailyLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date          time.Time          `bson:"date" json:"date"`
	PenID         string             `bson:"pen_id" json:"pen_id"`
	EggsCollected int                `bson:"eggs_collected" json:"eggs_collected"`
	PoultryDeaths int                `bson:"poultry_deaths" json:"poultry_deaths"`
	PoultrySold   int                `bson:"poultry_sold" json:"poultry_sold"`
	SalesAmount   float64            `bson:"sales_amount" json:"sales_amount"`
	Owner         string             `bson:"owner" json:"owner"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Validate enforces the non-negative count invariants.
func (l DailyLog) Validate() error {
	if l.Date.IsZero() {
		return fmt.Errorf("daily log date must be set")
	}
	if l.PenID == "" {
		return fmt.Errorf("daily log requires a pen reference")
	}
	if l.EggsCollected < 0 {
		return fmt.Errorf("eggs collected must not be negative, got %d", l.EggsCollected)
	}
	if l.PoultryDeaths < 0 {
		return fmt.Errorf("poultry deaths must not be negative, got %d", l.PoultryDeaths)
	}
	if l.PoultrySold < 0 {
		return fmt.Errorf("poultry sold must not be negative, got %d", l.PoultrySold)
	}
	if l.SalesAmount < 0 {
		return fmt.Errorf("sales amount must not be negative, got %.2f", l.SalesAmount)
	}
	return nil
}
