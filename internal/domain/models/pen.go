package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PenType enumerates the bird categories tracked per pen.
type PenType string

const (
	PenLayers   PenType = "Layers"
	PenBroilers PenType = "Broilers"
	PenChicks   PenType = "Chicks"
)

// PenStatus marks whether a pen is currently in production.
type PenStatus string

const (
	PenActive   PenStatus = "active"
	PenInactive PenStatus = "inactive"
)

// Pen is a named group of birds tracked as a unit. Pens are owned
// exclusively by a farmer; staff get read access through the farmer.
type Pen struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	BirdCount   int                `bson:"bird_count" json:"bird_count"`
	Type        PenType            `bson:"type" json:"type"`
	AgeWeeks    int                `bson:"age_weeks" json:"age_weeks"`
	DailyEggAvg float64            `bson:"daily_egg_avg" json:"daily_egg_avg"`
	Mortality   float64            `bson:"mortality" json:"mortality"`
	Status      PenStatus          `bson:"status" json:"status"`
	Owner       string             `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Validate enforces the pen invariants at creation and update time.
func (p Pen) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pen name must not be empty")
	}
	if p.BirdCount < 1 {
		return fmt.Errorf("bird count must be at least 1, got %d", p.BirdCount)
	}
	switch p.Type {
	case PenLayers, PenBroilers, PenChicks:
	default:
		return fmt.Errorf("unknown pen type %q", p.Type)
	}
	switch p.Status {
	case PenActive, PenInactive, "":
	default:
		return fmt.Errorf("unknown pen status %q", p.Status)
	}
	return nil
}
