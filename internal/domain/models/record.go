package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordType discriminates the two purchase-record shapes sharing one
// collection.
type RecordType string

const (
	RecordFeed     RecordType = "feed"
	RecordMedicine RecordType = "medicine"
)

// Record is a feed or medicine purchase entry. The discriminator selects
// which of the type-specific fields are required; Validate matches on it
// exhaustively so a new record type cannot slip past the boundary unchecked.
type Record struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecordType RecordType         `bson:"record_type" json:"record_type"`
	Date       time.Time          `bson:"date" json:"date"`
	Price      float64            `bson:"price" json:"price"`
	Supplier   string             `bson:"supplier" json:"supplier"`
	Owner      string             `bson:"owner" json:"owner"`

	// Feed purchases.
	FeedType   string  `bson:"feed_type,omitempty" json:"feed_type,omitempty"`
	QuantityKg float64 `bson:"quantity_kg,omitempty" json:"quantity_kg,omitempty"`

	// Medicine purchases. Quantity is free text ("2 bottles", "500ml").
	Medicine string `bson:"medicine,omitempty" json:"medicine,omitempty"`
	Quantity string `bson:"quantity,omitempty" json:"quantity,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Validate checks the discriminator-specific required fields.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("record date must be set")
	}
	if r.Price < 0 {
		return fmt.Errorf("record price must not be negative, got %.2f", r.Price)
	}

	switch r.RecordType {
	case RecordFeed:
		if r.FeedType == "" {
			return fmt.Errorf("feed record requires a feed type")
		}
		if r.QuantityKg <= 0 {
			return fmt.Errorf("feed record requires a positive quantity in kg")
		}
	case RecordMedicine:
		if r.Medicine == "" {
			return fmt.Errorf("medicine record requires a medicine name")
		}
		if r.Quantity == "" {
			return fmt.Errorf("medicine record requires a quantity")
		}
	default:
		return fmt.Errorf("unknown record type %q", r.RecordType)
	}
	return nil
}
