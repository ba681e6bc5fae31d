package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordValidateFeed(t *testing.T) {
	record := Record{
		RecordType: RecordFeed,
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		FeedType:   "Layer Feed",
		QuantityKg: 500,
		Price:      450000,
		Supplier:   "X",
	}
	assert.NoError(t, record.Validate())

	missing := record
	missing.FeedType = ""
	assert.Error(t, missing.Validate())

	missing = record
	missing.QuantityKg = 0
	assert.Error(t, missing.Validate())
}

func TestRecordValidateMedicine(t *testing.T) {
	record := Record{
		RecordType: RecordMedicine,
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Medicine:   "Oxytetracycline",
		Quantity:   "2 bottles",
		Price:      30000,
	}
	assert.NoError(t, record.Validate())

	missing := record
	missing.Medicine = ""
	assert.Error(t, missing.Validate())

	missing = record
	missing.Quantity = ""
	assert.Error(t, missing.Validate())
}

func TestRecordValidateRejectsUnknownType(t *testing.T) {
	record := Record{
		RecordType: "fertilizer",
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, record.Validate())
}

func TestRecordValidateRejectsZeroDateAndNegativePrice(t *testing.T) {
	record := Record{RecordType: RecordFeed, FeedType: "Starter", QuantityKg: 10}
	assert.Error(t, record.Validate(), "zero date")

	record.Date = time.Now()
	record.Price = -1
	assert.Error(t, record.Validate())
}

func TestActorIsFarmer(t *testing.T) {
	assert.True(t, Actor{ID: "f"}.IsFarmer())
	assert.False(t, Actor{ID: "w", IsWorker: true}.IsFarmer())
	assert.False(t, Actor{ID: "v", IsVet: true}.IsFarmer())
}
