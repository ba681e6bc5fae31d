package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// InsertRecord persists a purchase record and returns it with the generated id.
func (r *Repository) InsertRecord(ctx context.Context, record models.Record) (models.Record, error) {
	res, err := r.collection(recordsCollection).InsertOne(ctx, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("insert record: %w", mapError(err))
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return record, nil
}

// FindRecordByID looks a purchase record up by hex id.
func (r *Repository) FindRecordByID(ctx context.Context, id string) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, apperrors.ErrNotFound)
	}

	var record models.Record
	if err := r.collection(recordsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&record); err != nil {
		return nil, fmt.Errorf("find record %s: %w", id, mapError(err))
	}
	return &record, nil
}

// ListRecordsByOwners returns the records of the given owners, date-ascending.
// Zero start or end leaves that side of the range unbounded.
func (r *Repository) ListRecordsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.Record, error) {
	filter := ownedInWindow(ownerIDs, start, end)
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection(recordsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", mapError(err))
	}
	defer cursor.Close(ctx)

	var records []models.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// UpdateRecord replaces the mutable record fields.
func (r *Repository) UpdateRecord(ctx context.Context, record models.Record) error {
	set := bson.M{
		"record_type": record.RecordType,
		"date":        record.Date,
		"price":       record.Price,
		"supplier":    record.Supplier,
		"feed_type":   record.FeedType,
		"quantity_kg": record.QuantityKg,
		"medicine":    record.Medicine,
		"quantity":    record.Quantity,
	}
	res, err := r.collection(recordsCollection).UpdateByID(ctx, record.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update record %s: %w", record.ID.Hex(), mapError(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update record %s: %w", record.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// DeleteRecord removes a purchase record by hex id.
func (r *Repository) DeleteRecord(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", id, apperrors.ErrNotFound)
	}

	res, err := r.collection(recordsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, mapError(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete record %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// ownedInWindow builds the owner-set filter with an optional date range.
func ownedInWindow(ownerIDs []string, start, end time.Time) bson.M {
	filter := bson.M{"owner": bson.M{"$in": ownerIDs}}

	dateRange := bson.M{}
	if !start.IsZero() {
		dateRange["$gte"] = start
	}
	if !end.IsZero() {
		dateRange["$lte"] = end
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}
